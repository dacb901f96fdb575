package audit

// Record is one append-only audit entry. Timestamp is the logical block
// height supplied by the host environment, not wall-clock time.
type Record struct {
	ID        uint64
	Action    string
	Actor     string
	Timestamp uint64
}

// Trail is an append-only audit log with ids assigned sequentially from 1.
// Each owning store keeps its own Trail, so registry and engine sequences
// advance independently. Trail is not safe for concurrent use; owners guard
// it with their own lock.
type Trail struct {
	records []Record
}

// Append stores a new record and returns its id. It never fails.
func (t *Trail) Append(action string, actor string, timestamp uint64) uint64 {
	id := uint64(len(t.records)) + 1
	t.records = append(t.records, Record{
		ID:        id,
		Action:    action,
		Actor:     actor,
		Timestamp: timestamp,
	})
	return id
}

// Get returns the record with the given id.
func (t *Trail) Get(id uint64) (Record, bool) {
	if id < 1 || id > uint64(len(t.records)) {
		return Record{}, false
	}
	return t.records[id-1], true
}

// Len reports how many records have been appended.
func (t *Trail) Len() int {
	return len(t.records)
}
