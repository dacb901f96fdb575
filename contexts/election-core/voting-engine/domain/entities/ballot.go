package entities

// Ballot is a committed vote, keyed by (ElectionID, Voter). At most one
// exists per key and it is immutable once stored. Proxy carries the casting
// principal when the vote was cast on the voter's behalf.
type Ballot struct {
	ElectionID uint64
	Voter      string
	Option     uint64
	CastAt     uint64
	Proxy      *string
}

// Eligibility is the per-cycle voting permission for a principal, distinct
// from identity enrollment in the voter registry.
type Eligibility struct {
	Eligible  bool
	VotesCast uint64
}
