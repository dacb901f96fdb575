package entities

// ProofHashSize is the fixed length of delegation proof hashes.
const ProofHashSize = 32

// ProofHash is an opaque fixed-length delegation proof, compared for byte
// equality only.
type ProofHash [ProofHashSize]byte

// Proxy is the single delegation slot per voter. Revocation is one-way and
// the slot is never freed: a voter with any proxy record cannot re-delegate.
type Proxy struct {
	Proxy       string
	DelegatedAt uint64
	Revoked     bool
}

// Delegation is the append-only authorization artifact a proxy must match
// (voter, proxy identity, proof hash) to cast on a voter's behalf. Ids are
// sequential from 1; records are never deleted.
type Delegation struct {
	ID        uint64
	Voter     string
	Proxy     string
	ProofHash ProofHash
}
