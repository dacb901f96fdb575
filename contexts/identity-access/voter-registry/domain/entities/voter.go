package entities

// ProofHashSize is the fixed length of enrollment proof hashes.
const ProofHashSize = 32

// ProofHash is an opaque fixed-length enrollment proof. It is compared for
// byte equality only; hash computation belongs to the host environment.
type ProofHash [ProofHashSize]byte

// Voter is an enrolled identity. Ids are assigned sequentially from 1 and
// never reused; Active is mutated only through admin status updates.
type Voter struct {
	ID           uint64
	Principal    string
	ProofHash    ProofHash
	RegisteredAt uint64
	Active       bool
}

// Settings holds the registry's admin-controlled configuration.
type Settings struct {
	Admin            string
	RegistrationFee  uint64
	MaxVoters        uint64
	RegistrationOpen bool
}

// TransferIntent records a value movement for the external ledger to settle.
type TransferIntent struct {
	Amount uint64
	From   string
	To     string
}
