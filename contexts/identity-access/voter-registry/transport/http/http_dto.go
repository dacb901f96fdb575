package http

// Proof hashes travel as hex strings of exactly 64 characters (32 bytes).

type RegisterVoterRequest struct {
	ProofHash string `json:"proof_hash"`
}

type RegisterVoterResponse struct {
	VoterID uint64 `json:"voter_id"`
}

type VerifyVoterRequest struct {
	ProofHash string `json:"proof_hash"`
}

type VerifyVoterResponse struct {
	Verified bool `json:"verified"`
}

type UpdateVoterStatusRequest struct {
	Active bool `json:"active"`
}

type SetAdminRequest struct {
	NewAdmin string `json:"new_admin"`
}

type SetRegistrationFeeRequest struct {
	Fee uint64 `json:"fee"`
}

type ToggleRegistrationRequest struct {
	Open bool `json:"open"`
}

type SetMaxVotersRequest struct {
	MaxVoters uint64 `json:"max_voters"`
}

type VoterResponse struct {
	VoterID      uint64 `json:"voter_id"`
	Principal    string `json:"principal"`
	ProofHash    string `json:"proof_hash"`
	RegisteredAt uint64 `json:"registered_at"`
	Active       bool   `json:"active"`
}

type VoterIDResponse struct {
	VoterID   uint64 `json:"voter_id"`
	Principal string `json:"principal"`
}

type RegistrationStatusResponse struct {
	Open      bool   `json:"open"`
	NextVoter uint64 `json:"next_voter_id"`
}

type AuditRecordResponse struct {
	LogID     uint64 `json:"log_id"`
	Action    string `json:"action"`
	Actor     string `json:"actor"`
	Timestamp uint64 `json:"timestamp"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
