package http

// Delegation proof hashes travel as hex strings of exactly 64 characters
// (32 bytes).

type ConfigureElectionRequest struct {
	ElectionID uint64   `json:"election_id"`
	Start      uint64   `json:"start"`
	End        uint64   `json:"end"`
	Options    []uint64 `json:"options"`
}

type FinalizeElectionRequest struct {
	ElectionID uint64 `json:"election_id"`
}

type RegisterEligibilityRequest struct {
	Voter string `json:"voter"`
}

type CastVoteRequest struct {
	ElectionID uint64 `json:"election_id"`
	Option     uint64 `json:"option"`
	Voter      string `json:"voter"`
}

type CastProxyVoteRequest struct {
	ElectionID uint64 `json:"election_id"`
	Option     uint64 `json:"option"`
	Voter      string `json:"voter"`
	ProofHash  string `json:"proof_hash"`
}

type AssignProxyRequest struct {
	Voter     string `json:"voter"`
	Proxy     string `json:"proxy"`
	ProofHash string `json:"proof_hash"`
}

type AssignProxyResponse struct {
	DelegationID uint64 `json:"delegation_id"`
}

type RevokeProxyRequest struct {
	Voter string `json:"voter"`
}

type SetAdminRequest struct {
	NewAdmin string `json:"new_admin"`
}

type SetVoteFeeRequest struct {
	Fee uint64 `json:"fee"`
}

type SetMaxVotesRequest struct {
	MaxVotes uint64 `json:"max_votes"`
}

type DepositRequest struct {
	Amount uint64 `json:"amount"`
}

type WithdrawRequest struct {
	Amount uint64 `json:"amount"`
}

type ElectionResponse struct {
	ElectionID uint64   `json:"election_id"`
	Start      uint64   `json:"start"`
	End        uint64   `json:"end"`
	Active     bool     `json:"active"`
	Finalized  bool     `json:"finalized"`
	Options    []uint64 `json:"options"`
}

type BallotResponse struct {
	ElectionID uint64  `json:"election_id"`
	Voter      string  `json:"voter"`
	Option     uint64  `json:"option"`
	CastAt     uint64  `json:"cast_at"`
	Proxy      *string `json:"proxy,omitempty"`
}

type TallyResponse struct {
	ElectionID uint64 `json:"election_id"`
	Option     uint64 `json:"option"`
	Count      uint64 `json:"count"`
}

type ResultsResponse struct {
	ElectionID uint64            `json:"election_id"`
	Finalized  bool              `json:"finalized"`
	Counts     map[uint64]uint64 `json:"counts"`
	TotalVotes uint64            `json:"total_votes"`
}

type EligibilityResponse struct {
	Voter     string `json:"voter"`
	Eligible  bool   `json:"eligible"`
	VotesCast uint64 `json:"votes_cast"`
}

type ProxyResponse struct {
	Voter       string `json:"voter"`
	Proxy       string `json:"proxy"`
	DelegatedAt uint64 `json:"delegated_at"`
	Revoked     bool   `json:"revoked"`
}

type DelegationResponse struct {
	DelegationID uint64 `json:"delegation_id"`
	Voter        string `json:"voter"`
	Proxy        string `json:"proxy"`
	ProofHash    string `json:"proof_hash"`
}

type BalanceResponse struct {
	Principal string `json:"principal"`
	Balance   uint64 `json:"balance"`
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
