package errors

import "errors"

var (
	ErrNotAuthorized       = errors.New("caller is not authorized")
	ErrInvalidTimestamp    = errors.New("invalid election time window")
	ErrInvalidElection     = errors.New("election not found")
	ErrElectionClosed      = errors.New("election is not accepting this action")
	ErrElectionFinalized   = errors.New("election is already finalized")
	ErrInvalidVoter        = errors.New("voter is not eligible")
	ErrMaxVotesExceeded    = errors.New("per-voter vote cap reached")
	ErrInvalidOption       = errors.New("option is not on the ballot")
	ErrVoteAlreadyCast     = errors.New("vote already cast for this election")
	ErrInvalidProxy        = errors.New("proxy assignment is invalid")
	ErrProxyNotAssigned    = errors.New("no proxy assigned")
	ErrInvalidProof        = errors.New("delegation proof does not match")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBallotNotFound      = errors.New("ballot not found")
	ErrDelegationNotFound  = errors.New("delegation not found")
	ErrAuditLogNotFound    = errors.New("audit record not found")
)
