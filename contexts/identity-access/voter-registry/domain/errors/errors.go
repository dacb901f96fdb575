package errors

import "errors"

var (
	ErrNotAuthorized      = errors.New("caller is not authorized")
	ErrRegistrationClosed = errors.New("voter registration is closed")
	ErrMaxVotersExceeded  = errors.New("maximum voter count reached")
	ErrAlreadyRegistered  = errors.New("principal is already registered")
	ErrVoterNotFound      = errors.New("voter not found")
	ErrInvalidProof       = errors.New("enrollment proof does not match")
	ErrInactiveVoter      = errors.New("voter is inactive")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrAuditLogNotFound   = errors.New("audit record not found")
)
