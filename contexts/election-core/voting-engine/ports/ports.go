package ports

import (
	"context"

	"electra/contexts/election-core/voting-engine/domain/entities"
	"electra/internal/shared/audit"
)

type ElectionRepository interface {
	// SaveElection inserts or overwrites the config for election.ID.
	// Overwriting an existing id is permitted by the host contract.
	SaveElection(ctx context.Context, election entities.Election) error
	GetElection(ctx context.Context, electionID uint64) (entities.Election, bool, error)
}

type EligibilityRepository interface {
	GetEligibility(ctx context.Context, voter string) (entities.Eligibility, bool, error)
	SaveEligibility(ctx context.Context, voter string, eligibility entities.Eligibility) error
}

type BallotRepository interface {
	GetBallot(ctx context.Context, electionID uint64, voter string) (entities.Ballot, bool, error)
	SaveBallot(ctx context.Context, ballot entities.Ballot) error
	GetTally(ctx context.Context, electionID uint64, option uint64) (uint64, error)
	IncrementTally(ctx context.Context, electionID uint64, option uint64) (uint64, error)
}

type DelegationRepository interface {
	GetProxy(ctx context.Context, voter string) (entities.Proxy, bool, error)
	SaveProxy(ctx context.Context, voter string, proxy entities.Proxy) error
	// AppendDelegation stores a new delegation record and returns its
	// sequential id. Records are never deleted.
	AppendDelegation(ctx context.Context, delegation entities.Delegation) (uint64, error)
	// FindDelegation scans records in id order and returns the first exact
	// (voter, proxy, proof hash) match.
	FindDelegation(ctx context.Context, voter string, proxy string, proofHash entities.ProofHash) (entities.Delegation, bool, error)
	GetDelegation(ctx context.Context, delegationID uint64) (entities.Delegation, bool, error)
}

type BalanceRepository interface {
	GetBalance(ctx context.Context, principal string) (uint64, error)
	SaveBalance(ctx context.Context, principal string, balance uint64) error
}

type SettingsRepository interface {
	GetSettings(ctx context.Context) (entities.Settings, error)
	SaveSettings(ctx context.Context, settings entities.Settings) error
}

type AuditLog interface {
	AppendAudit(ctx context.Context, action string, actor string, height uint64) (uint64, error)
	GetAuditRecord(ctx context.Context, logID uint64) (audit.Record, bool, error)
}

// TransferSink records value-transfer intents for the external ledger.
type TransferSink interface {
	RecordTransfer(ctx context.Context, intent entities.TransferIntent) error
}
