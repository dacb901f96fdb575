package ports

import (
	"context"

	"electra/contexts/identity-access/voter-registry/domain/entities"
	"electra/internal/shared/audit"
)

type VoterRepository interface {
	// NextVoterID returns the id the next successful registration will take.
	NextVoterID(ctx context.Context) (uint64, error)
	// InsertVoter stores a new voter under voter.ID, indexes its principal,
	// and advances the sequential id counter.
	InsertVoter(ctx context.Context, voter entities.Voter) error
	UpdateVoter(ctx context.Context, voter entities.Voter) error
	GetVoter(ctx context.Context, voterID uint64) (entities.Voter, bool, error)
	GetVoterIDByPrincipal(ctx context.Context, principal string) (uint64, bool, error)
}

type SettingsRepository interface {
	GetSettings(ctx context.Context) (entities.Settings, error)
	SaveSettings(ctx context.Context, settings entities.Settings) error
}

type AuditLog interface {
	AppendAudit(ctx context.Context, action string, actor string, height uint64) (uint64, error)
	GetAuditRecord(ctx context.Context, logID uint64) (audit.Record, bool, error)
}

// TransferSink records value-transfer intents. Actual balance movement is
// settled by the external ledger that hosts this state machine.
type TransferSink interface {
	RecordTransfer(ctx context.Context, intent entities.TransferIntent) error
}
