package postgresadapter

import (
	"context"
	"errors"
	"log/slog"

	"electra/contexts/identity-access/voter-registry/domain/entities"
	domainerrors "electra/contexts/identity-access/voter-registry/domain/errors"
	"electra/contexts/identity-access/voter-registry/ports"
	"electra/internal/shared/audit"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository mirrors the registry state into postgres. The memory adapter is
// authoritative for deterministic semantics; this adapter backs deployments
// where the host wants durable reads.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) NextVoterID(ctx context.Context) (uint64, error) {
	var maxID uint64
	err := r.db.WithContext(ctx).
		Model(&voterModel{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).
		Error
	if err != nil {
		return 0, r.logError("registry_repo_next_voter_id_failed", err)
	}
	return maxID + 1, nil
}

func (r *Repository) InsertVoter(ctx context.Context, voter entities.Voter) error {
	row := voterModelFromEntity(voter)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyRegistered
		}
		return r.logError("registry_repo_insert_voter_failed", err, "voter_id", voter.ID)
	}
	return nil
}

func (r *Repository) UpdateVoter(ctx context.Context, voter entities.Voter) error {
	row := voterModelFromEntity(voter)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"active": row.Active,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("registry_repo_update_voter_failed", err, "voter_id", voter.ID)
	}
	return nil
}

func (r *Repository) GetVoter(ctx context.Context, voterID uint64) (entities.Voter, bool, error) {
	var row voterModel
	err := r.db.WithContext(ctx).Where("id = ?", voterID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Voter{}, false, nil
		}
		return entities.Voter{}, false, r.logError("registry_repo_get_voter_failed", err, "voter_id", voterID)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) GetVoterIDByPrincipal(ctx context.Context, principal string) (uint64, bool, error) {
	var row voterModel
	err := r.db.WithContext(ctx).Where("principal = ?", principal).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, r.logError("registry_repo_get_voter_by_principal_failed", err, "principal", principal)
	}
	return row.ID, true, nil
}

func (r *Repository) GetSettings(ctx context.Context) (entities.Settings, error) {
	var row settingsModel
	err := r.db.WithContext(ctx).Where("id = ?", settingsRowID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Settings{}, gorm.ErrRecordNotFound
		}
		return entities.Settings{}, r.logError("registry_repo_get_settings_failed", err)
	}
	return row.toEntity(), nil
}

func (r *Repository) SaveSettings(ctx context.Context, settings entities.Settings) error {
	row := settingsModelFromEntity(settings)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"admin":             row.Admin,
			"registration_fee":  row.RegistrationFee,
			"max_voters":        row.MaxVoters,
			"registration_open": row.RegistrationOpen,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("registry_repo_save_settings_failed", err)
	}
	return nil
}

// EnsureSettings writes defaults when no settings row exists yet.
func (r *Repository) EnsureSettings(ctx context.Context, defaults entities.Settings) error {
	_, err := r.GetSettings(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.SaveSettings(ctx, defaults)
	}
	return err
}

func (r *Repository) AppendAudit(ctx context.Context, action string, actor string, height uint64) (uint64, error) {
	var maxID uint64
	err := r.db.WithContext(ctx).
		Model(&auditModel{}).
		Select("COALESCE(MAX(log_id), 0)").
		Scan(&maxID).
		Error
	if err != nil {
		return 0, r.logError("registry_repo_audit_sequence_failed", err)
	}
	row := auditModel{
		LogID:     maxID + 1,
		Action:    action,
		Actor:     actor,
		Timestamp: height,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, r.logError("registry_repo_append_audit_failed", err, "action", action)
	}
	return row.LogID, nil
}

func (r *Repository) GetAuditRecord(ctx context.Context, logID uint64) (audit.Record, bool, error) {
	var row auditModel
	err := r.db.WithContext(ctx).Where("log_id = ?", logID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return audit.Record{}, false, nil
		}
		return audit.Record{}, false, r.logError("registry_repo_get_audit_failed", err, "log_id", logID)
	}
	return audit.Record{
		ID:        row.LogID,
		Action:    row.Action,
		Actor:     row.Actor,
		Timestamp: row.Timestamp,
	}, true, nil
}

func (r *Repository) RecordTransfer(ctx context.Context, intent entities.TransferIntent) error {
	row := transferModel{
		Amount:        intent.Amount,
		FromPrincipal: intent.From,
		ToPrincipal:   intent.To,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("registry_repo_record_transfer_failed", err)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "identity-access/voter-registry",
		"layer", "adapter/postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("registry repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.VoterRepository = (*Repository)(nil)
var _ ports.SettingsRepository = (*Repository)(nil)
var _ ports.AuditLog = (*Repository)(nil)
var _ ports.TransferSink = (*Repository)(nil)
