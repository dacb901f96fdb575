package postgresadapter

import (
	"context"
	"errors"
	"log/slog"

	"electra/contexts/election-core/voting-engine/domain/entities"
	domainerrors "electra/contexts/election-core/voting-engine/domain/errors"
	"electra/contexts/election-core/voting-engine/ports"
	"electra/internal/shared/audit"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository mirrors the engine state into postgres. The memory adapter is
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

func (r *Repository) SaveElection(ctx context.Context, election entities.Election) error {
	row := electionModelFromEntity(election)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"start_height": row.Start,
			"end_height":   row.End,
			"active":       row.Active,
			"finalized":    row.Finalized,
			"options":      row.Options,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("engine_repo_save_election_failed", err, "election_id", election.ID)
	}
	return nil
}

func (r *Repository) GetElection(ctx context.Context, electionID uint64) (entities.Election, bool, error) {
	var row electionModel
	err := r.db.WithContext(ctx).Where("id = ?", electionID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Election{}, false, nil
		}
		return entities.Election{}, false, r.logError("engine_repo_get_election_failed", err, "election_id", electionID)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) GetEligibility(ctx context.Context, voter string) (entities.Eligibility, bool, error) {
	var row eligibilityModel
	err := r.db.WithContext(ctx).Where("voter = ?", voter).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Eligibility{}, false, nil
		}
		return entities.Eligibility{}, false, r.logError("engine_repo_get_eligibility_failed", err, "voter", voter)
	}
	return entities.Eligibility{Eligible: row.Eligible, VotesCast: row.VotesCast}, true, nil
}

func (r *Repository) SaveEligibility(ctx context.Context, voter string, eligibility entities.Eligibility) error {
	row := eligibilityModel{Voter: voter, Eligible: eligibility.Eligible, VotesCast: eligibility.VotesCast}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "voter"}},
		DoUpdates: clause.Assignments(map[string]any{
			"eligible":   row.Eligible,
			"votes_cast": row.VotesCast,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("engine_repo_save_eligibility_failed", err, "voter", voter)
	}
	return nil
}

func (r *Repository) GetBallot(ctx context.Context, electionID uint64, voter string) (entities.Ballot, bool, error) {
	var row ballotModel
	err := r.db.WithContext(ctx).Where("election_id = ? AND voter = ?", electionID, voter).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Ballot{}, false, nil
		}
		return entities.Ballot{}, false, r.logError("engine_repo_get_ballot_failed", err, "election_id", electionID, "voter", voter)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) SaveBallot(ctx context.Context, ballot entities.Ballot) error {
	row := ballotModel{
		ElectionID: ballot.ElectionID,
		Voter:      ballot.Voter,
		Option:     ballot.Option,
		CastAt:     ballot.CastAt,
		Proxy:      ballot.Proxy,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrVoteAlreadyCast
		}
		return r.logError("engine_repo_save_ballot_failed", err, "election_id", ballot.ElectionID, "voter", ballot.Voter)
	}
	return nil
}

func (r *Repository) GetTally(ctx context.Context, electionID uint64, option uint64) (uint64, error) {
	var row tallyModel
	err := r.db.WithContext(ctx).Where("election_id = ? AND option = ?", electionID, option).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, r.logError("engine_repo_get_tally_failed", err, "election_id", electionID, "option", option)
	}
	return row.Count, nil
}

func (r *Repository) IncrementTally(ctx context.Context, electionID uint64, option uint64) (uint64, error) {
	row := tallyModel{ElectionID: electionID, Option: option, Count: 1}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "election_id"}, {Name: "option"}},
		DoUpdates: clause.Assignments(map[string]any{
			"count": gorm.Expr("engine_tallies.count + 1"),
		}),
	}).Create(&row).Error
	if err != nil {
		return 0, r.logError("engine_repo_increment_tally_failed", err, "election_id", electionID, "option", option)
	}
	return r.GetTally(ctx, electionID, option)
}

func (r *Repository) GetProxy(ctx context.Context, voter string) (entities.Proxy, bool, error) {
	var row proxyModel
	err := r.db.WithContext(ctx).Where("voter = ?", voter).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Proxy{}, false, nil
		}
		return entities.Proxy{}, false, r.logError("engine_repo_get_proxy_failed", err, "voter", voter)
	}
	return entities.Proxy{Proxy: row.Proxy, DelegatedAt: row.DelegatedAt, Revoked: row.Revoked}, true, nil
}

func (r *Repository) SaveProxy(ctx context.Context, voter string, proxy entities.Proxy) error {
	row := proxyModel{Voter: voter, Proxy: proxy.Proxy, DelegatedAt: proxy.DelegatedAt, Revoked: proxy.Revoked}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "voter"}},
		DoUpdates: clause.Assignments(map[string]any{
			"proxy":        row.Proxy,
			"delegated_at": row.DelegatedAt,
			"revoked":      row.Revoked,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("engine_repo_save_proxy_failed", err, "voter", voter)
	}
	return nil
}

func (r *Repository) AppendDelegation(ctx context.Context, delegation entities.Delegation) (uint64, error) {
	var maxID uint64
	err := r.db.WithContext(ctx).
		Model(&delegationModel{}).
		Select("COALESCE(MAX(id), 0)").
		Scan(&maxID).
		Error
	if err != nil {
		return 0, r.logError("engine_repo_delegation_sequence_failed", err)
	}
	row := delegationModel{
		ID:        maxID + 1,
		Voter:     delegation.Voter,
		Proxy:     delegation.Proxy,
		ProofHash: append([]byte(nil), delegation.ProofHash[:]...),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, r.logError("engine_repo_append_delegation_failed", err, "voter", delegation.Voter)
	}
	return row.ID, nil
}

func (r *Repository) FindDelegation(ctx context.Context, voter string, proxy string, proofHash entities.ProofHash) (entities.Delegation, bool, error) {
	var row delegationModel
	err := r.db.WithContext(ctx).
		Where("voter = ? AND proxy = ? AND proof_hash = ?", voter, proxy, proofHash[:]).
		Order("id").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Delegation{}, false, nil
		}
		return entities.Delegation{}, false, r.logError("engine_repo_find_delegation_failed", err, "voter", voter)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) GetDelegation(ctx context.Context, delegationID uint64) (entities.Delegation, bool, error) {
	var row delegationModel
	err := r.db.WithContext(ctx).Where("id = ?", delegationID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Delegation{}, false, nil
		}
		return entities.Delegation{}, false, r.logError("engine_repo_get_delegation_failed", err, "delegation_id", delegationID)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) GetBalance(ctx context.Context, principal string) (uint64, error) {
	var row balanceModel
	err := r.db.WithContext(ctx).Where("principal = ?", principal).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, r.logError("engine_repo_get_balance_failed", err, "principal", principal)
	}
	return row.Balance, nil
}

func (r *Repository) SaveBalance(ctx context.Context, principal string, balance uint64) error {
	row := balanceModel{Principal: principal, Balance: balance}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "principal"}},
		DoUpdates: clause.Assignments(map[string]any{
			"balance": row.Balance,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("engine_repo_save_balance_failed", err, "principal", principal)
	}
	return nil
}

func (r *Repository) GetSettings(ctx context.Context) (entities.Settings, error) {
	var row settingsModel
	err := r.db.WithContext(ctx).Where("id = ?", settingsRowID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Settings{}, gorm.ErrRecordNotFound
		}
		return entities.Settings{}, r.logError("engine_repo_get_settings_failed", err)
	}
	return entities.Settings{
		Admin:            row.Admin,
		VoteFee:          row.VoteFee,
		MaxVotesPerVoter: row.MaxVotesPerVoter,
	}, nil
}

func (r *Repository) SaveSettings(ctx context.Context, settings entities.Settings) error {
	row := settingsModel{
		ID:               settingsRowID,
		Admin:            settings.Admin,
		VoteFee:          settings.VoteFee,
		MaxVotesPerVoter: settings.MaxVotesPerVoter,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"admin":               row.Admin,
			"vote_fee":            row.VoteFee,
			"max_votes_per_voter": row.MaxVotesPerVoter,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("engine_repo_save_settings_failed", err)
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
		return 0, r.logError("engine_repo_audit_sequence_failed", err)
	}
	row := auditModel{
		LogID:     maxID + 1,
		Action:    action,
		Actor:     actor,
		Timestamp: height,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, r.logError("engine_repo_append_audit_failed", err, "action", action)
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
		return audit.Record{}, false, r.logError("engine_repo_get_audit_failed", err, "log_id", logID)
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
		return r.logError("engine_repo_record_transfer_failed", err)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "election-core/voting-engine",
		"layer", "adapter/postgres",
		"error", err.Error(),
	}, args...)
	r.logger.Error("engine repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.ElectionRepository = (*Repository)(nil)
var _ ports.EligibilityRepository = (*Repository)(nil)
var _ ports.BallotRepository = (*Repository)(nil)
var _ ports.DelegationRepository = (*Repository)(nil)
var _ ports.BalanceRepository = (*Repository)(nil)
var _ ports.SettingsRepository = (*Repository)(nil)
var _ ports.AuditLog = (*Repository)(nil)
var _ ports.TransferSink = (*Repository)(nil)
