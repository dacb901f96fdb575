package application

import (
	"context"
	"log/slog"

	"electra/contexts/identity-access/voter-registry/domain/entities"
	domainerrors "electra/contexts/identity-access/voter-registry/domain/errors"
	"electra/contexts/identity-access/voter-registry/ports"
	"electra/internal/shared/audit"
)

// Service orchestrates registry operations. Every method takes the
// authenticated caller principal and the current block height from the host
// environment, validates against current state, and only then mutates.
// Failed calls commit nothing; successful calls append exactly one audit
// record.
type Service struct {
	Voters    ports.VoterRepository
	Settings  ports.SettingsRepository
	Audit     ports.AuditLog
	Transfers ports.TransferSink
	Logger    *slog.Logger
}

// RegisterVoter enrolls the caller and returns the assigned voter id. The
// registration fee is recorded as a transfer intent from the caller to the
// admin.
func (s Service) RegisterVoter(
	ctx context.Context,
	caller string,
	height uint64,
	proofHash entities.ProofHash,
) (uint64, error) {
	settings, err := s.Settings.GetSettings(ctx)
	if err != nil {
		return 0, err
	}
	if !settings.RegistrationOpen {
		return 0, domainerrors.ErrRegistrationClosed
	}
	voterID, err := s.Voters.NextVoterID(ctx)
	if err != nil {
		return 0, err
	}
	if voterID > settings.MaxVoters {
		return 0, domainerrors.ErrMaxVotersExceeded
	}
	if _, exists, err := s.Voters.GetVoterIDByPrincipal(ctx, caller); err != nil {
		return 0, err
	} else if exists {
		return 0, domainerrors.ErrAlreadyRegistered
	}

	if err := s.Transfers.RecordTransfer(ctx, entities.TransferIntent{
		Amount: settings.RegistrationFee,
		From:   caller,
		To:     settings.Admin,
	}); err != nil {
		return 0, err
	}
	if err := s.Voters.InsertVoter(ctx, entities.Voter{
		ID:           voterID,
		Principal:    caller,
		ProofHash:    proofHash,
		RegisteredAt: height,
		Active:       true,
	}); err != nil {
		return 0, err
	}
	if _, err := s.Audit.AppendAudit(ctx, "register-voter", caller, height); err != nil {
		return 0, err
	}

	ResolveLogger(s.Logger).Info("voter registered",
		"event", "registry_voter_registered",
		"module", "identity-access/voter-registry",
		"layer", "application",
		"voter_id", voterID,
		"principal", caller,
		"height", height,
	)
	return voterID, nil
}

// VerifyVoter checks the stored enrollment proof against the supplied one.
// Success mutates nothing beyond the audit log.
func (s Service) VerifyVoter(
	ctx context.Context,
	caller string,
	height uint64,
	voterID uint64,
	proofHash entities.ProofHash,
) error {
	voter, found, err := s.Voters.GetVoter(ctx, voterID)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrVoterNotFound
	}
	if voter.ProofHash != proofHash {
		return domainerrors.ErrInvalidProof
	}
	if !voter.Active {
		return domainerrors.ErrInactiveVoter
	}
	if _, err := s.Audit.AppendAudit(ctx, "verify-voter", caller, height); err != nil {
		return err
	}
	return nil
}

// UpdateVoterStatus activates or deactivates a voter. Admin only.
func (s Service) UpdateVoterStatus(
	ctx context.Context,
	caller string,
	height uint64,
	voterID uint64,
	active bool,
) error {
	if err := s.requireAdmin(ctx, caller); err != nil {
		return err
	}
	voter, found, err := s.Voters.GetVoter(ctx, voterID)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrVoterNotFound
	}
	voter.Active = active
	if err := s.Voters.UpdateVoter(ctx, voter); err != nil {
		return err
	}
	action := "deactivate-voter"
	if active {
		action = "activate-voter"
	}
	if _, err := s.Audit.AppendAudit(ctx, action, caller, height); err != nil {
		return err
	}
	ResolveLogger(s.Logger).Info("voter status updated",
		"event", "registry_voter_status_updated",
		"module", "identity-access/voter-registry",
		"layer", "application",
		"voter_id", voterID,
		"active", active,
	)
	return nil
}

// SetAdmin transfers registry administration to a new principal. Admin only.
func (s Service) SetAdmin(ctx context.Context, caller string, height uint64, newAdmin string) error {
	settings, err := s.Settings.GetSettings(ctx)
	if err != nil {
		return err
	}
	if caller != settings.Admin {
		return domainerrors.ErrNotAuthorized
	}
	settings.Admin = newAdmin
	if err := s.Settings.SaveSettings(ctx, settings); err != nil {
		return err
	}
	if _, err := s.Audit.AppendAudit(ctx, "set-admin", caller, height); err != nil {
		return err
	}
	return nil
}

// SetRegistrationFee updates the fee charged on registration. Admin only;
// the fee must be strictly positive.
func (s Service) SetRegistrationFee(ctx context.Context, caller string, height uint64, fee uint64) error {
	settings, err := s.Settings.GetSettings(ctx)
	if err != nil {
		return err
	}
	if caller != settings.Admin {
		return domainerrors.ErrNotAuthorized
	}
	if fee == 0 {
		return domainerrors.ErrInvalidAmount
	}
	settings.RegistrationFee = fee
	if err := s.Settings.SaveSettings(ctx, settings); err != nil {
		return err
	}
	if _, err := s.Audit.AppendAudit(ctx, "set-registration-fee", caller, height); err != nil {
		return err
	}
	return nil
}

// ToggleRegistration opens or closes enrollment. Admin only.
func (s Service) ToggleRegistration(ctx context.Context, caller string, height uint64, open bool) error {
	settings, err := s.Settings.GetSettings(ctx)
	if err != nil {
		return err
	}
	if caller != settings.Admin {
		return domainerrors.ErrNotAuthorized
	}
	settings.RegistrationOpen = open
	if err := s.Settings.SaveSettings(ctx, settings); err != nil {
		return err
	}
	action := "close-registration"
	if open {
		action = "open-registration"
	}
	if _, err := s.Audit.AppendAudit(ctx, action, caller, height); err != nil {
		return err
	}
	return nil
}

// SetMaxVoters updates the registration cap. Admin only; the cap must be
// strictly positive.
func (s Service) SetMaxVoters(ctx context.Context, caller string, height uint64, maxVoters uint64) error {
	settings, err := s.Settings.GetSettings(ctx)
	if err != nil {
		return err
	}
	if caller != settings.Admin {
		return domainerrors.ErrNotAuthorized
	}
	if maxVoters == 0 {
		return domainerrors.ErrInvalidAmount
	}
	settings.MaxVoters = maxVoters
	if err := s.Settings.SaveSettings(ctx, settings); err != nil {
		return err
	}
	if _, err := s.Audit.AppendAudit(ctx, "set-max-voters", caller, height); err != nil {
		return err
	}
	return nil
}

// GetVoter looks up a voter by id.
func (s Service) GetVoter(ctx context.Context, voterID uint64) (entities.Voter, error) {
	voter, found, err := s.Voters.GetVoter(ctx, voterID)
	if err != nil {
		return entities.Voter{}, err
	}
	if !found {
		return entities.Voter{}, domainerrors.ErrVoterNotFound
	}
	return voter, nil
}

// GetVoterIDByPrincipal resolves the voter id for a principal.
func (s Service) GetVoterIDByPrincipal(ctx context.Context, principal string) (uint64, error) {
	voterID, found, err := s.Voters.GetVoterIDByPrincipal(ctx, principal)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, domainerrors.ErrVoterNotFound
	}
	return voterID, nil
}

// RegistrationStatus reports whether enrollment is open.
func (s Service) RegistrationStatus(ctx context.Context) (bool, error) {
	settings, err := s.Settings.GetSettings(ctx)
	if err != nil {
		return false, err
	}
	return settings.RegistrationOpen, nil
}

// VoterCount reports the next voter id, matching the host contract's
// voter-count read.
func (s Service) VoterCount(ctx context.Context) (uint64, error) {
	return s.Voters.NextVoterID(ctx)
}

// GetAuditRecord looks up a registry audit record by id.
func (s Service) GetAuditRecord(ctx context.Context, logID uint64) (audit.Record, error) {
	record, found, err := s.Audit.GetAuditRecord(ctx, logID)
	if err != nil {
		return audit.Record{}, err
	}
	if !found {
		return audit.Record{}, domainerrors.ErrAuditLogNotFound
	}
	return record, nil
}

func (s Service) requireAdmin(ctx context.Context, caller string) error {
	settings, err := s.Settings.GetSettings(ctx)
	if err != nil {
		return err
	}
	if caller != settings.Admin {
		return domainerrors.ErrNotAuthorized
	}
	return nil
}
