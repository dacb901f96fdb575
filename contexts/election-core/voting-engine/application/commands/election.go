package commands

import (
	"context"
	"log/slog"

	application "electra/contexts/election-core/voting-engine/application"
	"electra/contexts/election-core/voting-engine/domain/entities"
	domainerrors "electra/contexts/election-core/voting-engine/domain/errors"
	"electra/contexts/election-core/voting-engine/ports"
)

// ConfigureElectionCommand creates or overwrites an election window.
type ConfigureElectionCommand struct {
	Caller     string
	Height     uint64
	ElectionID uint64
	Start      uint64
	End        uint64
	Options    []uint64
}

// FinalizeElectionCommand closes an election after its window has passed.
type FinalizeElectionCommand struct {
	Caller     string
	Height     uint64
	ElectionID uint64
}

type SetAdminCommand struct {
	Caller   string
	Height   uint64
	NewAdmin string
}

type SetVoteFeeCommand struct {
	Caller string
	Height uint64
	Fee    uint64
}

type SetMaxVotesCommand struct {
	Caller   string
	Height   uint64
	MaxVotes uint64
}

// ElectionUseCase owns election lifecycle and engine administration.
type ElectionUseCase struct {
	Elections ports.ElectionRepository
	Settings  ports.SettingsRepository
	Audit     ports.AuditLog
	Logger    *slog.Logger
}

// ConfigureElection stores an election config with its option set. The
// window must lie strictly in the future and be well-ordered. Re-configuring
// an existing id overwrites it; prior ballots and tallies are untouched.
func (uc ElectionUseCase) ConfigureElection(ctx context.Context, cmd ConfigureElectionCommand) error {
	settings, err := uc.Settings.GetSettings(ctx)
	if err != nil {
		return err
	}
	if cmd.Caller != settings.Admin {
		return domainerrors.ErrNotAuthorized
	}
	if cmd.Start <= cmd.Height {
		return domainerrors.ErrInvalidTimestamp
	}
	if cmd.End <= cmd.Start {
		return domainerrors.ErrInvalidTimestamp
	}
	if err := uc.Elections.SaveElection(ctx, entities.Election{
		ID:        cmd.ElectionID,
		Start:     cmd.Start,
		End:       cmd.End,
		Active:    true,
		Finalized: false,
		Options:   append([]uint64(nil), cmd.Options...),
	}); err != nil {
		return err
	}
	if _, err := uc.Audit.AppendAudit(ctx, "configure-election", cmd.Caller, cmd.Height); err != nil {
		return err
	}
	application.ResolveLogger(uc.Logger).Info("election configured",
		"event", "engine_election_configured",
		"module", "election-core/voting-engine",
		"layer", "application",
		"election_id", cmd.ElectionID,
		"start", cmd.Start,
		"end", cmd.End,
		"options", len(cmd.Options),
	)
	return nil
}

// FinalizeElection performs the one-way close. It is only legal strictly
// after the election's end height.
func (uc ElectionUseCase) FinalizeElection(ctx context.Context, cmd FinalizeElectionCommand) error {
	settings, err := uc.Settings.GetSettings(ctx)
	if err != nil {
		return err
	}
	if cmd.Caller != settings.Admin {
		return domainerrors.ErrNotAuthorized
	}
	election, found, err := uc.Elections.GetElection(ctx, cmd.ElectionID)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrInvalidElection
	}
	if cmd.Height <= election.End {
		return domainerrors.ErrElectionClosed
	}
	if election.Finalized {
		return domainerrors.ErrElectionFinalized
	}
	election.Finalized = true
	election.Active = false
	if err := uc.Elections.SaveElection(ctx, election); err != nil {
		return err
	}
	if _, err := uc.Audit.AppendAudit(ctx, "finalize-election", cmd.Caller, cmd.Height); err != nil {
		return err
	}
	application.ResolveLogger(uc.Logger).Info("election finalized",
		"event", "engine_election_finalized",
		"module", "election-core/voting-engine",
		"layer", "application",
		"election_id", cmd.ElectionID,
		"height", cmd.Height,
	)
	return nil
}

// SetAdmin transfers engine administration to a new principal.
func (uc ElectionUseCase) SetAdmin(ctx context.Context, cmd SetAdminCommand) error {
	settings, err := uc.Settings.GetSettings(ctx)
	if err != nil {
		return err
	}
	if cmd.Caller != settings.Admin {
		return domainerrors.ErrNotAuthorized
	}
	settings.Admin = cmd.NewAdmin
	if err := uc.Settings.SaveSettings(ctx, settings); err != nil {
		return err
	}
	if _, err := uc.Audit.AppendAudit(ctx, "set-admin", cmd.Caller, cmd.Height); err != nil {
		return err
	}
	return nil
}

// SetVoteFee updates the fee charged per cast vote.
func (uc ElectionUseCase) SetVoteFee(ctx context.Context, cmd SetVoteFeeCommand) error {
	settings, err := uc.Settings.GetSettings(ctx)
	if err != nil {
		return err
	}
	if cmd.Caller != settings.Admin {
		return domainerrors.ErrNotAuthorized
	}
	if cmd.Fee == 0 {
		return domainerrors.ErrInvalidAmount
	}
	settings.VoteFee = cmd.Fee
	if err := uc.Settings.SaveSettings(ctx, settings); err != nil {
		return err
	}
	if _, err := uc.Audit.AppendAudit(ctx, "set-vote-fee", cmd.Caller, cmd.Height); err != nil {
		return err
	}
	return nil
}

// SetMaxVotesPerVoter updates the per-voter vote cap.
func (uc ElectionUseCase) SetMaxVotesPerVoter(ctx context.Context, cmd SetMaxVotesCommand) error {
	settings, err := uc.Settings.GetSettings(ctx)
	if err != nil {
		return err
	}
	if cmd.Caller != settings.Admin {
		return domainerrors.ErrNotAuthorized
	}
	if cmd.MaxVotes == 0 {
		return domainerrors.ErrInvalidAmount
	}
	settings.MaxVotesPerVoter = cmd.MaxVotes
	if err := uc.Settings.SaveSettings(ctx, settings); err != nil {
		return err
	}
	if _, err := uc.Audit.AppendAudit(ctx, "set-max-votes", cmd.Caller, cmd.Height); err != nil {
		return err
	}
	return nil
}
