package commands

import (
	"context"
	"log/slog"

	application "electra/contexts/election-core/voting-engine/application"
	"electra/contexts/election-core/voting-engine/domain/entities"
	domainerrors "electra/contexts/election-core/voting-engine/domain/errors"
	"electra/contexts/election-core/voting-engine/ports"
)

// RegisterEligibilityCommand enrolls a principal into the current voting
// cycle. Admin only; distinct from identity enrollment in the registry.
type RegisterEligibilityCommand struct {
	Caller string
	Height uint64
	Voter  string
}

// CastVoteCommand is a direct vote: the caller votes as themselves and pays
// the vote fee.
type CastVoteCommand struct {
	Caller     string
	Height     uint64
	ElectionID uint64
	Option     uint64
	Voter      string
}

// CastProxyVoteCommand is a vote cast by a delegated proxy on the voter's
// behalf. The caller must hold an unrevoked proxy slot and present the
// delegation proof.
type CastProxyVoteCommand struct {
	Caller     string
	Height     uint64
	ElectionID uint64
	Option     uint64
	Voter      string
	ProofHash  entities.ProofHash
}

// BallotUseCase owns eligibility and vote casting. Checks run in a fixed
// order (eligibility, election window, vote cap, option validity, duplicate
// vote, then proxy authorization and proof) so the first failing condition
// determines the returned error.
type BallotUseCase struct {
	Elections   ports.ElectionRepository
	Eligibility ports.EligibilityRepository
	Ballots     ports.BallotRepository
	Delegations ports.DelegationRepository
	Settings    ports.SettingsRepository
	Audit       ports.AuditLog
	Transfers   ports.TransferSink
	Logger      *slog.Logger
}

// RegisterEligibility creates the voter's eligibility record with a zero
// vote count.
func (uc BallotUseCase) RegisterEligibility(ctx context.Context, cmd RegisterEligibilityCommand) error {
	settings, err := uc.Settings.GetSettings(ctx)
	if err != nil {
		return err
	}
	if cmd.Caller != settings.Admin {
		return domainerrors.ErrNotAuthorized
	}
	if _, exists, err := uc.Eligibility.GetEligibility(ctx, cmd.Voter); err != nil {
		return err
	} else if exists {
		return domainerrors.ErrInvalidVoter
	}
	if err := uc.Eligibility.SaveEligibility(ctx, cmd.Voter, entities.Eligibility{
		Eligible:  true,
		VotesCast: 0,
	}); err != nil {
		return err
	}
	if _, err := uc.Audit.AppendAudit(ctx, "register-voter", cmd.Caller, cmd.Height); err != nil {
		return err
	}
	return nil
}

// CastVote commits a direct vote.
func (uc BallotUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) error {
	eligibility, settings, err := uc.validateCast(ctx, cmd.ElectionID, cmd.Option, cmd.Voter, cmd.Height)
	if err != nil {
		return err
	}
	return uc.commitBallot(ctx, ballotCommit{
		caller:      cmd.Caller,
		height:      cmd.Height,
		electionID:  cmd.ElectionID,
		option:      cmd.Option,
		voter:       cmd.Voter,
		proxy:       nil,
		eligibility: eligibility,
		settings:    settings,
		auditAction: "cast-vote",
	})
}

// CastProxyVote commits a vote on the voter's behalf. After the shared cast
// checks, the caller must match the voter's unrevoked proxy slot and a
// delegation record with the exact (voter, caller, proof) triple must exist;
// the scan over delegation records takes the first match.
func (uc BallotUseCase) CastProxyVote(ctx context.Context, cmd CastProxyVoteCommand) error {
	eligibility, settings, err := uc.validateCast(ctx, cmd.ElectionID, cmd.Option, cmd.Voter, cmd.Height)
	if err != nil {
		return err
	}

	proxy, exists, err := uc.Delegations.GetProxy(ctx, cmd.Voter)
	if err != nil {
		return err
	}
	if !exists || proxy.Proxy != cmd.Caller || proxy.Revoked {
		return domainerrors.ErrInvalidProxy
	}
	if _, found, err := uc.Delegations.FindDelegation(ctx, cmd.Voter, cmd.Caller, cmd.ProofHash); err != nil {
		return err
	} else if !found {
		return domainerrors.ErrInvalidProof
	}

	caller := cmd.Caller
	return uc.commitBallot(ctx, ballotCommit{
		caller:      cmd.Caller,
		height:      cmd.Height,
		electionID:  cmd.ElectionID,
		option:      cmd.Option,
		voter:       cmd.Voter,
		proxy:       &caller,
		eligibility: eligibility,
		settings:    settings,
		auditAction: "cast-proxy-vote",
	})
}

// validateCast runs the shared checks 1–5 in their fixed order.
func (uc BallotUseCase) validateCast(
	ctx context.Context,
	electionID uint64,
	option uint64,
	voter string,
	height uint64,
) (entities.Eligibility, entities.Settings, error) {
	var none entities.Eligibility
	var noSettings entities.Settings

	settings, err := uc.Settings.GetSettings(ctx)
	if err != nil {
		return none, noSettings, err
	}

	eligibility, found, err := uc.Eligibility.GetEligibility(ctx, voter)
	if err != nil {
		return none, noSettings, err
	}
	if !found || !eligibility.Eligible {
		return none, noSettings, domainerrors.ErrInvalidVoter
	}

	election, found, err := uc.Elections.GetElection(ctx, electionID)
	if err != nil {
		return none, noSettings, err
	}
	if !found || !election.AcceptsVotesAt(height) {
		return none, noSettings, domainerrors.ErrElectionClosed
	}

	if eligibility.VotesCast >= settings.MaxVotesPerVoter {
		return none, noSettings, domainerrors.ErrMaxVotesExceeded
	}
	if !election.HasOption(option) {
		return none, noSettings, domainerrors.ErrInvalidOption
	}
	if _, exists, err := uc.Ballots.GetBallot(ctx, electionID, voter); err != nil {
		return none, noSettings, err
	} else if exists {
		return none, noSettings, domainerrors.ErrVoteAlreadyCast
	}
	return eligibility, settings, nil
}

type ballotCommit struct {
	caller      string
	height      uint64
	electionID  uint64
	option      uint64
	voter       string
	proxy       *string
	eligibility entities.Eligibility
	settings    entities.Settings
	auditAction string
}

func (uc BallotUseCase) commitBallot(ctx context.Context, commit ballotCommit) error {
	if err := uc.Transfers.RecordTransfer(ctx, entities.TransferIntent{
		Amount: commit.settings.VoteFee,
		From:   commit.caller,
		To:     commit.settings.Admin,
	}); err != nil {
		return err
	}
	if err := uc.Ballots.SaveBallot(ctx, entities.Ballot{
		ElectionID: commit.electionID,
		Voter:      commit.voter,
		Option:     commit.option,
		CastAt:     commit.height,
		Proxy:      commit.proxy,
	}); err != nil {
		return err
	}
	if _, err := uc.Ballots.IncrementTally(ctx, commit.electionID, commit.option); err != nil {
		return err
	}
	commit.eligibility.VotesCast++
	if err := uc.Eligibility.SaveEligibility(ctx, commit.voter, commit.eligibility); err != nil {
		return err
	}
	if _, err := uc.Audit.AppendAudit(ctx, commit.auditAction, commit.caller, commit.height); err != nil {
		return err
	}

	application.ResolveLogger(uc.Logger).Info("ballot committed",
		"event", "engine_ballot_committed",
		"module", "election-core/voting-engine",
		"layer", "application",
		"election_id", commit.electionID,
		"option", commit.option,
		"voter", commit.voter,
		"by_proxy", commit.proxy != nil,
		"height", commit.height,
	)
	return nil
}
