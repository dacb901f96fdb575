package queries

import (
	"context"
	"log/slog"

	"electra/contexts/election-core/voting-engine/domain/entities"
	domainerrors "electra/contexts/election-core/voting-engine/domain/errors"
	"electra/contexts/election-core/voting-engine/ports"
	"electra/internal/shared/audit"
)

// ElectionResults aggregates tallies for every configured option of one
// election.
type ElectionResults struct {
	ElectionID uint64
	Finalized  bool
	Counts     map[uint64]uint64
	TotalVotes uint64
}

// UseCase exposes the engine's read surface. Queries never mutate state and
// never append audit records.
type UseCase struct {
	Elections   ports.ElectionRepository
	Eligibility ports.EligibilityRepository
	Ballots     ports.BallotRepository
	Delegations ports.DelegationRepository
	Balances    ports.BalanceRepository
	Settings    ports.SettingsRepository
	Audit       ports.AuditLog
	Logger      *slog.Logger
}

func (uc UseCase) GetElection(ctx context.Context, electionID uint64) (entities.Election, error) {
	election, found, err := uc.Elections.GetElection(ctx, electionID)
	if err != nil {
		return entities.Election{}, err
	}
	if !found {
		return entities.Election{}, domainerrors.ErrInvalidElection
	}
	return election, nil
}

func (uc UseCase) GetBallot(ctx context.Context, electionID uint64, voter string) (entities.Ballot, error) {
	ballot, found, err := uc.Ballots.GetBallot(ctx, electionID, voter)
	if err != nil {
		return entities.Ballot{}, err
	}
	if !found {
		return entities.Ballot{}, domainerrors.ErrBallotNotFound
	}
	return ballot, nil
}

// GetTally returns the vote count for one (election, option) pair. Options
// with no votes report zero; the election itself must exist.
func (uc UseCase) GetTally(ctx context.Context, electionID uint64, option uint64) (uint64, error) {
	if _, found, err := uc.Elections.GetElection(ctx, electionID); err != nil {
		return 0, err
	} else if !found {
		return 0, domainerrors.ErrInvalidElection
	}
	return uc.Ballots.GetTally(ctx, electionID, option)
}

// GetResults assembles per-option counts and the vote total for an election.
func (uc UseCase) GetResults(ctx context.Context, electionID uint64) (ElectionResults, error) {
	election, found, err := uc.Elections.GetElection(ctx, electionID)
	if err != nil {
		return ElectionResults{}, err
	}
	if !found {
		return ElectionResults{}, domainerrors.ErrInvalidElection
	}
	results := ElectionResults{
		ElectionID: electionID,
		Finalized:  election.Finalized,
		Counts:     make(map[uint64]uint64, len(election.Options)),
	}
	for _, option := range election.Options {
		count, err := uc.Ballots.GetTally(ctx, electionID, option)
		if err != nil {
			return ElectionResults{}, err
		}
		results.Counts[option] = count
		results.TotalVotes += count
	}
	return results, nil
}

func (uc UseCase) GetEligibility(ctx context.Context, voter string) (entities.Eligibility, error) {
	eligibility, found, err := uc.Eligibility.GetEligibility(ctx, voter)
	if err != nil {
		return entities.Eligibility{}, err
	}
	if !found {
		return entities.Eligibility{}, domainerrors.ErrInvalidVoter
	}
	return eligibility, nil
}

func (uc UseCase) GetProxy(ctx context.Context, voter string) (entities.Proxy, error) {
	proxy, found, err := uc.Delegations.GetProxy(ctx, voter)
	if err != nil {
		return entities.Proxy{}, err
	}
	if !found {
		return entities.Proxy{}, domainerrors.ErrProxyNotAssigned
	}
	return proxy, nil
}

func (uc UseCase) GetDelegation(ctx context.Context, delegationID uint64) (entities.Delegation, error) {
	delegation, found, err := uc.Delegations.GetDelegation(ctx, delegationID)
	if err != nil {
		return entities.Delegation{}, err
	}
	if !found {
		return entities.Delegation{}, domainerrors.ErrDelegationNotFound
	}
	return delegation, nil
}

func (uc UseCase) GetBalance(ctx context.Context, principal string) (uint64, error) {
	return uc.Balances.GetBalance(ctx, principal)
}

func (uc UseCase) GetSettings(ctx context.Context) (entities.Settings, error) {
	return uc.Settings.GetSettings(ctx)
}

func (uc UseCase) GetAuditRecord(ctx context.Context, logID uint64) (audit.Record, error) {
	record, found, err := uc.Audit.GetAuditRecord(ctx, logID)
	if err != nil {
		return audit.Record{}, err
	}
	if !found {
		return audit.Record{}, domainerrors.ErrAuditLogNotFound
	}
	return record, nil
}
