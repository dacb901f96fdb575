package httpadapter

import (
	"context"
	"encoding/hex"
	"log/slog"

	"electra/contexts/election-core/voting-engine/application/commands"
	"electra/contexts/election-core/voting-engine/application/queries"
	"electra/contexts/election-core/voting-engine/domain/entities"
	domainerrors "electra/contexts/election-core/voting-engine/domain/errors"
	httptransport "electra/contexts/election-core/voting-engine/transport/http"
)

type Handler struct {
	Elections   commands.ElectionUseCase
	Ballots     commands.BallotUseCase
	Delegations commands.DelegationUseCase
	Treasury    commands.TreasuryUseCase
	Queries     queries.UseCase
	Logger      *slog.Logger
}

func (h Handler) ConfigureElectionHandler(ctx context.Context, caller string, height uint64, req httptransport.ConfigureElectionRequest) error {
	return h.Elections.ConfigureElection(ctx, commands.ConfigureElectionCommand{
		Caller:     caller,
		Height:     height,
		ElectionID: req.ElectionID,
		Start:      req.Start,
		End:        req.End,
		Options:    req.Options,
	})
}

func (h Handler) FinalizeElectionHandler(ctx context.Context, caller string, height uint64, req httptransport.FinalizeElectionRequest) error {
	return h.Elections.FinalizeElection(ctx, commands.FinalizeElectionCommand{
		Caller:     caller,
		Height:     height,
		ElectionID: req.ElectionID,
	})
}

func (h Handler) RegisterEligibilityHandler(ctx context.Context, caller string, height uint64, req httptransport.RegisterEligibilityRequest) error {
	return h.Ballots.RegisterEligibility(ctx, commands.RegisterEligibilityCommand{
		Caller: caller,
		Height: height,
		Voter:  req.Voter,
	})
}

func (h Handler) CastVoteHandler(ctx context.Context, caller string, height uint64, req httptransport.CastVoteRequest) error {
	return h.Ballots.CastVote(ctx, commands.CastVoteCommand{
		Caller:     caller,
		Height:     height,
		ElectionID: req.ElectionID,
		Option:     req.Option,
		Voter:      req.Voter,
	})
}

func (h Handler) CastProxyVoteHandler(ctx context.Context, caller string, height uint64, req httptransport.CastProxyVoteRequest) error {
	proofHash, err := decodeProofHash(req.ProofHash)
	if err != nil {
		return err
	}
	return h.Ballots.CastProxyVote(ctx, commands.CastProxyVoteCommand{
		Caller:     caller,
		Height:     height,
		ElectionID: req.ElectionID,
		Option:     req.Option,
		Voter:      req.Voter,
		ProofHash:  proofHash,
	})
}

func (h Handler) AssignProxyHandler(
	ctx context.Context,
	caller string,
	height uint64,
	req httptransport.AssignProxyRequest,
) (httptransport.AssignProxyResponse, error) {
	proofHash, err := decodeProofHash(req.ProofHash)
	if err != nil {
		return httptransport.AssignProxyResponse{}, err
	}
	delegationID, err := h.Delegations.AssignProxy(ctx, commands.AssignProxyCommand{
		Caller:    caller,
		Height:    height,
		Voter:     req.Voter,
		Proxy:     req.Proxy,
		ProofHash: proofHash,
	})
	if err != nil {
		return httptransport.AssignProxyResponse{}, err
	}
	return httptransport.AssignProxyResponse{DelegationID: delegationID}, nil
}

func (h Handler) RevokeProxyHandler(ctx context.Context, caller string, height uint64, req httptransport.RevokeProxyRequest) error {
	return h.Delegations.RevokeProxy(ctx, commands.RevokeProxyCommand{
		Caller: caller,
		Height: height,
		Voter:  req.Voter,
	})
}

func (h Handler) SetAdminHandler(ctx context.Context, caller string, height uint64, req httptransport.SetAdminRequest) error {
	return h.Elections.SetAdmin(ctx, commands.SetAdminCommand{Caller: caller, Height: height, NewAdmin: req.NewAdmin})
}

func (h Handler) SetVoteFeeHandler(ctx context.Context, caller string, height uint64, req httptransport.SetVoteFeeRequest) error {
	return h.Elections.SetVoteFee(ctx, commands.SetVoteFeeCommand{Caller: caller, Height: height, Fee: req.Fee})
}

func (h Handler) SetMaxVotesHandler(ctx context.Context, caller string, height uint64, req httptransport.SetMaxVotesRequest) error {
	return h.Elections.SetMaxVotesPerVoter(ctx, commands.SetMaxVotesCommand{Caller: caller, Height: height, MaxVotes: req.MaxVotes})
}

func (h Handler) DepositHandler(ctx context.Context, caller string, height uint64, req httptransport.DepositRequest) error {
	return h.Treasury.Deposit(ctx, commands.DepositCommand{Caller: caller, Height: height, Amount: req.Amount})
}

func (h Handler) WithdrawHandler(ctx context.Context, caller string, height uint64, req httptransport.WithdrawRequest) error {
	return h.Treasury.Withdraw(ctx, commands.WithdrawCommand{Caller: caller, Height: height, Amount: req.Amount})
}

func (h Handler) GetElectionHandler(ctx context.Context, electionID uint64) (httptransport.ElectionResponse, error) {
	election, err := h.Queries.GetElection(ctx, electionID)
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return httptransport.ElectionResponse{
		ElectionID: election.ID,
		Start:      election.Start,
		End:        election.End,
		Active:     election.Active,
		Finalized:  election.Finalized,
		Options:    election.Options,
	}, nil
}

func (h Handler) GetBallotHandler(ctx context.Context, electionID uint64, voter string) (httptransport.BallotResponse, error) {
	ballot, err := h.Queries.GetBallot(ctx, electionID, voter)
	if err != nil {
		return httptransport.BallotResponse{}, err
	}
	return httptransport.BallotResponse{
		ElectionID: ballot.ElectionID,
		Voter:      ballot.Voter,
		Option:     ballot.Option,
		CastAt:     ballot.CastAt,
		Proxy:      ballot.Proxy,
	}, nil
}

func (h Handler) GetTallyHandler(ctx context.Context, electionID uint64, option uint64) (httptransport.TallyResponse, error) {
	count, err := h.Queries.GetTally(ctx, electionID, option)
	if err != nil {
		return httptransport.TallyResponse{}, err
	}
	return httptransport.TallyResponse{ElectionID: electionID, Option: option, Count: count}, nil
}

func (h Handler) GetResultsHandler(ctx context.Context, electionID uint64) (httptransport.ResultsResponse, error) {
	results, err := h.Queries.GetResults(ctx, electionID)
	if err != nil {
		return httptransport.ResultsResponse{}, err
	}
	return httptransport.ResultsResponse{
		ElectionID: results.ElectionID,
		Finalized:  results.Finalized,
		Counts:     results.Counts,
		TotalVotes: results.TotalVotes,
	}, nil
}

func (h Handler) GetEligibilityHandler(ctx context.Context, voter string) (httptransport.EligibilityResponse, error) {
	eligibility, err := h.Queries.GetEligibility(ctx, voter)
	if err != nil {
		return httptransport.EligibilityResponse{}, err
	}
	return httptransport.EligibilityResponse{
		Voter:     voter,
		Eligible:  eligibility.Eligible,
		VotesCast: eligibility.VotesCast,
	}, nil
}

func (h Handler) GetProxyHandler(ctx context.Context, voter string) (httptransport.ProxyResponse, error) {
	proxy, err := h.Queries.GetProxy(ctx, voter)
	if err != nil {
		return httptransport.ProxyResponse{}, err
	}
	return httptransport.ProxyResponse{
		Voter:       voter,
		Proxy:       proxy.Proxy,
		DelegatedAt: proxy.DelegatedAt,
		Revoked:     proxy.Revoked,
	}, nil
}

func (h Handler) GetDelegationHandler(ctx context.Context, delegationID uint64) (httptransport.DelegationResponse, error) {
	delegation, err := h.Queries.GetDelegation(ctx, delegationID)
	if err != nil {
		return httptransport.DelegationResponse{}, err
	}
	return httptransport.DelegationResponse{
		DelegationID: delegation.ID,
		Voter:        delegation.Voter,
		Proxy:        delegation.Proxy,
		ProofHash:    hex.EncodeToString(delegation.ProofHash[:]),
	}, nil
}

func (h Handler) GetBalanceHandler(ctx context.Context, principal string) (httptransport.BalanceResponse, error) {
	balance, err := h.Queries.GetBalance(ctx, principal)
	if err != nil {
		return httptransport.BalanceResponse{}, err
	}
	return httptransport.BalanceResponse{Principal: principal, Balance: balance}, nil
}

func (h Handler) GetAuditRecordHandler(ctx context.Context, logID uint64) (httptransport.AuditRecordResponse, error) {
	record, err := h.Queries.GetAuditRecord(ctx, logID)
	if err != nil {
		return httptransport.AuditRecordResponse{}, err
	}
	return httptransport.AuditRecordResponse{
		LogID:     record.ID,
		Action:    record.Action,
		Actor:     record.Actor,
		Timestamp: record.Timestamp,
	}, nil
}

func decodeProofHash(raw string) (entities.ProofHash, error) {
	var proofHash entities.ProofHash
	decoded, err := hex.DecodeString(raw)
	if err != nil || len(decoded) != entities.ProofHashSize {
		return proofHash, domainerrors.ErrInvalidProof
	}
	copy(proofHash[:], decoded)
	return proofHash, nil
}
