package commands

import (
	"context"
	"errors"
	"testing"

	"electra/contexts/election-core/voting-engine/domain/entities"
	domainerrors "electra/contexts/election-core/voting-engine/domain/errors"
)

func TestRegisterEligibilityIsAdminOnly(t *testing.T) {
	h := newEngine()
	ctx := context.Background()

	err := h.ballots.RegisterEligibility(ctx, RegisterEligibilityCommand{Caller: "ST1VOTER", Height: 100, Voter: "ST1VOTER"})
	if !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}

	enroll(t, h, "ST1VOTER")
	err = h.ballots.RegisterEligibility(ctx, RegisterEligibilityCommand{Caller: "ST1ADMIN", Height: 100, Voter: "ST1VOTER"})
	if !errors.Is(err, domainerrors.ErrInvalidVoter) {
		t.Fatalf("duplicate enrollment must fail, got %v", err)
	}

	eligibility, found, _ := h.store.GetEligibility(ctx, "ST1VOTER")
	if !found || !eligibility.Eligible || eligibility.VotesCast != 0 {
		t.Fatalf("unexpected eligibility: %+v found=%v", eligibility, found)
	}
}

func TestCastVoteRecordsBallotTallyFeeAndAudit(t *testing.T) {
	h := newEngine()
	ctx := context.Background()

	enroll(t, h, "ST1VOTER")
	configureAt(t, h, 1, 100, 101, 200, []uint64{1, 2, 3})

	err := h.ballots.CastVote(ctx, CastVoteCommand{
		Caller: "ST1VOTER", Height: 150, ElectionID: 1, Option: 2, Voter: "ST1VOTER",
	})
	if err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}

	ballot, found, _ := h.store.GetBallot(ctx, 1, "ST1VOTER")
	if !found || ballot.Option != 2 || ballot.CastAt != 150 || ballot.Proxy != nil {
		t.Fatalf("unexpected ballot: %+v found=%v", ballot, found)
	}
	if count, _ := h.store.GetTally(ctx, 1, 2); count != 1 {
		t.Fatalf("expected tally 1, got %d", count)
	}
	eligibility, _, _ := h.store.GetEligibility(ctx, "ST1VOTER")
	if eligibility.VotesCast != 1 {
		t.Fatalf("expected votes cast 1, got %d", eligibility.VotesCast)
	}

	transfers := h.store.Transfers()
	if len(transfers) != 1 || transfers[0] != (entities.TransferIntent{Amount: 10, From: "ST1VOTER", To: "ST1ADMIN"}) {
		t.Fatalf("unexpected fee intents: %+v", transfers)
	}
	record, found, _ := h.store.GetAuditRecord(ctx, uint64(h.store.AuditLen()))
	if !found || record.Action != "cast-vote" || record.Actor != "ST1VOTER" || record.Timestamp != 150 {
		t.Fatalf("unexpected audit record: %+v found=%v", record, found)
	}
}

func TestCastVoteChecksRunInFixedOrder(t *testing.T) {
	h := newEngine()
	ctx := context.Background()

	// Eligibility is checked before the election window: no election exists
	// either, but the ineligible voter error wins.
	err := h.ballots.CastVote(ctx, CastVoteCommand{Caller: "ST1VOTER", Height: 150, ElectionID: 1, Option: 1, Voter: "ST1VOTER"})
	if !errors.Is(err, domainerrors.ErrInvalidVoter) {
		t.Fatalf("expected ErrInvalidVoter, got %v", err)
	}

	enroll(t, h, "ST1VOTER")
	err = h.ballots.CastVote(ctx, CastVoteCommand{Caller: "ST1VOTER", Height: 150, ElectionID: 1, Option: 1, Voter: "ST1VOTER"})
	if !errors.Is(err, domainerrors.ErrElectionClosed) {
		t.Fatalf("missing election must read as closed, got %v", err)
	}

	configureAt(t, h, 1, 100, 101, 200, []uint64{1, 2})
	err = h.ballots.CastVote(ctx, CastVoteCommand{Caller: "ST1VOTER", Height: 100, ElectionID: 1, Option: 1, Voter: "ST1VOTER"})
	if !errors.Is(err, domainerrors.ErrElectionClosed) {
		t.Fatalf("vote before start must fail, got %v", err)
	}
	err = h.ballots.CastVote(ctx, CastVoteCommand{Caller: "ST1VOTER", Height: 201, ElectionID: 1, Option: 1, Voter: "ST1VOTER"})
	if !errors.Is(err, domainerrors.ErrElectionClosed) {
		t.Fatalf("vote after end must fail, got %v", err)
	}

	err = h.ballots.CastVote(ctx, CastVoteCommand{Caller: "ST1VOTER", Height: 150, ElectionID: 1, Option: 9, Voter: "ST1VOTER"})
	if !errors.Is(err, domainerrors.ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}

	if len(h.store.Transfers()) != 0 {
		t.Fatalf("failed casts must not record fee intents")
	}
}

func TestCastVoteWindowBoundariesAreInclusive(t *testing.T) {
	h := newEngine()
	ctx := context.Background()

	enroll(t, h, "ST1VOTER")
	enroll(t, h, "ST2VOTER")
	configureAt(t, h, 1, 100, 101, 200, []uint64{1})

	err := h.ballots.CastVote(ctx, CastVoteCommand{Caller: "ST1VOTER", Height: 101, ElectionID: 1, Option: 1, Voter: "ST1VOTER"})
	if err != nil {
		t.Fatalf("vote at start height failed: %v", err)
	}
	err = h.ballots.CastVote(ctx, CastVoteCommand{Caller: "ST2VOTER", Height: 200, ElectionID: 1, Option: 1, Voter: "ST2VOTER"})
	if err != nil {
		t.Fatalf("vote at end height failed: %v", err)
	}
}

func TestCastVoteEnforcesCapAndDuplicates(t *testing.T) {
	h := newEngine()
	ctx := context.Background()

	enroll(t, h, "ST1VOTER")
	configureAt(t, h, 1, 100, 101, 200, []uint64{1})
	configureAt(t, h, 2, 100, 101, 200, []uint64{1})

	if err := h.ballots.CastVote(ctx, CastVoteCommand{Caller: "ST1VOTER", Height: 150, ElectionID: 1, Option: 1, Voter: "ST1VOTER"}); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}

	// Default cap is one vote per voter across elections.
	err := h.ballots.CastVote(ctx, CastVoteCommand{Caller: "ST1VOTER", Height: 151, ElectionID: 2, Option: 1, Voter: "ST1VOTER"})
	if !errors.Is(err, domainerrors.ErrMaxVotesExceeded) {
		t.Fatalf("expected ErrMaxVotesExceeded, got %v", err)
	}

	if err := h.elections.SetMaxVotesPerVoter(ctx, SetMaxVotesCommand{Caller: "ST1ADMIN", Height: 151, MaxVotes: 5}); err != nil {
		t.Fatalf("raise cap failed: %v", err)
	}
	err = h.ballots.CastVote(ctx, CastVoteCommand{Caller: "ST1VOTER", Height: 151, ElectionID: 1, Option: 1, Voter: "ST1VOTER"})
	if !errors.Is(err, domainerrors.ErrVoteAlreadyCast) {
		t.Fatalf("expected ErrVoteAlreadyCast, got %v", err)
	}
	if err := h.ballots.CastVote(ctx, CastVoteCommand{Caller: "ST1VOTER", Height: 151, ElectionID: 2, Option: 1, Voter: "ST1VOTER"}); err != nil {
		t.Fatalf("vote in second election failed: %v", err)
	}
}

func TestCastProxyVoteRequiresSlotAndProof(t *testing.T) {
	h := newEngine()
	ctx := context.Background()

	enroll(t, h, "ST1VOTER")
	configureAt(t, h, 1, 100, 101, 200, []uint64{1})

	cmd := CastProxyVoteCommand{
		Caller: "ST1PROXY", Height: 150, ElectionID: 1, Option: 1, Voter: "ST1VOTER", ProofHash: proof(1),
	}

	err := h.ballots.CastProxyVote(ctx, cmd)
	if !errors.Is(err, domainerrors.ErrInvalidProxy) {
		t.Fatalf("missing slot must fail, got %v", err)
	}

	if _, err := h.delegations.AssignProxy(ctx, AssignProxyCommand{
		Caller: "ST1VOTER", Height: 110, Voter: "ST1VOTER", Proxy: "ST1PROXY", ProofHash: proof(1),
	}); err != nil {
		t.Fatalf("assign proxy failed: %v", err)
	}

	wrongCaller := cmd
	wrongCaller.Caller = "ST2OTHER"
	if err := h.ballots.CastProxyVote(ctx, wrongCaller); !errors.Is(err, domainerrors.ErrInvalidProxy) {
		t.Fatalf("non-proxy caller must fail, got %v", err)
	}

	wrongProof := cmd
	wrongProof.ProofHash = proof(9)
	if err := h.ballots.CastProxyVote(ctx, wrongProof); !errors.Is(err, domainerrors.ErrInvalidProof) {
		t.Fatalf("mismatched proof must fail, got %v", err)
	}

	if err := h.ballots.CastProxyVote(ctx, cmd); err != nil {
		t.Fatalf("proxy vote failed: %v", err)
	}
	ballot, _, _ := h.store.GetBallot(ctx, 1, "ST1VOTER")
	if ballot.Proxy == nil || *ballot.Proxy != "ST1PROXY" {
		t.Fatalf("expected ballot cast by proxy, got %+v", ballot)
	}
	record, found, _ := h.store.GetAuditRecord(ctx, uint64(h.store.AuditLen()))
	if !found || record.Action != "cast-proxy-vote" || record.Actor != "ST1PROXY" {
		t.Fatalf("unexpected audit record: %+v found=%v", record, found)
	}

	// The voter's vote is spent; the proxy cannot cast again.
	if err := h.ballots.CastProxyVote(ctx, cmd); !errors.Is(err, domainerrors.ErrMaxVotesExceeded) {
		t.Fatalf("expected ErrMaxVotesExceeded on repeat, got %v", err)
	}
}

func TestCastProxyVoteRejectsRevokedSlot(t *testing.T) {
	h := newEngine()
	ctx := context.Background()

	enroll(t, h, "ST1VOTER")
	configureAt(t, h, 1, 100, 101, 200, []uint64{1})
	if _, err := h.delegations.AssignProxy(ctx, AssignProxyCommand{
		Caller: "ST1VOTER", Height: 110, Voter: "ST1VOTER", Proxy: "ST1PROXY", ProofHash: proof(1),
	}); err != nil {
		t.Fatalf("assign proxy failed: %v", err)
	}
	if err := h.delegations.RevokeProxy(ctx, RevokeProxyCommand{Caller: "ST1VOTER", Height: 111, Voter: "ST1VOTER"}); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	err := h.ballots.CastProxyVote(ctx, CastProxyVoteCommand{
		Caller: "ST1PROXY", Height: 150, ElectionID: 1, Option: 1, Voter: "ST1VOTER", ProofHash: proof(1),
	})
	if !errors.Is(err, domainerrors.ErrInvalidProxy) {
		t.Fatalf("revoked slot must fail, got %v", err)
	}
}
