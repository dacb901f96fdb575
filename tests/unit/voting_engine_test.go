package unit

import (
	"context"
	"errors"
	"testing"

	votingengine "electra/contexts/election-core/voting-engine"
	domainerrors "electra/contexts/election-core/voting-engine/domain/errors"
	httptransport "electra/contexts/election-core/voting-engine/transport/http"
)

func newEngineModule(t *testing.T) votingengine.Module {
	t.Helper()
	return votingengine.NewInMemoryModule("ST1ADMIN", nil)
}

func enrollVoter(t *testing.T, module votingengine.Module, voter string) {
	t.Helper()
	err := module.Handler.RegisterEligibilityHandler(context.Background(), "ST1ADMIN", 100, httptransport.RegisterEligibilityRequest{
		Voter: voter,
	})
	if err != nil {
		t.Fatalf("enroll %s failed: %v", voter, err)
	}
}

func openElection(t *testing.T, module votingengine.Module, electionID uint64, options []uint64) {
	t.Helper()
	err := module.Handler.ConfigureElectionHandler(context.Background(), "ST1ADMIN", 100, httptransport.ConfigureElectionRequest{
		ElectionID: electionID,
		Start:      101,
		End:        200,
		Options:    options,
	})
	if err != nil {
		t.Fatalf("configure election %d failed: %v", electionID, err)
	}
}

func TestElectionLifecycleEndToEnd(t *testing.T) {
	module := newEngineModule(t)
	ctx := context.Background()

	enrollVoter(t, module, "ST1VOTER")
	enrollVoter(t, module, "ST2VOTER")
	openElection(t, module, 1, []uint64{1, 2})

	if err := module.Handler.CastVoteHandler(ctx, "ST1VOTER", 150, httptransport.CastVoteRequest{
		ElectionID: 1, Option: 1, Voter: "ST1VOTER",
	}); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	if err := module.Handler.CastVoteHandler(ctx, "ST2VOTER", 151, httptransport.CastVoteRequest{
		ElectionID: 1, Option: 2, Voter: "ST2VOTER",
	}); err != nil {
		t.Fatalf("second vote failed: %v", err)
	}

	tally, err := module.Handler.GetTallyHandler(ctx, 1, 1)
	if err != nil || tally.Count != 1 {
		t.Fatalf("unexpected tally: %+v (%v)", tally, err)
	}
	results, err := module.Handler.GetResultsHandler(ctx, 1)
	if err != nil {
		t.Fatalf("results failed: %v", err)
	}
	if results.TotalVotes != 2 || results.Counts[1] != 1 || results.Counts[2] != 1 {
		t.Fatalf("unexpected results: %+v", results)
	}

	if err := module.Handler.FinalizeElectionHandler(ctx, "ST1ADMIN", 201, httptransport.FinalizeElectionRequest{
		ElectionID: 1,
	}); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	election, err := module.Handler.GetElectionHandler(ctx, 1)
	if err != nil || !election.Finalized || election.Active {
		t.Fatalf("unexpected election after finalize: %+v (%v)", election, err)
	}

	// Fee intents: one 10-unit transfer to the admin per cast vote.
	transfers := module.Store.Transfers()
	if len(transfers) != 2 || transfers[0].Amount != 10 || transfers[0].To != "ST1ADMIN" {
		t.Fatalf("unexpected fee intents: %+v", transfers)
	}
}

func TestVoteCapAndDuplicateDetection(t *testing.T) {
	module := newEngineModule(t)
	ctx := context.Background()

	enrollVoter(t, module, "ST1VOTER")
	openElection(t, module, 1, []uint64{1})

	if err := module.Handler.CastVoteHandler(ctx, "ST1VOTER", 150, httptransport.CastVoteRequest{
		ElectionID: 1, Option: 1, Voter: "ST1VOTER",
	}); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	// The default cap of one vote trips before the duplicate check.
	err := module.Handler.CastVoteHandler(ctx, "ST1VOTER", 151, httptransport.CastVoteRequest{
		ElectionID: 1, Option: 1, Voter: "ST1VOTER",
	})
	if !errors.Is(err, domainerrors.ErrMaxVotesExceeded) {
		t.Fatalf("expected ErrMaxVotesExceeded, got %v", err)
	}

	if err := module.Handler.SetMaxVotesHandler(ctx, "ST1ADMIN", 151, httptransport.SetMaxVotesRequest{MaxVotes: 5}); err != nil {
		t.Fatalf("raise cap failed: %v", err)
	}
	err = module.Handler.CastVoteHandler(ctx, "ST1VOTER", 152, httptransport.CastVoteRequest{
		ElectionID: 1, Option: 1, Voter: "ST1VOTER",
	})
	if !errors.Is(err, domainerrors.ErrVoteAlreadyCast) {
		t.Fatalf("expected ErrVoteAlreadyCast, got %v", err)
	}
}

func TestProxyDelegationFlow(t *testing.T) {
	module := newEngineModule(t)
	ctx := context.Background()

	enrollVoter(t, module, "ST1VOTER")
	openElection(t, module, 1, []uint64{1})

	assigned, err := module.Handler.AssignProxyHandler(ctx, "ST1VOTER", 110, httptransport.AssignProxyRequest{
		Voter:     "ST1VOTER",
		Proxy:     "ST1PROXY",
		ProofHash: hexProof("c"),
	})
	if err != nil {
		t.Fatalf("assign proxy failed: %v", err)
	}
	if assigned.DelegationID != 1 {
		t.Fatalf("expected delegation id 1, got %d", assigned.DelegationID)
	}

	delegation, err := module.Handler.GetDelegationHandler(ctx, 1)
	if err != nil || delegation.Voter != "ST1VOTER" || delegation.ProofHash != hexProof("c") {
		t.Fatalf("unexpected delegation: %+v (%v)", delegation, err)
	}

	if err := module.Handler.CastProxyVoteHandler(ctx, "ST1PROXY", 150, httptransport.CastProxyVoteRequest{
		ElectionID: 1, Option: 1, Voter: "ST1VOTER", ProofHash: hexProof("c"),
	}); err != nil {
		t.Fatalf("proxy vote failed: %v", err)
	}

	ballot, err := module.Handler.GetBallotHandler(ctx, 1, "ST1VOTER")
	if err != nil {
		t.Fatalf("get ballot failed: %v", err)
	}
	if ballot.Proxy == nil || *ballot.Proxy != "ST1PROXY" {
		t.Fatalf("expected proxy-cast ballot, got %+v", ballot)
	}

	// The voter's single vote is spent.
	err = module.Handler.CastProxyVoteHandler(ctx, "ST1PROXY", 151, httptransport.CastProxyVoteRequest{
		ElectionID: 1, Option: 1, Voter: "ST1VOTER", ProofHash: hexProof("c"),
	})
	if !errors.Is(err, domainerrors.ErrMaxVotesExceeded) {
		t.Fatalf("expected ErrMaxVotesExceeded, got %v", err)
	}
}

func TestRevokedProxyCannotVote(t *testing.T) {
	module := newEngineModule(t)
	ctx := context.Background()

	enrollVoter(t, module, "ST1VOTER")
	openElection(t, module, 1, []uint64{1})
	if _, err := module.Handler.AssignProxyHandler(ctx, "ST1VOTER", 110, httptransport.AssignProxyRequest{
		Voter: "ST1VOTER", Proxy: "ST1PROXY", ProofHash: hexProof("c"),
	}); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if err := module.Handler.RevokeProxyHandler(ctx, "ST1VOTER", 111, httptransport.RevokeProxyRequest{
		Voter: "ST1VOTER",
	}); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	err := module.Handler.CastProxyVoteHandler(ctx, "ST1PROXY", 150, httptransport.CastProxyVoteRequest{
		ElectionID: 1, Option: 1, Voter: "ST1VOTER", ProofHash: hexProof("c"),
	})
	if !errors.Is(err, domainerrors.ErrInvalidProxy) {
		t.Fatalf("expected ErrInvalidProxy, got %v", err)
	}

	// The voter can still vote directly after revoking.
	if err := module.Handler.CastVoteHandler(ctx, "ST1VOTER", 150, httptransport.CastVoteRequest{
		ElectionID: 1, Option: 1, Voter: "ST1VOTER",
	}); err != nil {
		t.Fatalf("direct vote after revoke failed: %v", err)
	}
}

func TestTreasuryDepositAndWithdrawFlow(t *testing.T) {
	module := newEngineModule(t)
	ctx := context.Background()

	if err := module.Handler.DepositHandler(ctx, "ST1VOTER", 100, httptransport.DepositRequest{Amount: 500}); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	if err := module.Handler.WithdrawHandler(ctx, "ST1VOTER", 101, httptransport.WithdrawRequest{Amount: 200}); err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}

	balance, err := module.Handler.GetBalanceHandler(ctx, "ST1VOTER")
	if err != nil || balance.Balance != 300 {
		t.Fatalf("unexpected balance: %+v (%v)", balance, err)
	}

	err = module.Handler.WithdrawHandler(ctx, "ST1VOTER", 102, httptransport.WithdrawRequest{Amount: 400})
	if !errors.Is(err, domainerrors.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if err := module.Handler.DepositHandler(ctx, "ST1VOTER", 103, httptransport.DepositRequest{Amount: 0}); !errors.Is(err, domainerrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestEngineAuditActionsMatchOperations(t *testing.T) {
	module := newEngineModule(t)
	ctx := context.Background()

	enrollVoter(t, module, "ST1VOTER")
	openElection(t, module, 1, []uint64{1})
	if err := module.Handler.CastVoteHandler(ctx, "ST1VOTER", 150, httptransport.CastVoteRequest{
		ElectionID: 1, Option: 1, Voter: "ST1VOTER",
	}); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	expected := []string{"register-voter", "configure-election", "cast-vote"}
	for i, action := range expected {
		record, err := module.Handler.GetAuditRecordHandler(ctx, uint64(i+1))
		if err != nil {
			t.Fatalf("get audit %d failed: %v", i+1, err)
		}
		if record.Action != action {
			t.Fatalf("expected action %q at id %d, got %q", action, i+1, record.Action)
		}
	}
}
