package memory

import (
	"context"
	"testing"

	"electra/contexts/election-core/voting-engine/domain/entities"
)

func TestDelegationSequenceAndLookup(t *testing.T) {
	store := NewStore("ST1ADMIN")
	ctx := context.Background()

	proof := entities.ProofHash{1, 2, 3}
	firstID, err := store.AppendDelegation(ctx, entities.Delegation{Voter: "ST1VOTER", Proxy: "ST1PROXY", ProofHash: proof})
	if err != nil || firstID != 1 {
		t.Fatalf("expected first delegation id 1, got %d (%v)", firstID, err)
	}
	secondID, _ := store.AppendDelegation(ctx, entities.Delegation{Voter: "ST2VOTER", Proxy: "ST2PROXY"})
	if secondID != 2 {
		t.Fatalf("expected second delegation id 2, got %d", secondID)
	}

	delegation, found, err := store.FindDelegation(ctx, "ST1VOTER", "ST1PROXY", proof)
	if err != nil || !found || delegation.ID != 1 {
		t.Fatalf("expected exact-match delegation 1, got %+v found=%v err=%v", delegation, found, err)
	}
	if _, found, _ := store.FindDelegation(ctx, "ST1VOTER", "ST1PROXY", entities.ProofHash{9}); found {
		t.Fatalf("expected mismatched proof to miss")
	}

	if _, found, _ := store.GetDelegation(ctx, 0); found {
		t.Fatalf("expected id 0 to miss")
	}
	got, found, _ := store.GetDelegation(ctx, 2)
	if !found || got.Voter != "ST2VOTER" {
		t.Fatalf("expected delegation 2 for ST2VOTER, got %+v found=%v", got, found)
	}
}

func TestTallyIncrementsPerOption(t *testing.T) {
	store := NewStore("ST1ADMIN")
	ctx := context.Background()

	if count, _ := store.GetTally(ctx, 1, 7); count != 0 {
		t.Fatalf("expected zero tally before any vote, got %d", count)
	}
	if count, _ := store.IncrementTally(ctx, 1, 7); count != 1 {
		t.Fatalf("expected tally 1 after first increment, got %d", count)
	}
	if count, _ := store.IncrementTally(ctx, 1, 7); count != 2 {
		t.Fatalf("expected tally 2 after second increment, got %d", count)
	}
	if count, _ := store.GetTally(ctx, 1, 8); count != 0 {
		t.Fatalf("expected other option untouched, got %d", count)
	}
	if count, _ := store.GetTally(ctx, 2, 7); count != 0 {
		t.Fatalf("expected other election untouched, got %d", count)
	}
}

func TestBallotKeyedByElectionAndVoter(t *testing.T) {
	store := NewStore("ST1ADMIN")
	ctx := context.Background()

	if err := store.SaveBallot(ctx, entities.Ballot{ElectionID: 1, Voter: "ST1VOTER", Option: 5, CastAt: 150}); err != nil {
		t.Fatalf("save ballot failed: %v", err)
	}

	ballot, found, _ := store.GetBallot(ctx, 1, "ST1VOTER")
	if !found || ballot.Option != 5 || ballot.CastAt != 150 {
		t.Fatalf("expected stored ballot, got %+v found=%v", ballot, found)
	}
	if _, found, _ := store.GetBallot(ctx, 2, "ST1VOTER"); found {
		t.Fatalf("expected no ballot under another election")
	}
	if _, found, _ := store.GetBallot(ctx, 1, "ST2VOTER"); found {
		t.Fatalf("expected no ballot for another voter")
	}
}

func TestDefaultSettingsAndBalances(t *testing.T) {
	store := NewStore("ST1ADMIN")
	ctx := context.Background()

	settings, err := store.GetSettings(ctx)
	if err != nil {
		t.Fatalf("get settings failed: %v", err)
	}
	if settings.Admin != "ST1ADMIN" || settings.VoteFee != 10 || settings.MaxVotesPerVoter != 1 {
		t.Fatalf("unexpected default settings: %+v", settings)
	}

	if balance, _ := store.GetBalance(ctx, "ST1VOTER"); balance != 0 {
		t.Fatalf("expected zero balance for unknown principal, got %d", balance)
	}
	_ = store.SaveBalance(ctx, "ST1VOTER", 500)
	if balance, _ := store.GetBalance(ctx, "ST1VOTER"); balance != 500 {
		t.Fatalf("expected balance 500, got %d", balance)
	}
}
