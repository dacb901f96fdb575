package memory

import (
	"context"
	"testing"

	"electra/contexts/identity-access/voter-registry/domain/entities"
)

func TestInsertVoterAdvancesSequence(t *testing.T) {
	store := NewStore("ST1ADMIN")
	ctx := context.Background()

	next, err := store.NextVoterID(ctx)
	if err != nil || next != 1 {
		t.Fatalf("expected next id 1, got %d (%v)", next, err)
	}

	if err := store.InsertVoter(ctx, entities.Voter{ID: 1, Principal: "ST1VOTER", Active: true}); err != nil {
		t.Fatalf("insert voter failed: %v", err)
	}
	next, _ = store.NextVoterID(ctx)
	if next != 2 {
		t.Fatalf("expected next id 2 after insert, got %d", next)
	}

	voterID, found, err := store.GetVoterIDByPrincipal(ctx, "ST1VOTER")
	if err != nil || !found || voterID != 1 {
		t.Fatalf("expected principal index to resolve to 1, got %d found=%v err=%v", voterID, found, err)
	}
}

func TestUpdateVoterPreservesSequence(t *testing.T) {
	store := NewStore("ST1ADMIN")
	ctx := context.Background()

	voter := entities.Voter{ID: 1, Principal: "ST1VOTER", Active: true}
	if err := store.InsertVoter(ctx, voter); err != nil {
		t.Fatalf("insert voter failed: %v", err)
	}
	voter.Active = false
	if err := store.UpdateVoter(ctx, voter); err != nil {
		t.Fatalf("update voter failed: %v", err)
	}

	got, found, _ := store.GetVoter(ctx, 1)
	if !found || got.Active {
		t.Fatalf("expected voter 1 inactive, got %+v found=%v", got, found)
	}
	next, _ := store.NextVoterID(ctx)
	if next != 2 {
		t.Fatalf("expected next id unchanged at 2, got %d", next)
	}
}

func TestTransfersAreRecordedInOrder(t *testing.T) {
	store := NewStore("ST1ADMIN")
	ctx := context.Background()

	_ = store.RecordTransfer(ctx, entities.TransferIntent{Amount: 50, From: "ST1VOTER", To: "ST1ADMIN"})
	_ = store.RecordTransfer(ctx, entities.TransferIntent{Amount: 75, From: "ST2VOTER", To: "ST1ADMIN"})

	transfers := store.Transfers()
	if len(transfers) != 2 {
		t.Fatalf("expected 2 transfer intents, got %d", len(transfers))
	}
	if transfers[0].Amount != 50 || transfers[1].Amount != 75 {
		t.Fatalf("unexpected transfer order: %+v", transfers)
	}
}
