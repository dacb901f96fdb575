package commands

import (
	"context"
	"errors"
	"testing"

	domainerrors "electra/contexts/election-core/voting-engine/domain/errors"
)

func TestAssignProxyCreatesSlotAndDelegation(t *testing.T) {
	h := newEngine()
	ctx := context.Background()

	delegationID, err := h.delegations.AssignProxy(ctx, AssignProxyCommand{
		Caller: "ST1VOTER", Height: 100, Voter: "ST1VOTER", Proxy: "ST1PROXY", ProofHash: proof(1),
	})
	if err != nil {
		t.Fatalf("assign proxy failed: %v", err)
	}
	if delegationID != 1 {
		t.Fatalf("expected delegation id 1, got %d", delegationID)
	}

	slot, found, _ := h.store.GetProxy(ctx, "ST1VOTER")
	if !found || slot.Proxy != "ST1PROXY" || slot.Revoked || slot.DelegatedAt != 100 {
		t.Fatalf("unexpected proxy slot: %+v found=%v", slot, found)
	}
	delegation, found, _ := h.store.GetDelegation(ctx, 1)
	if !found || delegation.Voter != "ST1VOTER" || delegation.ProofHash != proof(1) {
		t.Fatalf("unexpected delegation record: %+v found=%v", delegation, found)
	}
}

func TestAssignProxyRejectsThirdPartyCaller(t *testing.T) {
	h := newEngine()
	ctx := context.Background()

	_, err := h.delegations.AssignProxy(ctx, AssignProxyCommand{
		Caller: "ST2OTHER", Height: 100, Voter: "ST1VOTER", Proxy: "ST1PROXY", ProofHash: proof(1),
	})
	if !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
}

func TestRevokedSlotBlocksRedelegation(t *testing.T) {
	h := newEngine()
	ctx := context.Background()

	if _, err := h.delegations.AssignProxy(ctx, AssignProxyCommand{
		Caller: "ST1VOTER", Height: 100, Voter: "ST1VOTER", Proxy: "ST1PROXY", ProofHash: proof(1),
	}); err != nil {
		t.Fatalf("assign proxy failed: %v", err)
	}

	_, err := h.delegations.AssignProxy(ctx, AssignProxyCommand{
		Caller: "ST1VOTER", Height: 101, Voter: "ST1VOTER", Proxy: "ST2PROXY", ProofHash: proof(2),
	})
	if !errors.Is(err, domainerrors.ErrInvalidProxy) {
		t.Fatalf("occupied slot must block re-assignment, got %v", err)
	}

	if err := h.delegations.RevokeProxy(ctx, RevokeProxyCommand{Caller: "ST1VOTER", Height: 102, Voter: "ST1VOTER"}); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	slot, _, _ := h.store.GetProxy(ctx, "ST1VOTER")
	if !slot.Revoked {
		t.Fatalf("expected revoked slot, got %+v", slot)
	}

	// Revocation never frees the slot.
	_, err = h.delegations.AssignProxy(ctx, AssignProxyCommand{
		Caller: "ST1VOTER", Height: 103, Voter: "ST1VOTER", Proxy: "ST2PROXY", ProofHash: proof(2),
	})
	if !errors.Is(err, domainerrors.ErrInvalidProxy) {
		t.Fatalf("revoked slot must still block re-assignment, got %v", err)
	}
}

func TestRevokeProxyRequiresExistingSlot(t *testing.T) {
	h := newEngine()
	ctx := context.Background()

	err := h.delegations.RevokeProxy(ctx, RevokeProxyCommand{Caller: "ST1VOTER", Height: 100, Voter: "ST1VOTER"})
	if !errors.Is(err, domainerrors.ErrProxyNotAssigned) {
		t.Fatalf("expected ErrProxyNotAssigned, got %v", err)
	}
	err = h.delegations.RevokeProxy(ctx, RevokeProxyCommand{Caller: "ST2OTHER", Height: 100, Voter: "ST1VOTER"})
	if !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
}
