package application

import (
	"context"
	"errors"
	"testing"

	"electra/contexts/identity-access/voter-registry/adapters/memory"
	"electra/contexts/identity-access/voter-registry/domain/entities"
	domainerrors "electra/contexts/identity-access/voter-registry/domain/errors"
)

func newService() (Service, *memory.Store) {
	store := memory.NewStore("ST1ADMIN")
	return Service{
		Voters:    store,
		Settings:  store,
		Audit:     store,
		Transfers: store,
	}, store
}

func proof(seed byte) entities.ProofHash {
	var p entities.ProofHash
	for i := range p {
		p[i] = seed
	}
	return p
}

func TestRegisterVoterAssignsSequentialIDs(t *testing.T) {
	service, store := newService()
	ctx := context.Background()

	first, err := service.RegisterVoter(ctx, "ST1VOTER", 100, proof(1))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	second, err := service.RegisterVoter(ctx, "ST2VOTER", 101, proof(2))
	if err != nil {
		t.Fatalf("second register failed: %v", err)
	}
	if first != 1 || second != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first, second)
	}

	voter, err := service.GetVoter(ctx, 1)
	if err != nil {
		t.Fatalf("get voter failed: %v", err)
	}
	if voter.Principal != "ST1VOTER" || !voter.Active || voter.RegisteredAt != 100 {
		t.Fatalf("unexpected voter: %+v", voter)
	}

	transfers := store.Transfers()
	if len(transfers) != 2 {
		t.Fatalf("expected 2 fee intents, got %d", len(transfers))
	}
	if transfers[0] != (entities.TransferIntent{Amount: 50, From: "ST1VOTER", To: "ST1ADMIN"}) {
		t.Fatalf("unexpected fee intent: %+v", transfers[0])
	}
}

func TestRegisterVoterRejectsDuplicatePrincipal(t *testing.T) {
	service, store := newService()
	ctx := context.Background()

	if _, err := service.RegisterVoter(ctx, "ST1VOTER", 100, proof(1)); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	before := store.AuditLen()
	if _, err := service.RegisterVoter(ctx, "ST1VOTER", 101, proof(9)); !errors.Is(err, domainerrors.ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
	if store.AuditLen() != before {
		t.Fatalf("failed registration must not append audit records")
	}
	if len(store.Transfers()) != 1 {
		t.Fatalf("failed registration must not record a fee intent")
	}
}

func TestRegisterVoterRespectsClosedRegistrationAndCap(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	if err := service.ToggleRegistration(ctx, "ST1ADMIN", 100, false); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if _, err := service.RegisterVoter(ctx, "ST1VOTER", 100, proof(1)); !errors.Is(err, domainerrors.ErrRegistrationClosed) {
		t.Fatalf("expected ErrRegistrationClosed, got %v", err)
	}

	if err := service.ToggleRegistration(ctx, "ST1ADMIN", 100, true); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if err := service.SetMaxVoters(ctx, "ST1ADMIN", 100, 1); err != nil {
		t.Fatalf("set max voters failed: %v", err)
	}
	if _, err := service.RegisterVoter(ctx, "ST1VOTER", 100, proof(1)); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := service.RegisterVoter(ctx, "ST2VOTER", 100, proof(2)); !errors.Is(err, domainerrors.ErrMaxVotersExceeded) {
		t.Fatalf("expected ErrMaxVotersExceeded, got %v", err)
	}
}

func TestVerifyVoterChecksProofThenStatus(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	if _, err := service.RegisterVoter(ctx, "ST1VOTER", 100, proof(1)); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := service.VerifyVoter(ctx, "ST9ANY", 101, 99, proof(1)); !errors.Is(err, domainerrors.ErrVoterNotFound) {
		t.Fatalf("expected ErrVoterNotFound, got %v", err)
	}
	if err := service.VerifyVoter(ctx, "ST9ANY", 101, 1, proof(8)); !errors.Is(err, domainerrors.ErrInvalidProof) {
		t.Fatalf("expected ErrInvalidProof, got %v", err)
	}
	if err := service.UpdateVoterStatus(ctx, "ST1ADMIN", 101, 1, false); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if err := service.VerifyVoter(ctx, "ST9ANY", 102, 1, proof(1)); !errors.Is(err, domainerrors.ErrInactiveVoter) {
		t.Fatalf("expected ErrInactiveVoter, got %v", err)
	}
	if err := service.UpdateVoterStatus(ctx, "ST1ADMIN", 102, 1, true); err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if err := service.VerifyVoter(ctx, "ST9ANY", 103, 1, proof(1)); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
}

func TestAdminOperationsRejectNonAdmin(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	if err := service.SetAdmin(ctx, "ST2FAKE", 100, "ST3NEW"); !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if err := service.SetRegistrationFee(ctx, "ST2FAKE", 100, 75); !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if err := service.ToggleRegistration(ctx, "ST2FAKE", 100, false); !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if err := service.SetMaxVoters(ctx, "ST2FAKE", 100, 5); !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if err := service.UpdateVoterStatus(ctx, "ST2FAKE", 100, 1, false); !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
}

func TestNumericSettersRejectZero(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	if err := service.SetRegistrationFee(ctx, "ST1ADMIN", 100, 0); !errors.Is(err, domainerrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if err := service.SetMaxVoters(ctx, "ST1ADMIN", 100, 0); !errors.Is(err, domainerrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestSetAdminHandsOverControl(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	if err := service.SetAdmin(ctx, "ST1ADMIN", 100, "ST2NEW"); err != nil {
		t.Fatalf("set admin failed: %v", err)
	}
	if err := service.SetRegistrationFee(ctx, "ST1ADMIN", 101, 75); !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("old admin should be rejected, got %v", err)
	}
	if err := service.SetRegistrationFee(ctx, "ST2NEW", 101, 75); err != nil {
		t.Fatalf("new admin rejected: %v", err)
	}

	record, err := service.GetAuditRecord(ctx, 1)
	if err != nil {
		t.Fatalf("get audit record failed: %v", err)
	}
	if record.Action != "set-admin" || record.Actor != "ST1ADMIN" || record.Timestamp != 100 {
		t.Fatalf("unexpected audit record: %+v", record)
	}
}
