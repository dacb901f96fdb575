package commands

import (
	"context"
	"log/slog"

	application "electra/contexts/election-core/voting-engine/application"
	"electra/contexts/election-core/voting-engine/domain/entities"
	domainerrors "electra/contexts/election-core/voting-engine/domain/errors"
	"electra/contexts/election-core/voting-engine/ports"
)

// AssignProxyCommand delegates the voter's vote to a proxy, backed by an
// opaque authorization proof.
type AssignProxyCommand struct {
	Caller    string
	Height    uint64
	Voter     string
	Proxy     string
	ProofHash entities.ProofHash
}

// RevokeProxyCommand terminally revokes the voter's delegation.
type RevokeProxyCommand struct {
	Caller string
	Height uint64
	Voter  string
}

// DelegationUseCase owns the proxy slot and the append-only delegation
// proof store.
type DelegationUseCase struct {
	Delegations ports.DelegationRepository
	Audit       ports.AuditLog
	Logger      *slog.Logger
}

// AssignProxy creates the voter's proxy slot and a delegation record, and
// returns the delegation id. Only the voter may delegate their own vote, and
// any existing slot, revoked or not, blocks re-assignment.
func (uc DelegationUseCase) AssignProxy(ctx context.Context, cmd AssignProxyCommand) (uint64, error) {
	if cmd.Caller != cmd.Voter {
		return 0, domainerrors.ErrNotAuthorized
	}
	if _, exists, err := uc.Delegations.GetProxy(ctx, cmd.Voter); err != nil {
		return 0, err
	} else if exists {
		return 0, domainerrors.ErrInvalidProxy
	}

	if err := uc.Delegations.SaveProxy(ctx, cmd.Voter, entities.Proxy{
		Proxy:       cmd.Proxy,
		DelegatedAt: cmd.Height,
		Revoked:     false,
	}); err != nil {
		return 0, err
	}
	delegationID, err := uc.Delegations.AppendDelegation(ctx, entities.Delegation{
		Voter:     cmd.Voter,
		Proxy:     cmd.Proxy,
		ProofHash: cmd.ProofHash,
	})
	if err != nil {
		return 0, err
	}
	if _, err := uc.Audit.AppendAudit(ctx, "assign-proxy", cmd.Caller, cmd.Height); err != nil {
		return 0, err
	}

	application.ResolveLogger(uc.Logger).Info("proxy assigned",
		"event", "engine_proxy_assigned",
		"module", "election-core/voting-engine",
		"layer", "application",
		"voter", cmd.Voter,
		"proxy", cmd.Proxy,
		"delegation_id", delegationID,
	)
	return delegationID, nil
}

// RevokeProxy marks the voter's delegation revoked. The slot stays occupied
// and the delegation records remain; a revoked proxy simply fails the
// proxy-vote authorization check.
func (uc DelegationUseCase) RevokeProxy(ctx context.Context, cmd RevokeProxyCommand) error {
	if cmd.Caller != cmd.Voter {
		return domainerrors.ErrNotAuthorized
	}
	proxy, exists, err := uc.Delegations.GetProxy(ctx, cmd.Voter)
	if err != nil {
		return err
	}
	if !exists {
		return domainerrors.ErrProxyNotAssigned
	}
	proxy.Revoked = true
	if err := uc.Delegations.SaveProxy(ctx, cmd.Voter, proxy); err != nil {
		return err
	}
	if _, err := uc.Audit.AppendAudit(ctx, "revoke-proxy", cmd.Caller, cmd.Height); err != nil {
		return err
	}

	application.ResolveLogger(uc.Logger).Info("proxy revoked",
		"event", "engine_proxy_revoked",
		"module", "election-core/voting-engine",
		"layer", "application",
		"voter", cmd.Voter,
	)
	return nil
}
