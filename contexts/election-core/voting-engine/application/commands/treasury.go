package commands

import (
	"context"
	"log/slog"

	application "electra/contexts/election-core/voting-engine/application"
	"electra/contexts/election-core/voting-engine/domain/entities"
	domainerrors "electra/contexts/election-core/voting-engine/domain/errors"
	"electra/contexts/election-core/voting-engine/ports"
)

// DepositCommand moves value from the caller into their self-custodied
// balance.
type DepositCommand struct {
	Caller string
	Height uint64
	Amount uint64
}

// WithdrawCommand moves value from the caller's balance back to them. No
// overdraft exists.
type WithdrawCommand struct {
	Caller string
	Height uint64
	Amount uint64
}

// TreasuryUseCase owns self-custodied balance bookkeeping. Balances mirror
// an external ledger; each mutation records the matching transfer intent.
type TreasuryUseCase struct {
	Balances  ports.BalanceRepository
	Audit     ports.AuditLog
	Transfers ports.TransferSink
	Logger    *slog.Logger
}

// Deposit credits the caller's balance.
func (uc TreasuryUseCase) Deposit(ctx context.Context, cmd DepositCommand) error {
	if cmd.Amount == 0 {
		return domainerrors.ErrInvalidAmount
	}
	balance, err := uc.Balances.GetBalance(ctx, cmd.Caller)
	if err != nil {
		return err
	}
	if err := uc.Transfers.RecordTransfer(ctx, entities.TransferIntent{
		Amount: cmd.Amount,
		From:   cmd.Caller,
		To:     entities.TreasuryPrincipal,
	}); err != nil {
		return err
	}
	if err := uc.Balances.SaveBalance(ctx, cmd.Caller, balance+cmd.Amount); err != nil {
		return err
	}
	if _, err := uc.Audit.AppendAudit(ctx, "deposit-balance", cmd.Caller, cmd.Height); err != nil {
		return err
	}
	application.ResolveLogger(uc.Logger).Info("balance deposited",
		"event", "engine_balance_deposited",
		"module", "election-core/voting-engine",
		"layer", "application",
		"principal", cmd.Caller,
		"amount", cmd.Amount,
	)
	return nil
}

// Withdraw debits the caller's balance.
func (uc TreasuryUseCase) Withdraw(ctx context.Context, cmd WithdrawCommand) error {
	balance, err := uc.Balances.GetBalance(ctx, cmd.Caller)
	if err != nil {
		return err
	}
	if balance < cmd.Amount {
		return domainerrors.ErrInsufficientBalance
	}
	if err := uc.Transfers.RecordTransfer(ctx, entities.TransferIntent{
		Amount: cmd.Amount,
		From:   entities.TreasuryPrincipal,
		To:     cmd.Caller,
	}); err != nil {
		return err
	}
	if err := uc.Balances.SaveBalance(ctx, cmd.Caller, balance-cmd.Amount); err != nil {
		return err
	}
	if _, err := uc.Audit.AppendAudit(ctx, "withdraw-balance", cmd.Caller, cmd.Height); err != nil {
		return err
	}
	application.ResolveLogger(uc.Logger).Info("balance withdrawn",
		"event", "engine_balance_withdrawn",
		"module", "election-core/voting-engine",
		"layer", "application",
		"principal", cmd.Caller,
		"amount", cmd.Amount,
	)
	return nil
}
