// Package ramp appends ONRAMP and OFFRAMP movement records. Provider
// integrations (payout confirmations, checkout webhooks) call into it after
// the external leg of the movement has settled; the transfer engine never
// creates these record kinds.
package ramp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/focochat/transfer-ledger/internal/ledger"
	"github.com/focochat/transfer-ledger/internal/models"
	"github.com/focochat/transfer-ledger/internal/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	store  storage.LedgerStore
	logger *slog.Logger
}

func New(store storage.LedgerStore, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Onramp credits external funds to an account. No solvency check applies;
// money is entering the system.
func (s *Service) Onramp(ctx context.Context, toID uuid.UUID, amount decimal.Decimal) (models.MovementRecord, error) {
	if err := validate(toID, amount); err != nil {
		return models.MovementRecord{}, err
	}
	return s.append(ctx, toID, models.NewOnramp(toID, amount), false)
}

// Offramp debits funds leaving the system. The account's derived balance must
// cover the amount: the external leg pays out real money, so an insolvent
// debit is rejected the same way a transfer is.
func (s *Service) Offramp(ctx context.Context, fromID uuid.UUID, amount decimal.Decimal) (models.MovementRecord, error) {
	if err := validate(fromID, amount); err != nil {
		return models.MovementRecord{}, err
	}
	return s.append(ctx, fromID, models.NewOfframp(fromID, amount), true)
}

func (s *Service) append(ctx context.Context, accountID uuid.UUID, rec models.MovementRecord, checkBalance bool) (models.MovementRecord, error) {
	uow, err := s.store.Begin(ctx)
	if err != nil {
		return models.MovementRecord{}, fmt.Errorf("%w: begin unit of work: %v", ledger.ErrTransferFailed, err)
	}
	defer uow.Rollback(ctx)

	if _, err := uow.FindAccount(ctx, accountID); err != nil {
		return models.MovementRecord{}, err
	}
	if checkBalance {
		records, err := uow.AllRecords(ctx)
		if err != nil {
			return models.MovementRecord{}, fmt.Errorf("%w: read ledger: %v", ledger.ErrTransferFailed, err)
		}
		balance := ledger.Balance(accountID, records)
		if balance.LessThan(rec.Amount) {
			return models.MovementRecord{}, fmt.Errorf("%w: available %s, requested %s",
				ledger.ErrInsufficientBalance, balance, rec.Amount)
		}
	}

	committed, err := uow.AppendRecord(ctx, rec)
	if err != nil {
		return models.MovementRecord{}, fmt.Errorf("%w: append record: %v", ledger.ErrTransferFailed, err)
	}
	if err := uow.Commit(ctx); err != nil {
		return models.MovementRecord{}, fmt.Errorf("%w: commit: %v", ledger.ErrTransferFailed, err)
	}

	s.logger.InfoContext(ctx, "ramp record committed",
		"record_id", committed.ID, "kind", committed.Kind,
		"account_id", accountID, "amount", committed.Amount)
	return committed, nil
}

func validate(accountID uuid.UUID, amount decimal.Decimal) error {
	if accountID == uuid.Nil {
		return fmt.Errorf("%w: missing account identifier", ledger.ErrInvalidRequest)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ledger.ErrInvalidRequest)
	}
	return nil
}
