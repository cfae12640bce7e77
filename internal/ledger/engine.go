package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/focochat/transfer-ledger/internal/models"
	"github.com/focochat/transfer-ledger/internal/models/events"
	"github.com/focochat/transfer-ledger/internal/notify"
	"github.com/focochat/transfer-ledger/internal/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultMaxAttempts = 3

// Engine executes transfers between accounts. Each transfer runs as one unit
// of work against the ledger store: resolve both accounts, fold the sender's
// balance from the full ledger, check solvency, append a TRANSFER record,
// commit. Either the record is durably committed or nothing is persisted.
//
// The engine holds no locks of its own; isolation comes from the store's
// unit-of-work conflict detection. A commit-time conflict is retried with a
// fresh read up to maxAttempts, then reported as ErrTransferFailed.
type Engine struct {
	store       storage.LedgerStore
	notifier    notify.Notifier
	logger      *slog.Logger
	maxAttempts int
}

// NewEngine creates a transfer engine. maxAttempts bounds conflict retries;
// values below 1 select the default.
func NewEngine(store storage.LedgerStore, notifier notify.Notifier, logger *slog.Logger, maxAttempts int) *Engine {
	if maxAttempts < 1 {
		maxAttempts = defaultMaxAttempts
	}
	return &Engine{
		store:       store,
		notifier:    notifier,
		logger:      logger,
		maxAttempts: maxAttempts,
	}
}

// Transfer moves amount from one account to another. On success the returned
// record is committed and both derived balances reflect it. Failures are
// typed: ErrInvalidRequest, storage.ErrAccountNotFound,
// ErrInsufficientBalance, or ErrTransferFailed; in every failure case the
// ledger is untouched.
func (e *Engine) Transfer(ctx context.Context, fromID, toID uuid.UUID, amount decimal.Decimal) (models.MovementRecord, error) {
	if err := validateTransfer(fromID, toID, amount); err != nil {
		return models.MovementRecord{}, err
	}

	var lastErr error
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		rec, err := e.attempt(ctx, fromID, toID, amount)
		if errors.Is(err, storage.ErrConcurrentConflict) {
			e.logger.WarnContext(ctx, "transfer hit concurrent conflict, retrying",
				"from_account", fromID, "to_account", toID, "attempt", attempt)
			lastErr = err
			continue
		}
		if err != nil {
			return models.MovementRecord{}, err
		}
		e.notifyCompleted(ctx, rec)
		return rec, nil
	}
	return models.MovementRecord{}, fmt.Errorf("%w: %v", ErrTransferFailed, lastErr)
}

// attempt runs one unit of work end to end. It returns
// storage.ErrConcurrentConflict unwrapped so the caller can retry.
func (e *Engine) attempt(ctx context.Context, fromID, toID uuid.UUID, amount decimal.Decimal) (models.MovementRecord, error) {
	uow, err := e.store.Begin(ctx)
	if err != nil {
		return models.MovementRecord{}, fmt.Errorf("%w: begin unit of work: %v", ErrTransferFailed, err)
	}
	defer uow.Rollback(ctx)

	if _, err := uow.FindAccount(ctx, fromID); err != nil {
		return models.MovementRecord{}, e.storeError("resolve sender", err)
	}
	if _, err := uow.FindAccount(ctx, toID); err != nil {
		return models.MovementRecord{}, e.storeError("resolve receiver", err)
	}

	records, err := uow.AllRecords(ctx)
	if err != nil {
		return models.MovementRecord{}, e.storeError("read ledger", err)
	}
	balance := Balance(fromID, records)
	if balance.LessThan(amount) {
		return models.MovementRecord{}, fmt.Errorf("%w: available %s, requested %s",
			ErrInsufficientBalance, balance, amount)
	}

	rec, err := uow.AppendRecord(ctx, models.NewTransfer(fromID, toID, amount))
	if err != nil {
		return models.MovementRecord{}, e.storeError("append record", err)
	}
	if err := uow.Commit(ctx); err != nil {
		return models.MovementRecord{}, e.storeError("commit", err)
	}
	return rec, nil
}

// BalanceOf resolves the account and folds its derived balance from the full
// ledger.
func (e *Engine) BalanceOf(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	if _, err := e.store.FindAccount(ctx, accountID); err != nil {
		return decimal.Zero, err
	}
	records, err := e.store.AllRecords(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return Balance(accountID, records), nil
}

// Records returns the full ledger, most-recent-first.
func (e *Engine) Records(ctx context.Context) ([]models.MovementRecord, error) {
	return e.store.AllRecords(ctx)
}

// notifyCompleted invokes the notification hook after commit, outside any
// transactional boundary. The receiver's balance is re-read and re-folded
// here; under concurrent writers it is an approximation. Failures are logged
// and never affect the committed transfer.
func (e *Engine) notifyCompleted(ctx context.Context, rec models.MovementRecord) {
	receiver, err := e.store.FindAccount(ctx, rec.To)
	if err != nil {
		e.logger.ErrorContext(ctx, "notification skipped: resolve receiver failed",
			"transfer_id", rec.ID, "error", err)
		return
	}
	records, err := e.store.AllRecords(ctx)
	if err != nil {
		e.logger.ErrorContext(ctx, "notification skipped: ledger readback failed",
			"transfer_id", rec.ID, "error", err)
		return
	}

	event := events.TransferCompleted{
		TransferID:  rec.ID,
		FromAccount: rec.From,
		ToAccount:   rec.To,
		ToName:      receiver.Name,
		ToEmail:     receiver.Email,
		Amount:      rec.Amount,
		NewBalance:  Balance(rec.To, records),
		OccurredAt:  time.Now().UTC(),
	}
	if err := e.notifier.Notify(ctx, event); err != nil {
		e.logger.ErrorContext(ctx, "notification failed",
			"transfer_id", rec.ID, "to_account", rec.To, "error", err)
	}
}

// storeError passes through the typed errors callers branch on and wraps
// everything else as a transfer failure.
func (e *Engine) storeError(op string, err error) error {
	if errors.Is(err, storage.ErrAccountNotFound) || errors.Is(err, storage.ErrConcurrentConflict) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrTransferFailed, op, err)
}

func validateTransfer(fromID, toID uuid.UUID, amount decimal.Decimal) error {
	if fromID == uuid.Nil || toID == uuid.Nil {
		return fmt.Errorf("%w: missing account identifier", ErrInvalidRequest)
	}
	if fromID == toID {
		return fmt.Errorf("%w: cannot transfer to the same account", ErrInvalidRequest)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidRequest)
	}
	return nil
}
