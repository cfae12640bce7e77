package storage

import (
	"context"
	"errors"

	"github.com/focochat/transfer-ledger/internal/models"
	"github.com/google/uuid"
)

var (
	// ErrAccountNotFound is returned when an account id does not resolve.
	ErrAccountNotFound = errors.New("account not found")
	// ErrConcurrentConflict is returned by Commit when a conflicting
	// concurrent write invalidated the unit of work's read set.
	ErrConcurrentConflict = errors.New("concurrent ledger modification")
	// ErrUnitDone is returned when a unit of work is used after Commit or
	// Rollback.
	ErrUnitDone = errors.New("unit of work already finished")
)

// LedgerStore is the durable home of movement records. Mutation goes through
// units of work only; the direct read methods serve queries that need no
// transactional guarantees.
type LedgerStore interface {
	// Begin opens a unit of work against a consistent view of the ledger.
	Begin(ctx context.Context) (UnitOfWork, error)
	FindAccount(ctx context.Context, id uuid.UUID) (models.Account, error)
	// AllRecords returns every movement record, most-recent-first.
	AllRecords(ctx context.Context) ([]models.MovementRecord, error)
}

// UnitOfWork is an atomic read/write scope. Reads observe a consistent
// snapshot; appended records become visible only after Commit, and Commit
// fails with ErrConcurrentConflict if a concurrent writer invalidated the
// snapshot the unit read from.
type UnitOfWork interface {
	FindAccount(ctx context.Context, id uuid.UUID) (models.Account, error)
	AllRecords(ctx context.Context) ([]models.MovementRecord, error)
	AppendRecord(ctx context.Context, rec models.MovementRecord) (models.MovementRecord, error)
	Commit(ctx context.Context) error
	// Rollback discards the unit's writes. Calling it after Commit is a
	// no-op, so it is safe to defer.
	Rollback(ctx context.Context) error
}
