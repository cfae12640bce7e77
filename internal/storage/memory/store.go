package memory

import (
	"context"
	"sync"

	"github.com/focochat/transfer-ledger/internal/models"
	"github.com/focochat/transfer-ledger/internal/storage"
	"github.com/google/uuid"
)

// Store is an in-memory implementation of storage.LedgerStore. Concurrency
// control is optimistic: every unit of work snapshots the ledger version at
// Begin, and Commit rejects the unit with storage.ErrConcurrentConflict if
// any other unit committed in between. That is coarser than per-account
// conflict detection but preserves the required guarantee that a
// read-balance-then-append sequence never commits against a stale snapshot.
type Store struct {
	mu       sync.Mutex
	version  uint64
	records  []models.MovementRecord // append order, oldest first
	accounts map[uuid.UUID]models.Account
}

// New creates an empty in-memory ledger store.
func New() *Store {
	return &Store{
		accounts: make(map[uuid.UUID]models.Account),
	}
}

// PutAccount registers an account. Account lifecycle is owned by an external
// collaborator; this is the seam local runs and tests use to seed it.
func (s *Store) PutAccount(a models.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.ID] = a
}

func (s *Store) FindAccount(ctx context.Context, id uuid.UUID) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findAccountLocked(id)
}

func (s *Store) findAccountLocked(id uuid.UUID) (models.Account, error) {
	a, ok := s.accounts[id]
	if !ok {
		return models.Account{}, storage.ErrAccountNotFound
	}
	return a, nil
}

// AllRecords returns a most-recent-first copy of the ledger.
func (s *Store) AllRecords(ctx context.Context) ([]models.MovementRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reversed(s.records), nil
}

// Begin snapshots the current ledger and returns a unit of work bound to it.
func (s *Store) Begin(ctx context.Context) (storage.UnitOfWork, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]models.MovementRecord, len(s.records))
	copy(snapshot, s.records)
	return &unitOfWork{
		store:    s,
		version:  s.version,
		snapshot: snapshot,
	}, nil
}

// unitOfWork buffers appends until Commit. It is not safe for concurrent use
// by multiple goroutines; each engine invocation owns its own unit.
type unitOfWork struct {
	store    *Store
	version  uint64
	snapshot []models.MovementRecord
	pending  []models.MovementRecord
	done     bool
}

func (u *unitOfWork) FindAccount(ctx context.Context, id uuid.UUID) (models.Account, error) {
	if u.done {
		return models.Account{}, storage.ErrUnitDone
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	return u.store.findAccountLocked(id)
}

// AllRecords returns the unit's snapshot plus its own uncommitted appends,
// most-recent-first.
func (u *unitOfWork) AllRecords(ctx context.Context) ([]models.MovementRecord, error) {
	if u.done {
		return nil, storage.ErrUnitDone
	}
	view := make([]models.MovementRecord, 0, len(u.snapshot)+len(u.pending))
	view = append(view, u.snapshot...)
	view = append(view, u.pending...)
	return reversed(view), nil
}

func (u *unitOfWork) AppendRecord(ctx context.Context, rec models.MovementRecord) (models.MovementRecord, error) {
	if u.done {
		return models.MovementRecord{}, storage.ErrUnitDone
	}
	u.pending = append(u.pending, rec)
	return rec, nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.done {
		return storage.ErrUnitDone
	}
	u.done = true

	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	if u.store.version != u.version {
		u.pending = nil
		return storage.ErrConcurrentConflict
	}
	if len(u.pending) > 0 {
		u.store.records = append(u.store.records, u.pending...)
		u.store.version++
	}
	u.pending = nil
	return nil
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.done {
		return nil
	}
	u.done = true
	u.pending = nil
	return nil
}

func reversed(records []models.MovementRecord) []models.MovementRecord {
	out := make([]models.MovementRecord, len(records))
	for i, rec := range records {
		out[len(records)-1-i] = rec
	}
	return out
}

var _ storage.LedgerStore = (*Store)(nil)
