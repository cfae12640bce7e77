package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/focochat/transfer-ledger/internal/models"
	"github.com/focochat/transfer-ledger/internal/storage"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// serializationFailure is the postgres SQLSTATE raised when a SERIALIZABLE
// transaction loses a conflict.
const serializationFailure = "40001"

// Store is a postgres-backed storage.LedgerStore. Units of work run as
// SERIALIZABLE transactions, so a read-balance-then-append sequence that
// raced a conflicting writer fails at commit with
// storage.ErrConcurrentConflict instead of committing against stale reads.
//
// Schema:
//
//	accounts(id uuid primary key, name text, email text, created_at timestamptz)
//	movement_records(id uuid primary key, kind text, from_account uuid null,
//	                 to_account uuid null, amount numeric, created_at timestamptz)
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Begin(ctx context.Context) (storage.UnitOfWork, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	return &unitOfWork{tx: tx}, nil
}

func (s *Store) FindAccount(ctx context.Context, id uuid.UUID) (models.Account, error) {
	return findAccount(ctx, s.db, id)
}

func (s *Store) AllRecords(ctx context.Context) ([]models.MovementRecord, error) {
	return allRecords(ctx, s.db)
}

type unitOfWork struct {
	tx   *sql.Tx
	done bool
}

func (u *unitOfWork) FindAccount(ctx context.Context, id uuid.UUID) (models.Account, error) {
	if u.done {
		return models.Account{}, storage.ErrUnitDone
	}
	return findAccount(ctx, u.tx, id)
}

func (u *unitOfWork) AllRecords(ctx context.Context) ([]models.MovementRecord, error) {
	if u.done {
		return nil, storage.ErrUnitDone
	}
	return allRecords(ctx, u.tx)
}

func (u *unitOfWork) AppendRecord(ctx context.Context, rec models.MovementRecord) (models.MovementRecord, error) {
	if u.done {
		return models.MovementRecord{}, storage.ErrUnitDone
	}
	const query = `INSERT INTO movement_records (id, kind, from_account, to_account, amount, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := u.tx.ExecContext(ctx, query,
		rec.ID, string(rec.Kind), nullableID(rec.From), nullableID(rec.To), rec.Amount, rec.CreatedAt)
	if err != nil {
		return models.MovementRecord{}, translate(err)
	}
	return rec, nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.done {
		return storage.ErrUnitDone
	}
	u.done = true
	return translate(u.tx.Commit())
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.done {
		return nil
	}
	u.done = true
	return u.tx.Rollback()
}

// querier lets the store-level and transaction-level reads share one code
// path.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func findAccount(ctx context.Context, q querier, id uuid.UUID) (models.Account, error) {
	const query = `SELECT id, name, email, created_at FROM accounts WHERE id = $1`

	var a models.Account
	err := q.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &a.Email, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, storage.ErrAccountNotFound
	}
	if err != nil {
		return models.Account{}, translate(err)
	}
	return a, nil
}

func allRecords(ctx context.Context, q querier) ([]models.MovementRecord, error) {
	const query = `SELECT id, kind, from_account, to_account, amount, created_at
	FROM movement_records ORDER BY created_at DESC, id`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var records []models.MovementRecord
	for rows.Next() {
		var (
			rec      models.MovementRecord
			kind     string
			from, to sql.NullString
		)
		if err := rows.Scan(&rec.ID, &kind, &from, &to, &rec.Amount, &rec.CreatedAt); err != nil {
			return nil, translate(err)
		}
		rec.Kind = models.Kind(kind)
		if rec.From, err = parseNullableID(from); err != nil {
			return nil, err
		}
		if rec.To, err = parseNullableID(to); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return records, nil
}

// translate maps serialization failures onto the storage sentinel so callers
// can retry without knowing the backend.
func translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == serializationFailure {
		return storage.ErrConcurrentConflict
	}
	return err
}

func nullableID(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id
}

func parseNullableID(v sql.NullString) (uuid.UUID, error) {
	if !v.Valid {
		return uuid.Nil, nil
	}
	return uuid.Parse(v.String)
}

var _ storage.LedgerStore = (*Store)(nil)
