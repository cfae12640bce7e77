package memory_test

import (
	"context"
	"testing"

	"github.com/focochat/transfer-ledger/internal/models"
	"github.com/focochat/transfer-ledger/internal/storage"
	"github.com/focochat/transfer-ledger/internal/storage/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onramp(to uuid.UUID, amount int64) models.MovementRecord {
	return models.NewOnramp(to, decimal.NewFromInt(amount))
}

func commitOne(t *testing.T, store *memory.Store, rec models.MovementRecord) {
	t.Helper()
	ctx := context.Background()
	uow, err := store.Begin(ctx)
	require.NoError(t, err)
	_, err = uow.AppendRecord(ctx, rec)
	require.NoError(t, err)
	require.NoError(t, uow.Commit(ctx))
}

func TestFindAccount(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	a := models.Account{ID: uuid.New(), Name: "alice"}
	store.PutAccount(a)

	got, err := store.FindAccount(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)

	_, err = store.FindAccount(ctx, uuid.New())
	require.ErrorIs(t, err, storage.ErrAccountNotFound)
}

func TestCommitConflict(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	account := uuid.New()

	u1, err := store.Begin(ctx)
	require.NoError(t, err)
	u2, err := store.Begin(ctx)
	require.NoError(t, err)

	_, err = u1.AppendRecord(ctx, onramp(account, 10))
	require.NoError(t, err)
	require.NoError(t, u1.Commit(ctx))

	_, err = u2.AppendRecord(ctx, onramp(account, 20))
	require.NoError(t, err)
	require.ErrorIs(t, u2.Commit(ctx), storage.ErrConcurrentConflict)

	records, err := store.AllRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "10", records[0].Amount.String())
}

func TestReadOnlyCommitDoesNotInvalidateOthers(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	reader, err := store.Begin(ctx)
	require.NoError(t, err)
	writer, err := store.Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, reader.Commit(ctx))

	_, err = writer.AppendRecord(ctx, onramp(uuid.New(), 5))
	require.NoError(t, err)
	require.NoError(t, writer.Commit(ctx))
}

func TestRollbackDiscardsPending(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	uow, err := store.Begin(ctx)
	require.NoError(t, err)
	_, err = uow.AppendRecord(ctx, onramp(uuid.New(), 10))
	require.NoError(t, err)
	require.NoError(t, uow.Rollback(ctx))

	records, err := store.AllRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestUnitUnusableAfterCommit(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	uow, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, uow.Commit(ctx))

	_, err = uow.AllRecords(ctx)
	require.ErrorIs(t, err, storage.ErrUnitDone)
	_, err = uow.AppendRecord(ctx, onramp(uuid.New(), 1))
	require.ErrorIs(t, err, storage.ErrUnitDone)
	require.ErrorIs(t, uow.Commit(ctx), storage.ErrUnitDone)
	require.NoError(t, uow.Rollback(ctx)) // safe to defer after commit
}

func TestAllRecordsMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	account := uuid.New()

	first := onramp(account, 1)
	second := onramp(account, 2)
	third := onramp(account, 3)
	commitOne(t, store, first)
	commitOne(t, store, second)
	commitOne(t, store, third)

	records, err := store.AllRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, third.ID, records[0].ID)
	assert.Equal(t, second.ID, records[1].ID)
	assert.Equal(t, first.ID, records[2].ID)
}

func TestUnitSeesOwnPendingAppends(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	account := uuid.New()
	commitOne(t, store, onramp(account, 1))

	uow, err := store.Begin(ctx)
	require.NoError(t, err)
	pending := onramp(account, 2)
	_, err = uow.AppendRecord(ctx, pending)
	require.NoError(t, err)

	view, err := uow.AllRecords(ctx)
	require.NoError(t, err)
	require.Len(t, view, 2)
	assert.Equal(t, pending.ID, view[0].ID)

	// uncommitted appends are invisible outside the unit
	outside, err := store.AllRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, outside, 1)
}

func TestSnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	account := uuid.New()

	uow, err := store.Begin(ctx)
	require.NoError(t, err)
	commitOne(t, store, onramp(account, 1))

	view, err := uow.AllRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, view, "unit must not observe records committed after Begin")
}
