package ramp_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/focochat/transfer-ledger/internal/ledger"
	"github.com/focochat/transfer-ledger/internal/models"
	"github.com/focochat/transfer-ledger/internal/ramp"
	"github.com/focochat/transfer-ledger/internal/storage"
	"github.com/focochat/transfer-ledger/internal/storage/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*ramp.Service, *memory.Store, models.Account) {
	t.Helper()
	store := memory.New()
	a := models.Account{ID: uuid.New(), Name: "alice", Email: "alice@example.com"}
	store.PutAccount(a)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ramp.New(store, logger), store, a
}

func TestOnramp(t *testing.T) {
	ctx := context.Background()
	svc, store, a := newService(t)

	rec, err := svc.Onramp(ctx, a.ID, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, models.KindOnramp, rec.Kind)
	assert.Equal(t, a.ID, rec.To)
	assert.Equal(t, uuid.Nil, rec.From)

	records, err := store.AllRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "100", ledger.Balance(a.ID, records).String())
}

func TestOfframp(t *testing.T) {
	ctx := context.Background()
	svc, store, a := newService(t)
	_, err := svc.Onramp(ctx, a.ID, decimal.NewFromInt(100))
	require.NoError(t, err)

	rec, err := svc.Offramp(ctx, a.ID, decimal.NewFromInt(30))
	require.NoError(t, err)
	assert.Equal(t, models.KindOfframp, rec.Kind)
	assert.Equal(t, a.ID, rec.From)
	assert.Equal(t, uuid.Nil, rec.To)

	records, err := store.AllRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, "70", ledger.Balance(a.ID, records).String())
}

func TestOfframp_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	svc, store, a := newService(t)
	_, err := svc.Onramp(ctx, a.ID, decimal.NewFromInt(20))
	require.NoError(t, err)

	_, err = svc.Offramp(ctx, a.ID, decimal.NewFromInt(50))
	require.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	records, err := store.AllRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRamp_UnknownAccount(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	_, err := svc.Onramp(ctx, uuid.New(), decimal.NewFromInt(10))
	require.ErrorIs(t, err, storage.ErrAccountNotFound)

	_, err = svc.Offramp(ctx, uuid.New(), decimal.NewFromInt(10))
	require.ErrorIs(t, err, storage.ErrAccountNotFound)
}

func TestRamp_InvalidAmount(t *testing.T) {
	ctx := context.Background()
	svc, _, a := newService(t)

	_, err := svc.Onramp(ctx, a.ID, decimal.Zero)
	require.ErrorIs(t, err, ledger.ErrInvalidRequest)

	_, err = svc.Offramp(ctx, a.ID, decimal.NewFromInt(-1))
	require.ErrorIs(t, err, ledger.ErrInvalidRequest)
}
