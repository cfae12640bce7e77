package ledger_test

import (
	"math/rand"
	"testing"

	"github.com/focochat/transfer-ledger/internal/ledger"
	"github.com/focochat/transfer-ledger/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestBalance_EmptyLedger(t *testing.T) {
	got := ledger.Balance(uuid.New(), nil)
	require.True(t, got.IsZero())
}

func TestBalance_SingleOnramp(t *testing.T) {
	a := uuid.New()
	records := []models.MovementRecord{models.NewOnramp(a, dec(100))}

	require.Equal(t, "100", ledger.Balance(a, records).String())
}

func TestBalance_SignedContributions(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	records := []models.MovementRecord{
		models.NewOnramp(a, dec(100)),
		models.NewTransfer(a, b, dec(40)),
		models.NewOfframp(b, dec(10)),
	}

	require.Equal(t, "60", ledger.Balance(a, records).String())
	require.Equal(t, "30", ledger.Balance(b, records).String())
}

func TestBalance_UnrelatedRecordsContributeNothing(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	records := []models.MovementRecord{
		models.NewOnramp(a, dec(100)),
		models.NewTransfer(a, b, dec(40)),
	}

	require.True(t, ledger.Balance(c, records).IsZero())
}

func TestBalance_OrderIndependent(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	records := []models.MovementRecord{
		models.NewOnramp(a, dec(100)),
		models.NewOnramp(b, dec(50)),
		models.NewTransfer(a, b, dec(25)),
		models.NewTransfer(b, c, dec(10)),
		models.NewOfframp(a, dec(5)),
	}
	want := ledger.Balance(a, records).String()

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		rng.Shuffle(len(records), func(i, j int) {
			records[i], records[j] = records[j], records[i]
		})
		require.Equal(t, want, ledger.Balance(a, records).String())
	}
}

func TestBalance_RepeatedReadsAgree(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	records := []models.MovementRecord{
		models.NewOnramp(a, dec(75)),
		models.NewTransfer(a, b, dec(20)),
	}

	first := ledger.Balance(a, records)
	second := ledger.Balance(a, records)
	require.True(t, first.Equal(second))
}
