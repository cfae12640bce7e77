package ledger

import (
	"github.com/focochat/transfer-ledger/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Balance folds movement records into the signed balance of one account.
// ONRAMP credits To, OFFRAMP debits From, TRANSFER credits To and debits
// From. Records that do not reference the account contribute nothing, so the
// result is independent of iteration order and an empty ledger yields zero.
func Balance(accountID uuid.UUID, records []models.MovementRecord) decimal.Decimal {
	balance := decimal.Zero
	for _, rec := range records {
		switch rec.Kind {
		case models.KindOnramp:
			if rec.To == accountID {
				balance = balance.Add(rec.Amount)
			}
		case models.KindOfframp:
			if rec.From == accountID {
				balance = balance.Sub(rec.Amount)
			}
		case models.KindTransfer:
			if rec.To == accountID {
				balance = balance.Add(rec.Amount)
			}
			if rec.From == accountID {
				balance = balance.Sub(rec.Amount)
			}
		}
	}
	return balance
}
