package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferCompleted is emitted after a transfer has been durably committed.
// NewBalance is the receiver's derived balance read back after commit; under
// concurrent writers it is an approximation, not a guarantee.
type TransferCompleted struct {
	TransferID  uuid.UUID       `json:"transfer_id"`
	FromAccount uuid.UUID       `json:"from_account"`
	ToAccount   uuid.UUID       `json:"to_account"`
	ToName      string          `json:"to_name,omitempty"`
	ToEmail     string          `json:"to_email,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	NewBalance  decimal.Decimal `json:"new_balance"`
	OccurredAt  time.Time       `json:"occurred_at"`
}
