package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind classifies a movement record.
type Kind string

const (
	// KindOnramp records external funds entering the system, credited to To.
	KindOnramp Kind = "ONRAMP"
	// KindOfframp records funds leaving the system, debited from From.
	KindOfframp Kind = "OFFRAMP"
	// KindTransfer records funds moving between two accounts inside the system.
	KindTransfer Kind = "TRANSFER"
)

// MovementRecord is the ledger's only persisted entity. Records are
// append-only: once committed they are never updated or deleted, and an
// account's balance is always derived by folding them.
type MovementRecord struct {
	ID        uuid.UUID       `json:"id"`
	Kind      Kind            `json:"kind"`
	From      uuid.UUID       `json:"from_account,omitempty"` // uuid.Nil for ONRAMP
	To        uuid.UUID       `json:"to_account,omitempty"`   // uuid.Nil for OFFRAMP
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewTransfer builds an uncommitted TRANSFER record between two accounts.
func NewTransfer(from, to uuid.UUID, amount decimal.Decimal) MovementRecord {
	return MovementRecord{
		ID:        uuid.New(),
		Kind:      KindTransfer,
		From:      from,
		To:        to,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
}

// NewOnramp builds an uncommitted ONRAMP record crediting to.
func NewOnramp(to uuid.UUID, amount decimal.Decimal) MovementRecord {
	return MovementRecord{
		ID:        uuid.New(),
		Kind:      KindOnramp,
		To:        to,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
}

// NewOfframp builds an uncommitted OFFRAMP record debiting from.
func NewOfframp(from uuid.UUID, amount decimal.Decimal) MovementRecord {
	return MovementRecord{
		ID:        uuid.New(),
		Kind:      KindOfframp,
		From:      from,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
}
