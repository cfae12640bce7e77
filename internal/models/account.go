package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is a participant referenced by movement records. The ledger never
// owns account lifecycle; it only resolves identifiers. Accounts carry no
// stored balance field: balances are always derived from the ledger.
type Account struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
