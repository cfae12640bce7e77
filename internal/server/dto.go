package server

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferRequest is the inbound transfer body. The sender is never part of
// the body; it comes from the authenticated token subject.
type TransferRequest struct {
	ToAccountID string          `json:"to_account_id" validate:"required,uuid"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
}

// RampRequest is the inbound onramp/offramp body, called by provider
// integrations after the external leg settled.
type RampRequest struct {
	AccountID string          `json:"account_id" validate:"required,uuid"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
}

type BalanceResponse struct {
	AccountID uuid.UUID       `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}
