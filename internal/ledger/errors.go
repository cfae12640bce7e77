package ledger

import "errors"

var (
	// ErrInvalidRequest rejects malformed operations before any storage
	// access: non-positive amounts, missing accounts, self-transfers.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInsufficientBalance rejects a debit whose sender's derived balance
	// is below the requested amount.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrTransferFailed surfaces an underlying storage failure. Nothing was
	// persisted; the caller may retry the whole operation.
	ErrTransferFailed = errors.New("transfer failed")
)
