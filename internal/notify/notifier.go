package notify

import (
	"context"
	"log/slog"

	"github.com/focochat/transfer-ledger/internal/models/events"
)

// Notifier receives transfer notifications after commit. Delivery is
// best-effort: callers log failures and never roll back the committed
// transfer.
type Notifier interface {
	Notify(ctx context.Context, event events.TransferCompleted) error
}

// LogNotifier writes notifications to the log. It stands in for a real
// delivery channel in local runs and tests.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, event events.TransferCompleted) error {
	n.logger.InfoContext(ctx, "transfer completed",
		"transfer_id", event.TransferID,
		"from_account", event.FromAccount,
		"to_account", event.ToAccount,
		"amount", event.Amount,
		"new_balance", event.NewBalance,
	)
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
