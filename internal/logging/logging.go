package logging

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/focochat/transfer-ledger/internal/config"
)

// New builds the service logger: slog over a charmbracelet handler, set as
// the process default. Unknown levels fall back to info.
func New(cfg config.Log) *slog.Logger {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	formatter := log.TextFormatter
	if cfg.Format == "json" {
		formatter = log.JSONFormatter
	}

	handler := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "transfer-ledger",
		Formatter:       formatter,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
