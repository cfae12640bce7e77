package main

import (
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/focochat/transfer-ledger/internal/config"
	"github.com/focochat/transfer-ledger/internal/ledger"
	"github.com/focochat/transfer-ledger/internal/logging"
	"github.com/focochat/transfer-ledger/internal/notify"
	notifykafka "github.com/focochat/transfer-ledger/internal/notify/kafka"
	"github.com/focochat/transfer-ledger/internal/ramp"
	"github.com/focochat/transfer-ledger/internal/server"
	"github.com/focochat/transfer-ledger/internal/storage"
	"github.com/focochat/transfer-ledger/internal/storage/memory"
	"github.com/focochat/transfer-ledger/internal/storage/postgres"
	_ "github.com/lib/pq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New(config.Log{Level: "error", Format: "text"}).Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Log)

	var store storage.LedgerStore
	if cfg.DB.URL != "" {
		db, err := sql.Open("postgres", cfg.DB.URL)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		if err := db.Ping(); err != nil {
			logger.Error("failed to reach database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		store = postgres.New(db)
		logger.Info("using postgres ledger store")
	} else {
		store = memory.New()
		logger.Warn("DATABASE_URL not set, using in-memory ledger store")
	}

	var notifier notify.Notifier
	if len(cfg.Kafka.Brokers) > 0 {
		publisher := notifykafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer publisher.Close()
		notifier = publisher
		logger.Info("publishing transfer notifications to kafka",
			"brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	} else {
		notifier = notify.NewLogNotifier(logger)
		logger.Warn("KAFKA_BROKERS not set, logging transfer notifications")
	}

	engine := ledger.NewEngine(store, notifier, logger, cfg.Transfer.MaxAttempts)
	ramps := ramp.New(store, logger)
	app := server.New(cfg, engine, ramps, logger)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down")
		_ = app.Shutdown()
	}()

	logger.Info("starting server", "addr", cfg.Server.Addr)
	if err := app.Listen(cfg.Server.Addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
