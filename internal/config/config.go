package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// App is the service configuration, loaded from the environment with an
// optional .env file on top.
type App struct {
	Server   Server
	DB       DB
	Kafka    Kafka
	Auth     Auth
	Log      Log
	Transfer Transfer
}

type Server struct {
	Addr string `envconfig:"SERVER_ADDR" default:":8080"`
}

type DB struct {
	// URL selects the postgres store; empty selects the in-memory store.
	URL string `envconfig:"DATABASE_URL"`
}

type Kafka struct {
	// Brokers is comma-separated; empty selects the log notifier.
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"transfer_completed"`
}

type Auth struct {
	JwtSecret string `envconfig:"JWT_SECRET" default:"dev-secret"`
}

type Log struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

type Transfer struct {
	MaxAttempts int `envconfig:"TRANSFER_MAX_ATTEMPTS" default:"3"`
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load() (*App, error) {
	if err := godotenv.Load(); err != nil {
		slog.Default().Warn("no .env file found, using system environment variables")
	}
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
