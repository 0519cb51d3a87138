package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// Config carries the process configuration, read from the environment.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string

	// DatabasePath locates the SQLite audit log. Empty disables
	// persistence; the engine still runs, outcomes are just not recorded.
	DatabasePath string

	// StartingBalance is the demo balance granted to every new session.
	StartingBalance decimal.Decimal

	// AllowedOrigin restricts websocket upgrades. "*" accepts any origin.
	AllowedOrigin string
}

// Load reads the configuration from the environment, applying defaults
// for anything unset.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("ADDR", ":8080"),
		DatabasePath:  "plinko.db",
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
	}

	// Setting DATABASE_PATH to an empty string turns the audit log off,
	// so distinguish unset from empty here.
	if path, ok := os.LookupEnv("DATABASE_PATH"); ok {
		cfg.DatabasePath = path
	}

	balance, err := decimal.NewFromString(getEnv("STARTING_BALANCE", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid STARTING_BALANCE: %w", err)
	}
	if !balance.IsPositive() {
		return nil, fmt.Errorf("STARTING_BALANCE must be positive, got %s", balance)
	}
	cfg.StartingBalance = balance

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
