package config

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Errorf("Expected default addr :8080, got %s", cfg.Addr)
	}
	if cfg.DatabasePath != "plinko.db" {
		t.Errorf("Expected default database path plinko.db, got %s", cfg.DatabasePath)
	}
	if !cfg.StartingBalance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected default starting balance 1000, got %s", cfg.StartingBalance)
	}
	if cfg.AllowedOrigin != "*" {
		t.Errorf("Expected default allowed origin *, got %s", cfg.AllowedOrigin)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("STARTING_BALANCE", "250.50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Addr != ":9999" {
		t.Errorf("Expected addr :9999, got %s", cfg.Addr)
	}
	if cfg.DatabasePath != "" {
		t.Errorf("Expected empty DATABASE_PATH to disable the audit log, got %s", cfg.DatabasePath)
	}
	if !cfg.StartingBalance.Equal(decimal.RequireFromString("250.50")) {
		t.Errorf("Expected starting balance 250.50, got %s", cfg.StartingBalance)
	}
}

func TestLoadRejectsBadBalance(t *testing.T) {
	for _, v := range []string{"abc", "-5", "0"} {
		t.Setenv("STARTING_BALANCE", v)
		if _, err := Load(); err == nil {
			t.Errorf("STARTING_BALANCE=%s: expected error", v)
		}
	}
}
