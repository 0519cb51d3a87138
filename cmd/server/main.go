package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/joaointech/Plinko-incinerator/internal/api"
	"github.com/joaointech/Plinko-incinerator/internal/config"
	"github.com/joaointech/Plinko-incinerator/internal/store"
	"github.com/joaointech/Plinko-incinerator/internal/ws"
)

func main() {
	logger := log.New(os.Stdout, "[SERVER] ", log.LstdFlags)

	// Missing .env is fine, the environment still applies.
	if err := godotenv.Load(); err == nil {
		logger.Printf("env_loaded file=.env")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config_invalid error=%q", err)
	}

	var db store.DB
	if cfg.DatabasePath != "" {
		sqliteDB, err := store.NewSQLiteDB(cfg.DatabasePath)
		if err != nil {
			logger.Fatalf("db_open_failed path=%s error=%q", cfg.DatabasePath, err)
		}
		defer sqliteDB.Close()

		if err := sqliteDB.Migrate(); err != nil {
			logger.Fatalf("db_migrate_failed error=%q", err)
		}
		db = sqliteDB
		logger.Printf("db_ready path=%s", cfg.DatabasePath)
	} else {
		logger.Printf("db_disabled, outcomes will not be recorded")
	}

	wsHandler := ws.NewHandler(db, cfg.StartingBalance, cfg.AllowedOrigin)
	server := api.NewServer(db, wsHandler)

	logger.Printf("listening addr=%s version=%s commit=%s", cfg.Addr, api.EngineVersion, api.GitCommit)
	if err := http.ListenAndServe(cfg.Addr, server.Routes()); err != nil {
		logger.Fatalf("server_stopped error=%q", err)
	}
}
