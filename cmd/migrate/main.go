package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/alexanders-dream/compassionate-care-api/internal/config"
	"github.com/alexanders-dream/compassionate-care-api/internal/db"
	"github.com/alexanders-dream/compassionate-care-api/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config load error: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("postgres connection error", zap.Error(err))
	}
	defer pool.Close()

	if err := db.ApplySchema(ctx, pool); err != nil {
		logger.Fatal("schema apply failed", zap.Error(err))
	}

	logger.Info("schema applied")
}
