package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/alexanders-dream/compassionate-care-api/internal/api"
	"github.com/alexanders-dream/compassionate-care-api/internal/appointment"
	"github.com/alexanders-dream/compassionate-care-api/internal/config"
	"github.com/alexanders-dream/compassionate-care-api/internal/content"
	"github.com/alexanders-dream/compassionate-care-api/internal/db"
	"github.com/alexanders-dream/compassionate-care-api/internal/forms"
	"github.com/alexanders-dream/compassionate-care-api/internal/intake"
	"github.com/alexanders-dream/compassionate-care-api/internal/logging"
	redisclient "github.com/alexanders-dream/compassionate-care-api/internal/redis"
	"github.com/alexanders-dream/compassionate-care-api/internal/schedule"
)

var version = "dev" // set via -ldflags at build time

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

	logger.Info("api-server starting",
		zap.String("env", cfg.Env),
		zap.String("version", version),
		zap.String("http_port", cfg.HTTPPort))

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		logger.Fatal("postgres connection error", zap.Error(err))
	}
	defer pgPool.Close()
	logger.Info("connected to postgres")

	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		logger.Fatal("redis connection error", zap.Error(err))
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Warn("error closing redis", zap.Error(err))
		}
	}()
	logger.Info("connected to redis")

	cal, err := schedule.NewCalendar(cfg.CalendarOpen, cfg.CalendarClose)
	if err != nil {
		logger.Fatal("invalid calendar bounds", zap.Error(err))
	}
	engine := schedule.NewEngine(cal)
	locker := redisclient.NewRedisAgendaLocker(rdb, cfg.LockTTL)

	apptSvc := appointment.NewService(appointment.NewPgRepository(pgPool), engine, locker, logger)
	intakeSvc := intake.NewService(intake.NewPgRepository(pgPool), logger)
	contentSvc := content.NewService(content.NewPgRepository(pgPool), logger)
	formsSvc := forms.NewService(forms.NewPgRepository(pgPool), logger)

	router := api.NewRouter(api.RouterConfig{
		Appointments:    apptSvc,
		Intake:          intakeSvc,
		Content:         contentSvc,
		Forms:           formsSvc,
		PgPool:          pgPool,
		Redis:           rdb,
		Logger:          logger,
		Env:             cfg.Env,
		Version:         version,
		AdminToken:      cfg.AdminToken,
		AllowedOrigins:  cfg.AllowedOrigins,
		IntakeRateLimit: cfg.IntakeRateLimit,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-rootCtx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("http server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	logger.Info("api-server stopped")
}
