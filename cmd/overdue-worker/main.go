package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/alexanders-dream/compassionate-care-api/internal/appointment"
	"github.com/alexanders-dream/compassionate-care-api/internal/config"
	"github.com/alexanders-dream/compassionate-care-api/internal/db"
	"github.com/alexanders-dream/compassionate-care-api/internal/logging"
	redisclient "github.com/alexanders-dream/compassionate-care-api/internal/redis"
	"github.com/alexanders-dream/compassionate-care-api/internal/schedule"
)

// Sweeps scheduled appointments whose start time passed more than the grace
// period ago and marks them no_show, so the dashboard's day view stays honest
// without anyone clicking through old visits.
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

	logger.Info("overdue-worker starting",
		zap.String("env", cfg.Env),
		zap.Duration("interval", cfg.WorkerInterval),
		zap.Duration("grace", cfg.OverdueGrace))

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

	cal, err := schedule.NewCalendar(cfg.CalendarOpen, cfg.CalendarClose)
	if err != nil {
		logger.Fatal("invalid calendar bounds", zap.Error(err))
	}

	repo := appointment.NewPgRepository(pgPool)
	locker := redisclient.NewRedisAgendaLocker(rdb, cfg.LockTTL)
	svc := appointment.NewService(repo, schedule.NewEngine(cal), locker, logger)

	// Run once at startup
	runOnce(rootCtx, svc, cfg.OverdueGrace, logger)

	ticker := time.NewTicker(cfg.WorkerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rootCtx.Done():
			logger.Info("shutdown signal received, stopping overdue worker")
			return
		case <-ticker.C:
			runOnce(rootCtx, svc, cfg.OverdueGrace, logger)
		}
	}
}

func runOnce(ctx context.Context, svc *appointment.Service, grace time.Duration, logger *zap.Logger) {
	runCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	start := time.Now()
	marked, err := svc.MarkOverdueNoShows(runCtx, grace)
	if err != nil {
		logger.Error("overdue sweep error", zap.Error(err))
		return
	}
	logger.Info("overdue sweep complete",
		zap.Int("marked_no_show", marked),
		zap.Duration("took", time.Since(start)))
}
