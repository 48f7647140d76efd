package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/lumiere-institute/lumiere/internal/app"
	"github.com/lumiere-institute/lumiere/internal/dashboard"
	jobmetrics "github.com/lumiere-institute/lumiere/internal/jobs"
	"github.com/lumiere-institute/lumiere/internal/platform/cache"
	"github.com/lumiere-institute/lumiere/internal/platform/db"
	"github.com/lumiere-institute/lumiere/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	dashboardService := dashboard.NewService(dashboard.NewRepository(pool), redisClient)
	refresh := func(ctx context.Context) error {
		_, err := dashboardService.Snapshot(ctx)
		return err
	}

	metrics := jobmetrics.NewMetrics(nil)
	mailer := jobs.LogMailer{Logger: logger}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeWelcomeEmail, Handler: jobs.HandleWelcomeEmailTask(mailer, metrics)},
			{Type: jobs.TaskTypeStatsSnapshot, Handler: jobs.HandleStatsSnapshotTask(refresh, metrics)},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "*/5 * * * *", Task: jobs.NewStatsSnapshotTask(), Options: []asynq.Option{asynq.MaxRetry(1)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
