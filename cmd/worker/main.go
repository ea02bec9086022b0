package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/capitrack/engine/internal/queue/tasks"
	"github.com/capitrack/engine/internal/repository"
	"github.com/capitrack/engine/pkg/config"
	"github.com/capitrack/engine/pkg/database"
	"github.com/capitrack/engine/pkg/logger"
)

func main() {
	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.AsynqConcurrency,
	})

	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.L().Fatal("failed to open database", zap.Error(err))
	}

	historyRepo := repository.NewHistoryRepository(db)
	milestoneRepo := repository.NewMilestoneRepository(db)

	historyHandler := tasks.NewHistoryTaskHandler(historyRepo)
	milestoneHandler := tasks.NewMilestoneTaskHandler(milestoneRepo)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeHistoryAppend, historyHandler.HandleAppend)
	mux.HandleFunc(tasks.TypeMilestoneSweep, milestoneHandler.HandleSweep)

	// Periodic milestone sweep, hourly.
	scheduler := asynq.NewScheduler(redisOpt, nil)
	if _, err := scheduler.Register("@every 1h", asynq.NewTask(tasks.TypeMilestoneSweep, nil)); err != nil {
		logger.L().Fatal("failed to register milestone sweep", zap.Error(err))
	}

	errCh := make(chan error, 2)
	go func() {
		logger.L().Info("asynq worker starting", zap.Int("concurrency", cfg.AsynqConcurrency))
		if err := srv.Run(mux); err != nil {
			errCh <- err
		}
	}()
	go func() {
		if err := scheduler.Run(); err != nil {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.L().Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.L().Error("worker stopped with error", zap.Error(err))
	}

	scheduler.Shutdown()
	srv.Shutdown()
}
