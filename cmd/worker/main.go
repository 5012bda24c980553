package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"readerpeak-backend/internal/domains/book/job"
	"readerpeak-backend/internal/infrastructure/queue"
	"readerpeak-backend/internal/shared"
	"readerpeak-backend/pkg/container"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	c, err := container.NewContainer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize container: %v\n", err)
		os.Exit(1)
	}
	defer c.Cleanup()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     c.Config.Redis.Host,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		},
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				shared.QueueMaintenance: 1,
			},
		},
	)

	grace := time.Duration(c.Config.Sweeper.GraceMinutes) * time.Minute
	sweeper := job.NewSweepHandler(c.BookRepo, c.AuthorRepo, c.Storage, grace)

	mux := asynq.NewServeMux()
	mux.Handle(shared.TypeSweepOrphanAssets, sweeper)

	scheduler := queue.NewScheduler(c.Config.Redis.Host, c.Config.Sweeper)
	if err := scheduler.RegisterMaintenanceJobs(); err != nil {
		zlog.Fatal().Err(err).Msg("failed to register scheduled jobs")
	}

	go func() {
		if err := scheduler.Start(); err != nil {
			zlog.Fatal().Err(err).Msg("scheduler failed")
		}
	}()

	go func() {
		if err := srv.Run(mux); err != nil {
			zlog.Fatal().Err(err).Msg("worker server failed")
		}
	}()

	zlog.Info().Msg("worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info().Msg("shutting down worker")
	scheduler.Shutdown()
	srv.Shutdown()
	zlog.Info().Msg("worker stopped")
}
