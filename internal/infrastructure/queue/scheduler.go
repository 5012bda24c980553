package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"readerpeak-backend/internal/config"
	"readerpeak-backend/internal/domains/book/job"
	"readerpeak-backend/internal/shared"
)

// Scheduler registers the periodic maintenance tasks.
type Scheduler struct {
	scheduler *asynq.Scheduler
	cfg       config.SweeperConfig
}

func NewScheduler(redisAddress string, cfg config.SweeperConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		cfg:       cfg,
	}
}

// RegisterMaintenanceJobs wires every scheduled task.
func (s *Scheduler) RegisterMaintenanceJobs() error {
	return s.registerSweepOrphanAssetsJob()
}

// The sweep runs nightly during low traffic. One retry is enough:
// anything missed is picked up by the next night's run.
func (s *Scheduler) registerSweepOrphanAssetsJob() error {
	payload, err := json.Marshal(job.SweepOrphanAssetsPayload{})
	if err != nil {
		return fmt.Errorf("marshal sweep payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeSweepOrphanAssets, payload)

	_, err = s.scheduler.Register(
		s.cfg.CronSpec,
		task,
		asynq.Queue(shared.QueueMaintenance),
		asynq.MaxRetry(1),
		asynq.Timeout(15*time.Minute),
	)
	if err != nil {
		return fmt.Errorf("register sweep job: %w", err)
	}

	log.Info().Str("cron", s.cfg.CronSpec).Msg("registered orphan asset sweep")
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
