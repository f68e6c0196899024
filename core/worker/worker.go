package worker

import (
	"fmt"

	"github.com/hibiken/asynq"

	"legalease-api/core/config"
	"legalease-api/core/logger"
	appointmentService "legalease-api/modules/appointment/service"
	"legalease-api/modules/appointment/task"
)

// Worker runs the asynq server and scheduler that drive background
// expiration sweeps. Sweeps also happen on access, so a stalled worker
// degrades freshness but never correctness.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

func New(cfg *config.Config, svc appointmentService.AppointmentServiceInterface) *Worker {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.QueueDB,
	}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Worker.Concurrency,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeSweepExpired, task.HandleSweepTask(svc))

	scheduler := asynq.NewScheduler(redisOpt, nil)
	cronspec := fmt.Sprintf("@every %dm", cfg.Worker.SweepIntervalMinutes)
	if _, err := scheduler.Register(cronspec, task.NewSweepTask()); err != nil {
		logger.Error("Worker:New:RegisterSweep", err)
	}

	return &Worker{server: server, scheduler: scheduler, mux: mux}
}

// Start launches the worker and scheduler in the background.
func (w *Worker) Start() {
	go func() {
		if err := w.server.Run(w.mux); err != nil {
			logger.Error("Worker:Start:Server", err)
		}
	}()
	go func() {
		if err := w.scheduler.Run(); err != nil {
			logger.Error("Worker:Start:Scheduler", err)
		}
	}()
	logger.Info("Worker started", "sweep_task", task.TypeSweepExpired)
}

func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}
