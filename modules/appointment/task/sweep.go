package task

import (
	"context"

	"github.com/hibiken/asynq"

	"legalease-api/core/logger"
	"legalease-api/modules/appointment/service"
)

// TypeSweepExpired is the queue task that resolves stale pending
// appointments across all providers.
const TypeSweepExpired = "appointment:sweep_expired"

// NewSweepTask builds the periodic sweep task. It carries no payload; the
// handler always sweeps the whole backlog.
func NewSweepTask() *asynq.Task {
	return asynq.NewTask(TypeSweepExpired, nil)
}

// HandleSweepTask returns the worker handler for TypeSweepExpired.
func HandleSweepTask(svc service.AppointmentServiceInterface) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		resolved, err := svc.Sweep(ctx, nil)
		if err != nil {
			logger.Error("SweepTask:Handle", err)
			return err
		}
		logger.Debug("SweepTask:Handle", "resolved", resolved)
		return nil
	}
}
