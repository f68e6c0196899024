package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"legalease-api/core/constants"
	"legalease-api/core/logger"
	"legalease-api/modules/appointment/entity"
	"legalease-api/modules/appointment/repository"
	"legalease-api/modules/billing/settlement"
)

// Sweep resolves pending appointments whose scheduled start has passed
// without a provider decision. Paid bookings move to refund_pending with
// a full refund; unpaid leftovers are deleted. The sweep is idempotent:
// every transition re-checks status under lock, so overlapping runs just
// skip each other's rows. Returns the number of appointments resolved.
func (s *AppointmentService) Sweep(ctx context.Context, providerID *uuid.UUID) (int, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	nowClock := now.Format(constants.TimeLayout)

	expired, err := s.repo.ListExpiredPending(ctx, providerID, today, nowClock)
	if err != nil {
		return 0, err
	}

	resolved := 0
	for i := range expired {
		appt := &expired[i]

		inv, err := s.invoices.GetByAppointmentID(ctx, appt.ID)
		if err != nil {
			logger.Error("AppointmentService:Sweep:Invoice", err)
			continue
		}

		if inv == nil {
			err = s.repo.DeleteExpiredUnpaid(ctx, appt.ID)
		} else {
			refund := settlement.Round(settlement.FullRefund(inv.Amount))
			err = s.repo.MarkRefundPending(ctx, appt.ID, refund,
				" | Expired without provider response.",
				[]entity.AppointmentStatus{entity.StatusPending})
		}
		if err != nil {
			// Someone else got there first; nothing to do for this row.
			if err == repository.ErrStatusConflict || err == repository.ErrNotFound {
				continue
			}
			logger.Error("AppointmentService:Sweep:Resolve", err)
			continue
		}
		resolved++

		if inv != nil {
			s.notify(ctx, appt.CustomerID, "Booking expired",
				"Your appointment request was not answered in time and has been refunded in full.",
				"/appointments/"+appt.ID.String())
		}
	}

	if resolved > 0 {
		logger.Info("AppointmentService:Sweep", "resolved", resolved)
	}
	return resolved, nil
}
