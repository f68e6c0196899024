package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"legalease-api/core/constants"
	"legalease-api/core/errors"
	"legalease-api/core/params"
	"legalease-api/modules/appointment/dto"
	"legalease-api/modules/appointment/entity"
	"legalease-api/modules/appointment/repository"
	billingDto "legalease-api/modules/billing/dto"
	"legalease-api/modules/billing/settlement"
)

// load fetches the appointment and verifies the actor is a party to it.
func (s *AppointmentService) load(ctx context.Context, actor Actor, id uuid.UUID) (*entity.AppointmentWithSlot, *errors.AppError) {
	appt, err := s.repo.GetWithSlot(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load appointment", err)
	}
	if appt == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "appointment not found", nil)
	}
	if appt.CustomerID != actor.ID && appt.ProviderID != actor.ID {
		return nil, errors.NewAppError(errors.ErrForbidden, "appointment belongs to another user", nil)
	}
	return appt, nil
}

func (s *AppointmentService) GetDetail(ctx context.Context, actor Actor, id uuid.UUID) (*dto.AppointmentResponse, *errors.AppError) {
	// Resolve any stale pending rows first so a lapsed request is never
	// reported as still awaiting the provider.
	s.sweepQuietly(ctx, sweepScope(actor))

	appt, appErr := s.load(ctx, actor, id)
	if appErr != nil {
		return nil, appErr
	}

	resp := dto.ToAppointmentResponse(appt)
	now := s.now()
	resp.CanCancel = actor.ID == appt.CustomerID && s.withinCancelWindow(appt, now) &&
		(appt.Status == entity.StatusPending || appt.Status == entity.StatusConfirmed)
	resp.CanComplete = actor.ID == appt.ProviderID && appt.Status == entity.StatusConfirmed &&
		!now.Before(appt.EndAt())

	inv, err := s.invoices.GetByAppointmentID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load invoice", err)
	}
	if inv != nil {
		resp.Fees = &billingDto.FeeBreakdown{
			Total:           inv.Amount,
			ConsultationFee: settlement.Round(settlement.ConsultationFeeFromTotal(inv.Amount)),
			ServiceFee:      settlement.Round(settlement.ServiceFee(inv.Amount)),
			RefundAmount:    inv.RefundAmount,
		}
	}

	return &resp, nil
}

func (s *AppointmentService) ListMine(ctx context.Context, actor Actor, queryParams params.QueryParams) (*dto.PaginatedAppointmentResponse, *errors.AppError) {
	s.sweepQuietly(ctx, sweepScope(actor))

	page, err := s.repo.ListByUser(ctx, actor.Role, actor.ID, queryParams)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list appointments", err)
	}

	items := make([]dto.AppointmentResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, dto.ToAppointmentResponse(&page.Items[i]))
	}
	return &dto.PaginatedAppointmentResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}, nil
}

// sweepScope limits on-access sweeps to the provider's own backlog;
// customer reads sweep globally so their own stale requests resolve.
func sweepScope(actor Actor) *uuid.UUID {
	if actor.Role == constants.RoleProvider {
		id := actor.ID
		return &id
	}
	return nil
}

// Approve confirms a pending request. Provider only.
func (s *AppointmentService) Approve(ctx context.Context, actor Actor, id uuid.UUID) (*dto.AppointmentResponse, *errors.AppError) {
	appt, appErr := s.load(ctx, actor, id)
	if appErr != nil {
		return nil, appErr
	}
	if actor.ID != appt.ProviderID {
		return nil, errors.NewAppError(errors.ErrForbidden, "only the provider can decide on a request", nil)
	}
	if !s.now().Before(appt.StartAt()) {
		return nil, errors.NewAppError(errors.ErrPreconditionFailed, "the requested time has already passed", nil)
	}

	if err := s.repo.Approve(ctx, id); err != nil {
		return nil, mapLifecycleErr(err, "failed to approve appointment")
	}

	s.notify(ctx, appt.CustomerID, "Booking confirmed",
		fmt.Sprintf("Your appointment on %s at %s has been confirmed.",
			appt.SlotDate.UTC().Format(constants.DateLayout), appt.StartTime),
		"/appointments/"+id.String())

	return s.GetDetail(ctx, actor, id)
}

// Reject declines a pending request and queues a full refund of the
// charged total, service fee included.
func (s *AppointmentService) Reject(ctx context.Context, actor Actor, id uuid.UUID) (*dto.AppointmentResponse, *errors.AppError) {
	appt, appErr := s.load(ctx, actor, id)
	if appErr != nil {
		return nil, appErr
	}
	if actor.ID != appt.ProviderID {
		return nil, errors.NewAppError(errors.ErrForbidden, "only the provider can decide on a request", nil)
	}

	inv, err := s.invoices.GetByAppointmentID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load invoice", err)
	}

	if inv == nil {
		err = s.repo.CancelUnpaid(ctx, id, " | Rejected by provider.",
			[]entity.AppointmentStatus{entity.StatusPending})
	} else {
		refund := settlement.Round(settlement.FullRefund(inv.Amount))
		err = s.repo.MarkRefundPending(ctx, id, refund, " | Rejected by provider.",
			[]entity.AppointmentStatus{entity.StatusPending})
	}
	if err != nil {
		return nil, mapLifecycleErr(err, "failed to reject appointment")
	}

	s.notify(ctx, appt.CustomerID, "Booking declined",
		fmt.Sprintf("Your appointment on %s at %s was declined. A full refund is on its way.",
			appt.SlotDate.UTC().Format(constants.DateLayout), appt.StartTime),
		"/appointments/"+id.String())

	return s.GetDetail(ctx, actor, id)
}

func (s *AppointmentService) withinCancelWindow(appt *entity.AppointmentWithSlot, now time.Time) bool {
	deadline := appt.StartAt().Add(-time.Duration(constants.CancelWindowMinutes) * time.Minute)
	return !now.After(deadline)
}

// CancelByCustomer cancels a pending or confirmed booking at least 24
// hours before start. The consultation fee is refunded; the service fee
// is forfeited.
func (s *AppointmentService) CancelByCustomer(ctx context.Context, actor Actor, id uuid.UUID, reason string) (*dto.AppointmentResponse, *errors.AppError) {
	appt, appErr := s.load(ctx, actor, id)
	if appErr != nil {
		return nil, appErr
	}
	if actor.ID != appt.CustomerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "only the customer can cancel their booking", nil)
	}
	if appt.Status != entity.StatusPending && appt.Status != entity.StatusConfirmed {
		return nil, errors.NewAppError(errors.ErrStatusConflict, "appointment can no longer be cancelled", nil)
	}
	if !s.withinCancelWindow(appt, s.now()) {
		return nil, errors.NewAppError(errors.ErrCancelWindowClosed,
			"appointments can only be cancelled at least 24 hours before the start time", nil)
	}

	inv, err := s.invoices.GetByAppointmentID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load invoice", err)
	}

	noteSuffix := fmt.Sprintf(" | Cancelled by customer at %s: %s",
		s.now().UTC().Format(time.RFC3339), reason)
	from := []entity.AppointmentStatus{entity.StatusPending, entity.StatusConfirmed}
	if inv == nil {
		err = s.repo.CancelUnpaid(ctx, id, noteSuffix, from)
	} else {
		refund := settlement.CustomerCancelRefund(inv.Amount)
		err = s.repo.MarkRefundPending(ctx, id, refund, noteSuffix, from)
	}
	if err != nil {
		return nil, mapLifecycleErr(err, "failed to cancel appointment")
	}

	s.notify(ctx, appt.ProviderID, "Booking cancelled",
		fmt.Sprintf("The appointment on %s at %s was cancelled by the customer.",
			appt.SlotDate.UTC().Format(constants.DateLayout), appt.StartTime),
		"/appointments/"+id.String())

	return s.GetDetail(ctx, actor, id)
}

// Complete settles a confirmed appointment after the session has ended:
// the platform keeps its commission and the provider's net is accrued.
func (s *AppointmentService) Complete(ctx context.Context, actor Actor, id uuid.UUID) (*dto.AppointmentResponse, *errors.AppError) {
	appt, appErr := s.load(ctx, actor, id)
	if appErr != nil {
		return nil, appErr
	}
	if actor.ID != appt.ProviderID {
		return nil, errors.NewAppError(errors.ErrForbidden, "only the provider can complete an appointment", nil)
	}
	if appt.Status != entity.StatusConfirmed {
		return nil, errors.NewAppError(errors.ErrPreconditionFailed, "only a confirmed appointment can be completed", nil)
	}
	if s.now().Before(appt.EndAt()) {
		return nil, errors.NewAppError(errors.ErrSessionNotOver, "the session has not ended yet", nil)
	}

	inv, err := s.invoices.GetByAppointmentID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load invoice", err)
	}
	if inv == nil {
		return nil, errors.NewAppError(errors.ErrStatusConflict, "no paid invoice for this appointment", nil)
	}

	consultationFee := settlement.ConsultationFeeFromTotal(inv.Amount)
	commission := settlement.Round(settlement.Commission(consultationFee))
	providerNet := settlement.Round(settlement.ProviderNet(consultationFee))

	if err := s.repo.Complete(ctx, id, commission, providerNet); err != nil {
		return nil, mapLifecycleErr(err, "failed to complete appointment")
	}

	s.notify(ctx, appt.CustomerID, "Session completed",
		"Your appointment has been marked as completed. Thank you for using the platform.",
		"/appointments/"+id.String())
	s.notify(ctx, appt.ProviderID, "Earnings updated",
		fmt.Sprintf("Your payout of %.2f for the completed session has been recorded.", providerNet),
		"/billing/earnings")

	return s.GetDetail(ctx, actor, id)
}

func mapLifecycleErr(err error, fallback string) *errors.AppError {
	switch err {
	case repository.ErrNotFound:
		return errors.NewAppError(errors.ErrNotFound, "appointment not found", nil)
	case repository.ErrStatusConflict:
		return errors.NewAppError(errors.ErrStatusConflict, "appointment was updated by another action", nil)
	default:
		return errors.NewAppError(errors.ErrInternalServer, fallback, err)
	}
}
