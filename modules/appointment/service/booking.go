package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"legalease-api/core/constants"
	"legalease-api/core/errors"
	"legalease-api/core/utils"
	"legalease-api/modules/appointment/dto"
	"legalease-api/modules/appointment/entity"
	"legalease-api/modules/appointment/repository"
	availabilityEntity "legalease-api/modules/availability/entity"
	billingEntity "legalease-api/modules/billing/entity"
	"legalease-api/modules/billing/settlement"
)

// Reserve books a sub-interval of a slot for the acting customer. Payment
// is simulated: the invoice is written as paid in the same transaction
// that inserts the appointment, so a reservation either exists fully paid
// or not at all.
func (s *AppointmentService) Reserve(ctx context.Context, actor Actor, req *dto.CreateAppointmentRequest) (*dto.CreateAppointmentResponse, *errors.AppError) {
	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid slot id", err)
	}

	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load slot", err)
	}
	if slot == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "slot not found", nil)
	}

	// Stale pending requests on this provider are resolved before the
	// availability check so they cannot block a live booking.
	s.sweepQuietly(ctx, &slot.ProviderID)

	provider, appErr := s.providers.GetByID(ctx, slot.ProviderID)
	if appErr != nil {
		return nil, appErr
	}
	if !provider.Active {
		return nil, errors.NewAppError(errors.ErrProviderDeactivated, "provider is not accepting bookings", nil)
	}

	now := s.now()
	startAt := availabilityEntity.CombineDateClock(slot.Date, req.StartTime)
	if !startAt.After(now) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "appointment start must be in the future", nil)
	}

	if !entity.DurationAllowed(req.DurationMinutes) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "unsupported session duration", nil)
	}

	endTime, sameDay := entity.AddClock(req.StartTime, req.DurationMinutes)
	if !sameDay || req.StartTime < slot.StartTime || endTime > slot.EndTime {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "requested time is outside the slot window", nil)
	}

	rate, appErr := s.providers.BaseRate(ctx, slot.ProviderID)
	if appErr != nil {
		return nil, appErr
	}
	total := settlement.Round(settlement.TotalForBooking(rate, req.DurationMinutes))

	appt := &entity.Appointment{
		CustomerID:      actor.ID,
		ProviderID:      slot.ProviderID,
		SlotID:          slot.ID,
		PackageName:     req.PackageName,
		DurationMinutes: req.DurationMinutes,
		StartTime:       req.StartTime,
		EndTime:         endTime,
		Note:            req.Note,
		Status:          entity.StatusPending,
	}
	invoice := &billingEntity.Invoice{
		UserID:         actor.ID,
		Amount:         total,
		Status:         billingEntity.InvoiceStatusSuccess,
		TransactionRef: utils.GenerateTransactionRef(),
		PaymentMethod:  req.PaymentMethod,
	}

	if err := s.repo.Reserve(ctx, appt, invoice); err != nil {
		switch err {
		case repository.ErrSlotNotFound:
			return nil, errors.NewAppError(errors.ErrNotFound, "slot not found", nil)
		case repository.ErrOverlap:
			return nil, errors.NewAppError(errors.ErrSlotConflict, "requested time overlaps an existing appointment", nil)
		default:
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create appointment", err)
		}
	}

	date := slot.Date.UTC().Format(constants.DateLayout)
	s.notify(ctx, slot.ProviderID, "New appointment request",
		fmt.Sprintf("You have a new booking request on %s at %s.", date, appt.StartTime),
		"/appointments/"+appt.ID.String())
	s.notify(ctx, actor.ID, "Booking submitted",
		fmt.Sprintf("Your booking on %s at %s is awaiting the provider's confirmation.", date, appt.StartTime),
		"/appointments/"+appt.ID.String())

	withSlot := &entity.AppointmentWithSlot{Appointment: *appt, SlotDate: slot.Date}
	return &dto.CreateAppointmentResponse{
		Appointment: dto.ToAppointmentResponse(withSlot),
		TotalAmount: total,
	}, nil
}
