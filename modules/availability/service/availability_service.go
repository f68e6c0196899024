package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"legalease-api/core/constants"
	"legalease-api/core/errors"
	"legalease-api/core/logger"
	"legalease-api/modules/availability/dto"
	"legalease-api/modules/availability/entity"
	"legalease-api/modules/availability/repository"
	appointmentEntity "legalease-api/modules/appointment/entity"
)

// AvailabilityService manages a provider's declared slots.
type AvailabilityService struct {
	repo repository.SlotRepositoryInterface
	now  func() time.Time
}

type AvailabilityServiceInterface interface {
	CreateSlots(ctx context.Context, providerID uuid.UUID, req *dto.CreateSlotsRequest) (*dto.CreateSlotsResponse, *errors.AppError)
	UpdateSlot(ctx context.Context, providerID uuid.UUID, slotID uuid.UUID, req *dto.UpdateSlotRequest) (*dto.SlotResponse, *errors.AppError)
	DeleteSlot(ctx context.Context, providerID uuid.UUID, slotID uuid.UUID) *errors.AppError
	ListSlots(ctx context.Context, providerID uuid.UUID, mode string) ([]dto.SlotResponse, *errors.AppError)
}

func NewAvailabilityService(repo repository.SlotRepositoryInterface) AvailabilityServiceInterface {
	return &AvailabilityService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// CreateSlots declares the same window on each requested date. Past dates
// are skipped, dates already covered by an overlapping slot are counted as
// duplicates; the rest are inserted available.
func (s *AvailabilityService) CreateSlots(ctx context.Context, providerID uuid.UUID, req *dto.CreateSlotsRequest) (*dto.CreateSlotsResponse, *errors.AppError) {
	if req.EndTime <= req.StartTime {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "End time must be after start time", nil)
	}

	now := s.now()
	today := now.Truncate(24 * time.Hour)
	nowClock := now.Format(constants.TimeLayout)

	result := &dto.CreateSlotsResponse{}
	for _, dateStr := range req.Dates {
		date, err := time.Parse(constants.DateLayout, dateStr)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid date: "+dateStr, err)
		}

		// A date earlier than today, or today with the window already
		// over, cannot be offered any more.
		if date.Before(today) || (date.Equal(today) && req.EndTime <= nowClock) {
			result.PastSkipped++
			continue
		}

		overlaps, err := s.repo.HasOverlap(ctx, providerID, date, req.StartTime, req.EndTime)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check slot overlap", err)
		}
		if overlaps {
			result.Duplicates++
			continue
		}

		slot := &entity.Slot{
			ProviderID:  providerID,
			Date:        date,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			IsAvailable: true,
		}
		if _, err := s.repo.Create(ctx, slot); err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create slot", err)
		}
		result.Created++
	}

	return result, nil
}

// UpdateSlot overwrites a slot's window. Blocked while any appointment in
// pending, confirmed or completed status references the slot.
func (s *AvailabilityService) UpdateSlot(ctx context.Context, providerID uuid.UUID, slotID uuid.UUID, req *dto.UpdateSlotRequest) (*dto.SlotResponse, *errors.AppError) {
	slot, err := s.repo.GetByID(ctx, slotID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get slot", err)
	}
	if slot == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Slot not found", nil)
	}
	if slot.ProviderID != providerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Slot belongs to another provider", nil)
	}

	if req.EndTime <= req.StartTime {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "End time must be after start time", nil)
	}

	booked, err := s.repo.CountAppointmentsInStatuses(ctx, slotID, []string{
		string(appointmentEntity.StatusPending),
		string(appointmentEntity.StatusConfirmed),
		string(appointmentEntity.StatusCompleted),
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check slot bookings", err)
	}
	if booked > 0 {
		return nil, errors.NewAppError(errors.ErrPreconditionFailed, "Slot has appointments and cannot be rescheduled", nil)
	}

	if entity.CombineDateClock(slot.Date, req.StartTime).Before(s.now()) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "New start time is already in the past", nil)
	}

	if err := s.repo.UpdateTimes(ctx, slotID, req.StartTime, req.EndTime); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update slot", err)
	}

	updated := dto.ToSlotResponse(&entity.SlotWithBooking{Slot: *slot})
	updated.StartTime = req.StartTime
	updated.EndTime = req.EndTime
	updated.IsAvailable = true
	return &updated, nil
}

// DeleteSlot removes a slot. Pending/confirmed appointments block it;
// completed ones do not.
func (s *AvailabilityService) DeleteSlot(ctx context.Context, providerID uuid.UUID, slotID uuid.UUID) *errors.AppError {
	slot, err := s.repo.GetByID(ctx, slotID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to get slot", err)
	}
	if slot == nil {
		return errors.NewAppError(errors.ErrNotFound, "Slot not found", nil)
	}
	if slot.ProviderID != providerID {
		return errors.NewAppError(errors.ErrForbidden, "Slot belongs to another provider", nil)
	}

	active, err := s.repo.CountAppointmentsInStatuses(ctx, slotID, []string{
		string(appointmentEntity.StatusPending),
		string(appointmentEntity.StatusConfirmed),
	})
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to check slot bookings", err)
	}
	if active > 0 {
		return errors.NewAppError(errors.ErrPreconditionFailed, "Slot has active appointments and cannot be deleted", nil)
	}

	if err := s.repo.Delete(ctx, slotID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to delete slot", err)
	}
	return nil
}

// ListSlots returns the provider's slots. Stale availability flags are
// healed first so no passed, unbooked slot is ever shown as open.
func (s *AvailabilityService) ListSlots(ctx context.Context, providerID uuid.UUID, mode string) ([]dto.SlotResponse, *errors.AppError) {
	now := s.now()
	today := now.Truncate(24 * time.Hour)
	nowClock := now.Format(constants.TimeLayout)

	if err := s.repo.ExpireStale(ctx, providerID, today, nowClock); err != nil {
		// List anyway; staleness is cosmetic here and healed on the next pass
		logger.Warn("AvailabilityService:ListSlots:ExpireStale", "error", err)
	}

	var (
		slots []entity.SlotWithBooking
		err   error
	)
	switch mode {
	case constants.SlotListHistory:
		slots, err = s.repo.ListHistory(ctx, providerID, today)
	default:
		slots, err = s.repo.ListUpcoming(ctx, providerID, today)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list slots", err)
	}

	result := make([]dto.SlotResponse, 0, len(slots))
	for i := range slots {
		result = append(result, dto.ToSlotResponse(&slots[i]))
	}
	return result, nil
}
