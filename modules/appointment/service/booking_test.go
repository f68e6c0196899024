package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"legalease-api/core/constants"
	"legalease-api/core/errors"
	"legalease-api/modules/appointment/dto"
	"legalease-api/modules/appointment/entity"
	billingEntity "legalease-api/modules/billing/entity"
)

func validBookingRequest(slotID uuid.UUID) *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		SlotID:          slotID.String(),
		PackageName:     "Standard consultation",
		StartTime:       "10:00",
		DurationMinutes: 120,
		Note:            "Need advice on a tenancy dispute",
		PaymentMethod:   "credit_card",
	}
}

func TestReserveSuccess(t *testing.T) {
	now := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	h := newHarness(now)

	providerID := uuid.New()
	customerID := uuid.New()
	h.providers.active[providerID] = true
	h.providers.rate = 150

	slot := h.store.addSlot(providerID, time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC), "09:00", "17:00")

	resp, appErr := h.svc.Reserve(context.Background(), Actor{ID: customerID, Role: constants.RoleCustomer}, validBookingRequest(slot.ID))
	if appErr != nil {
		t.Fatalf("Reserve returned error: %v", appErr)
	}

	// 150/h for 2h is 300, plus the 10% service fee.
	if resp.TotalAmount != 330.00 {
		t.Errorf("TotalAmount = %v, want 330.00", resp.TotalAmount)
	}
	if resp.Appointment.Status != string(entity.StatusPending) {
		t.Errorf("status = %s, want pending", resp.Appointment.Status)
	}
	if resp.Appointment.EndTime != "12:00" {
		t.Errorf("end time = %s, want 12:00", resp.Appointment.EndTime)
	}

	apptID, err := uuid.Parse(resp.Appointment.ID)
	if err != nil {
		t.Fatalf("bad appointment ID: %v", err)
	}
	inv := h.store.invoices[apptID]
	if inv == nil {
		t.Fatal("no invoice recorded for the reservation")
	}
	if inv.Amount != 330.00 || inv.Status != billingEntity.InvoiceStatusSuccess {
		t.Errorf("invoice = %+v, want amount 330.00 status success", inv)
	}
	if inv.TransactionRef == "" {
		t.Error("invoice transaction ref is empty")
	}

	if len(h.notifier.sentTo(providerID)) != 1 {
		t.Error("provider did not receive a booking notification")
	}
	if len(h.notifier.sentTo(customerID)) != 1 {
		t.Error("customer did not receive a booking notification")
	}
}

func TestReserveSlotNotFound(t *testing.T) {
	h := newHarness(time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC))

	_, appErr := h.svc.Reserve(context.Background(), Actor{ID: uuid.New(), Role: constants.RoleCustomer}, validBookingRequest(uuid.New()))
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Errorf("want ErrNotFound, got %v", appErr)
	}
}

func TestReserveInactiveProvider(t *testing.T) {
	now := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	h := newHarness(now)

	providerID := uuid.New()
	h.providers.active[providerID] = false
	slot := h.store.addSlot(providerID, time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC), "09:00", "17:00")

	_, appErr := h.svc.Reserve(context.Background(), Actor{ID: uuid.New(), Role: constants.RoleCustomer}, validBookingRequest(slot.ID))
	if appErr == nil || appErr.Code != errors.ErrProviderDeactivated {
		t.Errorf("want ErrProviderDeactivated, got %v", appErr)
	}
}

func TestReservePastStartRejected(t *testing.T) {
	now := time.Date(2025, 7, 2, 11, 0, 0, 0, time.UTC)
	h := newHarness(now)

	providerID := uuid.New()
	h.providers.active[providerID] = true
	slot := h.store.addSlot(providerID, time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC), "09:00", "17:00")

	// 10:00 on the slot date is already behind the clock.
	_, appErr := h.svc.Reserve(context.Background(), Actor{ID: uuid.New(), Role: constants.RoleCustomer}, validBookingRequest(slot.ID))
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Errorf("want ErrInvalidInput, got %v", appErr)
	}
}

func TestReserveOutsideSlotWindow(t *testing.T) {
	now := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	h := newHarness(now)

	providerID := uuid.New()
	h.providers.active[providerID] = true
	slot := h.store.addSlot(providerID, time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC), "09:00", "11:00")

	req := validBookingRequest(slot.ID)
	req.StartTime = "10:00"
	req.DurationMinutes = 120 // would run to 12:00, past the slot's end

	_, appErr := h.svc.Reserve(context.Background(), Actor{ID: uuid.New(), Role: constants.RoleCustomer}, req)
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Errorf("want ErrInvalidInput, got %v", appErr)
	}
}

func TestReserveMidnightWrapRejected(t *testing.T) {
	now := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	h := newHarness(now)

	providerID := uuid.New()
	h.providers.active[providerID] = true
	slot := h.store.addSlot(providerID, time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC), "14:00", "23:59")

	// Both runs cross midnight: the wrapped end times ("00:30", "00:00")
	// would compare lexically below every same-day start and slip past
	// the bounds and overlap checks if accepted.
	for _, start := range []string{"23:30", "23:00"} {
		req := validBookingRequest(slot.ID)
		req.StartTime = start
		req.DurationMinutes = 60

		_, appErr := h.svc.Reserve(context.Background(), Actor{ID: uuid.New(), Role: constants.RoleCustomer}, req)
		if appErr == nil || appErr.Code != errors.ErrInvalidInput {
			t.Errorf("start %s: want ErrInvalidInput, got %v", start, appErr)
		}
	}
	if len(h.store.appointments) != 0 {
		t.Errorf("appointments written = %d, want 0", len(h.store.appointments))
	}
}

func TestReserveOverlapConflict(t *testing.T) {
	now := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	h := newHarness(now)

	providerID := uuid.New()
	h.providers.active[providerID] = true
	slot := h.store.addSlot(providerID, time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC), "09:00", "17:00")
	h.store.addAppointment(slot, uuid.New(), "09:00", 120, entity.StatusConfirmed)

	// 10:00-12:00 collides with the existing 09:00-11:00 booking.
	_, appErr := h.svc.Reserve(context.Background(), Actor{ID: uuid.New(), Role: constants.RoleCustomer}, validBookingRequest(slot.ID))
	if appErr == nil || appErr.Code != errors.ErrSlotConflict {
		t.Errorf("want ErrSlotConflict, got %v", appErr)
	}
}

func TestReserveBackToBackAllowed(t *testing.T) {
	now := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	h := newHarness(now)

	providerID := uuid.New()
	h.providers.active[providerID] = true
	slot := h.store.addSlot(providerID, time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC), "09:00", "17:00")
	h.store.addAppointment(slot, uuid.New(), "09:00", 60, entity.StatusConfirmed)

	// Existing booking ends 10:00; a 10:00 start touches but does not overlap.
	_, appErr := h.svc.Reserve(context.Background(), Actor{ID: uuid.New(), Role: constants.RoleCustomer}, validBookingRequest(slot.ID))
	if appErr != nil {
		t.Errorf("back-to-back booking rejected: %v", appErr)
	}
}

func TestReserveCancelledBookingDoesNotBlock(t *testing.T) {
	now := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	h := newHarness(now)

	providerID := uuid.New()
	h.providers.active[providerID] = true
	slot := h.store.addSlot(providerID, time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC), "09:00", "17:00")
	h.store.addAppointment(slot, uuid.New(), "10:00", 120, entity.StatusCancelled)

	_, appErr := h.svc.Reserve(context.Background(), Actor{ID: uuid.New(), Role: constants.RoleCustomer}, validBookingRequest(slot.ID))
	if appErr != nil {
		t.Errorf("cancelled booking should not block the window: %v", appErr)
	}
}
