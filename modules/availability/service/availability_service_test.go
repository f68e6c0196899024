package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"legalease-api/core/errors"
	"legalease-api/modules/availability/dto"
	"legalease-api/modules/availability/entity"
)

// fakeSlotRepo is an in-memory SlotRepositoryInterface. Appointment counts
// per slot are seeded directly by the test.
type fakeSlotRepo struct {
	slots       map[uuid.UUID]*entity.Slot
	apptCounts  map[uuid.UUID]map[string]int
	expireCalls int
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{
		slots:      make(map[uuid.UUID]*entity.Slot),
		apptCounts: make(map[uuid.UUID]map[string]int),
	}
}

func (f *fakeSlotRepo) add(providerID uuid.UUID, date time.Time, start, end string) *entity.Slot {
	slot := &entity.Slot{
		ProviderID:  providerID,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
	}
	slot.ID = uuid.New()
	f.slots[slot.ID] = slot
	return slot
}

func (f *fakeSlotRepo) seedAppointments(slotID uuid.UUID, status string, n int) {
	if f.apptCounts[slotID] == nil {
		f.apptCounts[slotID] = make(map[string]int)
	}
	f.apptCounts[slotID][status] = n
}

func (f *fakeSlotRepo) Create(ctx context.Context, slot *entity.Slot) (*entity.Slot, error) {
	slot.ID = uuid.New()
	f.slots[slot.ID] = slot
	return slot, nil
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Slot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, nil
	}
	cp := *slot
	return &cp, nil
}

func (f *fakeSlotRepo) HasOverlap(ctx context.Context, providerID uuid.UUID, date time.Time, startTime, endTime string) (bool, error) {
	for _, slot := range f.slots {
		if slot.ProviderID != providerID || !slot.Date.Equal(date) {
			continue
		}
		if entity.ClockRangesOverlap(startTime, endTime, slot.StartTime, slot.EndTime) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSlotRepo) UpdateTimes(ctx context.Context, id uuid.UUID, startTime, endTime string) error {
	slot := f.slots[id]
	slot.StartTime = startTime
	slot.EndTime = endTime
	slot.IsAvailable = true
	return nil
}

func (f *fakeSlotRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.slots, id)
	return nil
}

func (f *fakeSlotRepo) CountAppointmentsInStatuses(ctx context.Context, slotID uuid.UUID, statuses []string) (int, error) {
	total := 0
	for _, status := range statuses {
		total += f.apptCounts[slotID][status]
	}
	return total, nil
}

func (f *fakeSlotRepo) ExpireStale(ctx context.Context, providerID uuid.UUID, today time.Time, nowClock string) error {
	f.expireCalls++
	return nil
}

func (f *fakeSlotRepo) ListUpcoming(ctx context.Context, providerID uuid.UUID, today time.Time) ([]entity.SlotWithBooking, error) {
	var out []entity.SlotWithBooking
	for _, slot := range f.slots {
		if slot.ProviderID == providerID && !slot.Date.Before(today) {
			out = append(out, entity.SlotWithBooking{Slot: *slot})
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) ListHistory(ctx context.Context, providerID uuid.UUID, today time.Time) ([]entity.SlotWithBooking, error) {
	var out []entity.SlotWithBooking
	for _, slot := range f.slots {
		if slot.ProviderID == providerID && slot.Date.Before(today) {
			out = append(out, entity.SlotWithBooking{Slot: *slot})
		}
	}
	return out, nil
}

func newServiceWithClock(repo *fakeSlotRepo, now time.Time) *AvailabilityService {
	return &AvailabilityService{
		repo: repo,
		now:  func() time.Time { return now },
	}
}

func TestCreateSlotsCountsOutcomes(t *testing.T) {
	now := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeSlotRepo()
	providerID := uuid.New()

	// An existing slot on the 12th collides with the requested window.
	repo.add(providerID, time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC), "09:00", "12:00")

	svc := newServiceWithClock(repo, now)
	resp, appErr := svc.CreateSlots(context.Background(), providerID, &dto.CreateSlotsRequest{
		Dates:     []string{"2025-07-08", "2025-07-11", "2025-07-12", "2025-07-13"},
		StartTime: "10:00",
		EndTime:   "12:00",
	})
	if appErr != nil {
		t.Fatalf("CreateSlots returned error: %v", appErr)
	}

	if resp.PastSkipped != 1 {
		t.Errorf("PastSkipped = %d, want 1", resp.PastSkipped)
	}
	if resp.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", resp.Duplicates)
	}
	if resp.Created != 2 {
		t.Errorf("Created = %d, want 2", resp.Created)
	}
}

func TestCreateSlotsTodayWindowOver(t *testing.T) {
	now := time.Date(2025, 7, 10, 15, 0, 0, 0, time.UTC)
	repo := newFakeSlotRepo()
	svc := newServiceWithClock(repo, now)

	// Window ends at 12:00 and it is already 15:00 today.
	resp, appErr := svc.CreateSlots(context.Background(), uuid.New(), &dto.CreateSlotsRequest{
		Dates:     []string{"2025-07-10"},
		StartTime: "10:00",
		EndTime:   "12:00",
	})
	if appErr != nil {
		t.Fatalf("CreateSlots returned error: %v", appErr)
	}
	if resp.PastSkipped != 1 || resp.Created != 0 {
		t.Errorf("result = %+v, want 1 past skipped", resp)
	}
}

func TestCreateSlotsInvertedWindowRejected(t *testing.T) {
	svc := newServiceWithClock(newFakeSlotRepo(), time.Now().UTC())

	_, appErr := svc.CreateSlots(context.Background(), uuid.New(), &dto.CreateSlotsRequest{
		Dates:     []string{"2030-01-01"},
		StartTime: "14:00",
		EndTime:   "13:00",
	})
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Errorf("want ErrInvalidInput, got %v", appErr)
	}
}

func TestUpdateSlotBlockedByAppointments(t *testing.T) {
	now := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeSlotRepo()
	providerID := uuid.New()
	slot := repo.add(providerID, time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), "09:00", "12:00")
	repo.seedAppointments(slot.ID, "completed", 1)

	svc := newServiceWithClock(repo, now)
	_, appErr := svc.UpdateSlot(context.Background(), providerID, slot.ID, &dto.UpdateSlotRequest{
		StartTime: "10:00",
		EndTime:   "13:00",
	})
	if appErr == nil || appErr.Code != errors.ErrPreconditionFailed {
		t.Errorf("want ErrPreconditionFailed, got %v", appErr)
	}
}

func TestUpdateSlotWrongProvider(t *testing.T) {
	now := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeSlotRepo()
	slot := repo.add(uuid.New(), time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), "09:00", "12:00")

	svc := newServiceWithClock(repo, now)
	_, appErr := svc.UpdateSlot(context.Background(), uuid.New(), slot.ID, &dto.UpdateSlotRequest{
		StartTime: "10:00",
		EndTime:   "13:00",
	})
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Errorf("want ErrForbidden, got %v", appErr)
	}
}

func TestDeleteSlotBlockedByActiveAppointments(t *testing.T) {
	now := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeSlotRepo()
	providerID := uuid.New()
	slot := repo.add(providerID, time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), "09:00", "12:00")
	repo.seedAppointments(slot.ID, "pending", 1)

	svc := newServiceWithClock(repo, now)
	if appErr := svc.DeleteSlot(context.Background(), providerID, slot.ID); appErr == nil || appErr.Code != errors.ErrPreconditionFailed {
		t.Errorf("want ErrPreconditionFailed, got %v", appErr)
	}
}

func TestDeleteSlotWithOnlyCompletedAppointments(t *testing.T) {
	now := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeSlotRepo()
	providerID := uuid.New()
	slot := repo.add(providerID, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), "09:00", "12:00")
	repo.seedAppointments(slot.ID, "completed", 2)

	svc := newServiceWithClock(repo, now)
	if appErr := svc.DeleteSlot(context.Background(), providerID, slot.ID); appErr != nil {
		t.Errorf("completed appointments must not block deletion: %v", appErr)
	}
	if _, ok := repo.slots[slot.ID]; ok {
		t.Error("slot still present after delete")
	}
}

func TestListSlotsHealsStaleFlagsFirst(t *testing.T) {
	now := time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC)
	repo := newFakeSlotRepo()
	providerID := uuid.New()
	repo.add(providerID, time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC), "09:00", "12:00")
	repo.add(providerID, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), "09:00", "12:00")

	svc := newServiceWithClock(repo, now)

	upcoming, appErr := svc.ListSlots(context.Background(), providerID, "")
	if appErr != nil {
		t.Fatalf("ListSlots returned error: %v", appErr)
	}
	if len(upcoming) != 1 {
		t.Errorf("upcoming = %d slots, want 1", len(upcoming))
	}

	history, appErr := svc.ListSlots(context.Background(), providerID, "history")
	if appErr != nil {
		t.Fatalf("ListSlots history returned error: %v", appErr)
	}
	if len(history) != 1 {
		t.Errorf("history = %d slots, want 1", len(history))
	}

	if repo.expireCalls != 2 {
		t.Errorf("ExpireStale calls = %d, want one per listing", repo.expireCalls)
	}
}
