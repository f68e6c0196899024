package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"legalease-api/core/errors"
	"legalease-api/core/params"
	"legalease-api/modules/appointment/entity"
	"legalease-api/modules/appointment/repository"
	availabilityEntity "legalease-api/modules/availability/entity"
	billingEntity "legalease-api/modules/billing/entity"
	providerEntity "legalease-api/modules/provider/entity"
)

// fakeStore backs the repository fakes with shared in-memory state so a
// test can observe the combined effect of a service call.
type fakeStore struct {
	slots        map[uuid.UUID]*availabilityEntity.Slot
	appointments map[uuid.UUID]*entity.AppointmentWithSlot
	invoices     map[uuid.UUID]*billingEntity.Invoice // keyed by appointment ID
	completedNet map[uuid.UUID]float64

	reserveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		slots:        make(map[uuid.UUID]*availabilityEntity.Slot),
		appointments: make(map[uuid.UUID]*entity.AppointmentWithSlot),
		invoices:     make(map[uuid.UUID]*billingEntity.Invoice),
		completedNet: make(map[uuid.UUID]float64),
	}
}

func (f *fakeStore) addSlot(providerID uuid.UUID, date time.Time, start, end string) *availabilityEntity.Slot {
	slot := &availabilityEntity.Slot{
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

func (f *fakeStore) addAppointment(slot *availabilityEntity.Slot, customerID uuid.UUID, start string, minutes int, status entity.AppointmentStatus) *entity.AppointmentWithSlot {
	end, _ := entity.AddClock(start, minutes)
	appt := &entity.AppointmentWithSlot{
		Appointment: entity.Appointment{
			CustomerID:      customerID,
			ProviderID:      slot.ProviderID,
			SlotID:          slot.ID,
			PackageName:     "Standard consultation",
			DurationMinutes: minutes,
			StartTime:       start,
			EndTime:         end,
			Note:            "Initial consultation request",
			Status:          status,
		},
		SlotDate: slot.Date,
	}
	appt.ID = uuid.New()
	f.appointments[appt.ID] = appt
	return appt
}

func (f *fakeStore) addInvoice(apptID, userID uuid.UUID, amount float64) *billingEntity.Invoice {
	inv := &billingEntity.Invoice{
		ID:             uuid.New(),
		UserID:         userID,
		AppointmentID:  &apptID,
		Amount:         amount,
		Status:         billingEntity.InvoiceStatusSuccess,
		TransactionRef: "TXN-20250701-test",
	}
	f.invoices[apptID] = inv
	return inv
}

func inStatuses(status entity.AppointmentStatus, set []entity.AppointmentStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

// ---- AppointmentRepositoryInterface ----

type fakeApptRepo struct{ store *fakeStore }

func (f *fakeApptRepo) Reserve(ctx context.Context, appt *entity.Appointment, invoice *billingEntity.Invoice) error {
	if f.store.reserveErr != nil {
		return f.store.reserveErr
	}
	slot, ok := f.store.slots[appt.SlotID]
	if !ok {
		return repository.ErrSlotNotFound
	}
	for _, existing := range f.store.appointments {
		if existing.SlotID != appt.SlotID {
			continue
		}
		if existing.Status != entity.StatusPending && existing.Status != entity.StatusConfirmed {
			continue
		}
		if availabilityEntity.ClockRangesOverlap(appt.StartTime, appt.EndTime, existing.StartTime, existing.EndTime) {
			return repository.ErrOverlap
		}
	}

	appt.ID = uuid.New()
	appt.CreatedAt = time.Now()
	stored := &entity.AppointmentWithSlot{Appointment: *appt, SlotDate: slot.Date}
	f.store.appointments[appt.ID] = stored

	invoice.ID = uuid.New()
	invoice.AppointmentID = &appt.ID
	f.store.invoices[appt.ID] = invoice
	slot.IsAvailable = false
	return nil
}

func (f *fakeApptRepo) GetWithSlot(ctx context.Context, id uuid.UUID) (*entity.AppointmentWithSlot, error) {
	appt, ok := f.store.appointments[id]
	if !ok {
		return nil, nil
	}
	cp := *appt
	return &cp, nil
}

func (f *fakeApptRepo) ListByUser(ctx context.Context, role string, userID uuid.UUID, p params.QueryParams) (*entity.PaginatedAppointmentEntity, error) {
	var items []entity.AppointmentWithSlot
	for _, appt := range f.store.appointments {
		if (role == "provider" && appt.ProviderID == userID) ||
			(role != "provider" && appt.CustomerID == userID) {
			items = append(items, *appt)
		}
	}
	return &entity.PaginatedAppointmentEntity{
		Items:      items,
		TotalItems: len(items),
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}

func (f *fakeApptRepo) Approve(ctx context.Context, id uuid.UUID) error {
	appt, ok := f.store.appointments[id]
	if !ok {
		return repository.ErrNotFound
	}
	if appt.Status != entity.StatusPending {
		return repository.ErrStatusConflict
	}
	appt.Status = entity.StatusConfirmed
	return nil
}

func (f *fakeApptRepo) MarkRefundPending(ctx context.Context, id uuid.UUID, refundAmount float64, noteSuffix string, from []entity.AppointmentStatus) error {
	appt, ok := f.store.appointments[id]
	if !ok {
		return repository.ErrNotFound
	}
	if !inStatuses(appt.Status, from) {
		return repository.ErrStatusConflict
	}
	inv, ok := f.store.invoices[id]
	if !ok || inv.Status != billingEntity.InvoiceStatusSuccess {
		return repository.ErrStatusConflict
	}
	appt.Status = entity.StatusRefundPending
	appt.Note += noteSuffix
	inv.Status = billingEntity.InvoiceStatusRefundPending
	inv.RefundAmount = refundAmount
	return nil
}

func (f *fakeApptRepo) CancelUnpaid(ctx context.Context, id uuid.UUID, noteSuffix string, from []entity.AppointmentStatus) error {
	appt, ok := f.store.appointments[id]
	if !ok {
		return repository.ErrNotFound
	}
	if !inStatuses(appt.Status, from) {
		return repository.ErrStatusConflict
	}
	appt.Status = entity.StatusCancelled
	appt.Note += noteSuffix
	delete(f.store.invoices, id)
	return nil
}

func (f *fakeApptRepo) Complete(ctx context.Context, id uuid.UUID, commissionFee, providerNet float64) error {
	appt, ok := f.store.appointments[id]
	if !ok {
		return repository.ErrNotFound
	}
	if appt.Status != entity.StatusConfirmed {
		return repository.ErrStatusConflict
	}
	appt.Status = entity.StatusCompleted
	appt.CommissionFee = commissionFee
	f.store.completedNet[appt.ProviderID] += providerNet
	return nil
}

func (f *fakeApptRepo) ListExpiredPending(ctx context.Context, providerID *uuid.UUID, today time.Time, nowClock string) ([]entity.AppointmentWithSlot, error) {
	var expired []entity.AppointmentWithSlot
	for _, appt := range f.store.appointments {
		if appt.Status != entity.StatusPending {
			continue
		}
		if providerID != nil && appt.ProviderID != *providerID {
			continue
		}
		if appt.SlotDate.Before(today) || (appt.SlotDate.Equal(today) && appt.StartTime < nowClock) {
			expired = append(expired, *appt)
		}
	}
	return expired, nil
}

func (f *fakeApptRepo) DeleteExpiredUnpaid(ctx context.Context, id uuid.UUID) error {
	appt, ok := f.store.appointments[id]
	if !ok {
		return repository.ErrNotFound
	}
	if appt.Status != entity.StatusPending {
		return repository.ErrStatusConflict
	}
	if inv, ok := f.store.invoices[id]; ok && inv.Status == billingEntity.InvoiceStatusSuccess {
		return repository.ErrStatusConflict
	}
	delete(f.store.invoices, id)
	delete(f.store.appointments, id)
	return nil
}

// ---- SlotRepositoryInterface (only GetByID is exercised here) ----

type fakeSlotRepo struct{ store *fakeStore }

func (f *fakeSlotRepo) Create(ctx context.Context, slot *availabilityEntity.Slot) (*availabilityEntity.Slot, error) {
	return slot, nil
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, id uuid.UUID) (*availabilityEntity.Slot, error) {
	slot, ok := f.store.slots[id]
	if !ok {
		return nil, nil
	}
	cp := *slot
	return &cp, nil
}

func (f *fakeSlotRepo) HasOverlap(ctx context.Context, providerID uuid.UUID, date time.Time, startTime, endTime string) (bool, error) {
	return false, nil
}

func (f *fakeSlotRepo) UpdateTimes(ctx context.Context, id uuid.UUID, startTime, endTime string) error {
	return nil
}

func (f *fakeSlotRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeSlotRepo) CountAppointmentsInStatuses(ctx context.Context, slotID uuid.UUID, statuses []string) (int, error) {
	return 0, nil
}

func (f *fakeSlotRepo) ExpireStale(ctx context.Context, providerID uuid.UUID, today time.Time, nowClock string) error {
	return nil
}

func (f *fakeSlotRepo) ListUpcoming(ctx context.Context, providerID uuid.UUID, today time.Time) ([]availabilityEntity.SlotWithBooking, error) {
	return nil, nil
}

func (f *fakeSlotRepo) ListHistory(ctx context.Context, providerID uuid.UUID, today time.Time) ([]availabilityEntity.SlotWithBooking, error) {
	return nil, nil
}

// ---- InvoiceRepositoryInterface ----

type fakeInvoiceRepo struct{ store *fakeStore }

func (f *fakeInvoiceRepo) GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*billingEntity.Invoice, error) {
	inv, ok := f.store.invoices[appointmentID]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvoiceRepo) GetByUserID(ctx context.Context, userID uuid.UUID, params params.QueryParams) (*billingEntity.PaginatedInvoiceEntity, error) {
	return &billingEntity.PaginatedInvoiceEntity{}, nil
}

// ---- ProviderServiceInterface ----

type fakeProviders struct {
	active map[uuid.UUID]bool
	rate   float64
}

func (f *fakeProviders) GetByID(ctx context.Context, id uuid.UUID) (*providerEntity.Provider, *errors.AppError) {
	active, ok := f.active[id]
	if !ok {
		return nil, errors.NewAppError(errors.ErrNotFound, "provider not found", nil)
	}
	p := &providerEntity.Provider{FullName: "Test Provider", Active: active}
	p.ID = id
	return p, nil
}

func (f *fakeProviders) BaseRate(ctx context.Context, providerID uuid.UUID) (float64, *errors.AppError) {
	return f.rate, nil
}

// ---- Notifier ----

type recordedNotification struct {
	UserID  uuid.UUID
	Title   string
	Message string
	Link    string
}

type fakeNotifier struct {
	sent []recordedNotification
}

func (f *fakeNotifier) Notify(ctx context.Context, userID uuid.UUID, title, message, link string) {
	f.sent = append(f.sent, recordedNotification{UserID: userID, Title: title, Message: message, Link: link})
}

func (f *fakeNotifier) sentTo(userID uuid.UUID) []recordedNotification {
	var out []recordedNotification
	for _, n := range f.sent {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// testHarness wires a service around the fakes with a frozen clock.
type testHarness struct {
	store     *fakeStore
	providers *fakeProviders
	notifier  *fakeNotifier
	svc       *AppointmentService
	now       time.Time
}

func newHarness(now time.Time) *testHarness {
	store := newFakeStore()
	providers := &fakeProviders{active: make(map[uuid.UUID]bool), rate: 150}
	notifier := &fakeNotifier{}
	svc := &AppointmentService{
		repo:      &fakeApptRepo{store: store},
		slots:     &fakeSlotRepo{store: store},
		invoices:  &fakeInvoiceRepo{store: store},
		providers: providers,
		notifier:  notifier,
		now:       func() time.Time { return now },
	}
	return &testHarness{store: store, providers: providers, notifier: notifier, svc: svc, now: now}
}
