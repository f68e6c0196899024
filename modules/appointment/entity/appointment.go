package entity

import (
	"time"

	"github.com/google/uuid"

	"legalease-api/core/constants"
	coreEntity "legalease-api/core/entity"
	availabilityEntity "legalease-api/modules/availability/entity"
)

// AppointmentStatus is the lifecycle state of a reservation
type AppointmentStatus string

const (
	StatusPending       AppointmentStatus = "pending"
	StatusConfirmed     AppointmentStatus = "confirmed"
	StatusCompleted     AppointmentStatus = "completed"
	StatusCancelled     AppointmentStatus = "cancelled"
	StatusRefundPending AppointmentStatus = "refund_pending"
)

// ActiveStatuses are the states that occupy slot time. Appointments in
// these states must never overlap on the same slot.
var ActiveStatuses = []AppointmentStatus{StatusPending, StatusConfirmed, StatusCompleted}

// Appointment is a customer's reservation of a sub-interval of a slot.
// EndTime is start plus duration, denormalized so overlap checks stay in SQL.
type Appointment struct {
	CustomerID      uuid.UUID         `db:"customer_id" json:"customer_id"`
	ProviderID      uuid.UUID         `db:"provider_id" json:"provider_id"`
	SlotID          uuid.UUID         `db:"slot_id" json:"slot_id"`
	PackageName     string            `db:"package_name" json:"package_name"`
	DurationMinutes int               `db:"duration_minutes" json:"duration_minutes"`
	StartTime       string            `db:"start_time" json:"start_time"`
	EndTime         string            `db:"end_time" json:"end_time"`
	Note            string            `db:"note" json:"note"`
	Status          AppointmentStatus `db:"status" json:"status"`
	CommissionFee   float64           `db:"commission_fee" json:"commission_fee"`
	coreEntity.BaseEntity
}

// AppointmentWithSlot carries the owning slot's date alongside the row so
// absolute times can be computed without a second query.
type AppointmentWithSlot struct {
	Appointment
	SlotDate time.Time `db:"slot_date" json:"slot_date"`
}

// StartAt is the absolute start of the session in UTC.
func (a *AppointmentWithSlot) StartAt() time.Time {
	return availabilityEntity.CombineDateClock(a.SlotDate, a.StartTime)
}

// EndAt is the absolute end of the session in UTC.
func (a *AppointmentWithSlot) EndAt() time.Time {
	return a.StartAt().Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// AddClock returns clock plus the given minutes as another "15:04" string.
// ok is false when the sum crosses midnight. Slots never span a day
// boundary, so a wrapped end time can never sit inside a slot window and
// must not reach the lexical overlap predicate.
func AddClock(clock string, minutes int) (string, bool) {
	t, err := time.Parse(constants.TimeLayout, clock)
	if err != nil {
		return clock, false
	}
	end := t.Add(time.Duration(minutes) * time.Minute)
	return end.Format(constants.TimeLayout), end.Day() == t.Day()
}

// DurationAllowed reports whether minutes is one of the bookable lengths.
func DurationAllowed(minutes int) bool {
	for _, d := range constants.AllowedDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

type PaginatedAppointmentEntity = coreEntity.Pagination[AppointmentWithSlot]
