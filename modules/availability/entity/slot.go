package entity

import (
	"time"

	"github.com/google/uuid"

	"legalease-api/core/constants"
	coreEntity "legalease-api/core/entity"
)

// Slot is a provider-declared bookable window on a given date. Times of
// day are stored as zero-padded "15:04" strings, so lexical comparison is
// chronological comparison.
type Slot struct {
	ProviderID  uuid.UUID `db:"provider_id" json:"provider_id"`
	Date        time.Time `db:"date" json:"date"`
	StartTime   string    `db:"start_time" json:"start_time"`
	EndTime     string    `db:"end_time" json:"end_time"`
	IsAvailable bool      `db:"is_available" json:"is_available"`
	coreEntity.BaseEntity
}

// SlotWithBooking annotates a slot with whether a pending or confirmed
// appointment currently occupies it.
type SlotWithBooking struct {
	Slot
	HasActiveBooking bool `db:"has_active_booking" json:"has_active_booking"`
}

// ClockValid reports whether s is a well-formed "15:04" time of day.
func ClockValid(s string) bool {
	_, err := time.Parse(constants.TimeLayout, s)
	return err == nil && len(s) == len(constants.TimeLayout)
}

// ClockRangesOverlap reports whether the half-open ranges [aStart,aEnd)
// and [bStart,bEnd) intersect. Inputs are "15:04" strings.
func ClockRangesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

// StartAt returns the absolute start of the slot in UTC.
func (s *Slot) StartAt() time.Time {
	return CombineDateClock(s.Date, s.StartTime)
}

// EndAt returns the absolute end of the slot in UTC.
func (s *Slot) EndAt() time.Time {
	return CombineDateClock(s.Date, s.EndTime)
}

// CombineDateClock merges a calendar date with a "15:04" time of day.
func CombineDateClock(date time.Time, clock string) time.Time {
	t, err := time.Parse(constants.TimeLayout, clock)
	if err != nil {
		return date.UTC()
	}
	d := date.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}
