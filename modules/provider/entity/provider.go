package entity

import (
	"time"

	"github.com/google/uuid"

	coreEntity "legalease-api/core/entity"
)

// Provider is the service professional side of a booking. Profile
// management lives in another system; only the fields the booking core
// reads are mapped here.
type Provider struct {
	FullName string `db:"full_name" json:"full_name"`
	Email    string `db:"email" json:"email"`
	Active   bool   `db:"active" json:"active"`
	coreEntity.BaseEntity
}

// SpecialtyRate is one configured hourly rate for a provider. The first
// configured row (by creation time) is the pricing basis for bookings.
type SpecialtyRate struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ProviderID uuid.UUID `db:"provider_id" json:"provider_id"`
	Specialty  string    `db:"specialty" json:"specialty"`
	HourlyRate float64   `db:"hourly_rate" json:"hourly_rate"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
