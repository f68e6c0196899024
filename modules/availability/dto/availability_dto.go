package dto

import (
	"time"

	"legalease-api/modules/availability/entity"
)

// ===================== Request DTOs =====================

// CreateSlotsRequest declares the same window on one or more dates
type CreateSlotsRequest struct {
	Dates     []string `json:"dates" validate:"required,min=1,dive,datetime=2006-01-02"`
	StartTime string   `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string   `json:"end_time" validate:"required,datetime=15:04"`
}

// UpdateSlotRequest overwrites a slot's window
type UpdateSlotRequest struct {
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

// ===================== Response DTOs =====================

// CreateSlotsResponse reports what happened to each requested date
type CreateSlotsResponse struct {
	Created     int `json:"created"`
	Duplicates  int `json:"duplicates"`
	PastSkipped int `json:"past_skipped"`
}

type SlotResponse struct {
	ID               string    `json:"id"`
	ProviderID       string    `json:"provider_id"`
	Date             string    `json:"date"`
	StartTime        string    `json:"start_time"`
	EndTime          string    `json:"end_time"`
	IsAvailable      bool      `json:"is_available"`
	HasActiveBooking bool      `json:"has_active_booking"`
	CreatedAt        time.Time `json:"created_at"`
}

func ToSlotResponse(s *entity.SlotWithBooking) SlotResponse {
	return SlotResponse{
		ID:               s.ID.String(),
		ProviderID:       s.ProviderID.String(),
		Date:             s.Date.UTC().Format("2006-01-02"),
		StartTime:        s.StartTime,
		EndTime:          s.EndTime,
		IsAvailable:      s.IsAvailable,
		HasActiveBooking: s.HasActiveBooking,
		CreatedAt:        s.CreatedAt,
	}
}
