package dto

import (
	"time"

	"legalease-api/modules/appointment/entity"
	billingDto "legalease-api/modules/billing/dto"
)

// ===================== Request DTOs =====================

// CreateAppointmentRequest books a sub-interval of a slot
type CreateAppointmentRequest struct {
	SlotID          string `json:"slot_id" validate:"required,uuid"`
	PackageName     string `json:"package_name" validate:"required"`
	StartTime       string `json:"start_time" validate:"required,datetime=15:04"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,oneof=60 120"`
	Note            string `json:"note" validate:"required,min=10"`
	PaymentMethod   string `json:"payment_method" validate:"required"`
}

// DecisionRequest is the provider's answer to a pending request
type DecisionRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
}

// CancelRequest is a customer-initiated cancellation
type CancelRequest struct {
	Reason string `json:"reason" validate:"required,min=10"`
}

// ===================== Response DTOs =====================

type AppointmentResponse struct {
	ID              string                   `json:"id"`
	CustomerID      string                   `json:"customer_id"`
	ProviderID      string                   `json:"provider_id"`
	SlotID          string                   `json:"slot_id"`
	SlotDate        string                   `json:"slot_date"`
	PackageName     string                   `json:"package_name"`
	DurationMinutes int                      `json:"duration_minutes"`
	StartTime       string                   `json:"start_time"`
	EndTime         string                   `json:"end_time"`
	Note            string                   `json:"note"`
	Status          string                   `json:"status"`
	CommissionFee   float64                  `json:"commission_fee,omitempty"`
	Fees            *billingDto.FeeBreakdown `json:"fees,omitempty"`
	CanCancel       bool                     `json:"can_cancel"`
	CanComplete     bool                     `json:"can_complete"`
	CreatedAt       time.Time                `json:"created_at"`
}

// CreateAppointmentResponse echoes the reservation with the charged total
type CreateAppointmentResponse struct {
	Appointment AppointmentResponse `json:"appointment"`
	TotalAmount float64             `json:"total_amount"`
}

type PaginatedAppointmentResponse struct {
	Items      []AppointmentResponse `json:"items"`
	TotalItems int                   `json:"total_items"`
	PageNumber int                   `json:"page_number"`
	PageSize   int                   `json:"page_size"`
}

func ToAppointmentResponse(a *entity.AppointmentWithSlot) AppointmentResponse {
	return AppointmentResponse{
		ID:              a.ID.String(),
		CustomerID:      a.CustomerID.String(),
		ProviderID:      a.ProviderID.String(),
		SlotID:          a.SlotID.String(),
		SlotDate:        a.SlotDate.UTC().Format("2006-01-02"),
		PackageName:     a.PackageName,
		DurationMinutes: a.DurationMinutes,
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		Note:            a.Note,
		Status:          string(a.Status),
		CommissionFee:   a.CommissionFee,
		CreatedAt:       a.CreatedAt,
	}
}
