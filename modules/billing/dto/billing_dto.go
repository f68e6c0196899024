package dto

import (
	"time"

	"legalease-api/modules/billing/entity"
)

// EarningsResponse is the provider's running ledger
type EarningsResponse struct {
	ProviderID            string    `json:"provider_id"`
	TotalCompletedMatches int       `json:"total_completed_matches"`
	TotalNetPaid          float64   `json:"total_net_paid"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func ToEarningsResponse(e *entity.ProviderEarnings) *EarningsResponse {
	return &EarningsResponse{
		ProviderID:            e.ProviderID.String(),
		TotalCompletedMatches: e.TotalCompletedMatches,
		TotalNetPaid:          e.TotalNetPaid,
		UpdatedAt:             e.UpdatedAt,
	}
}

// FeeBreakdown is the derived money split returned on detail views. Only
// the total is stored; the rest is recomputed from it.
type FeeBreakdown struct {
	Total           float64 `json:"total"`
	ConsultationFee float64 `json:"consultation_fee"`
	ServiceFee      float64 `json:"service_fee"`
	RefundAmount    float64 `json:"refund_amount"`
}
