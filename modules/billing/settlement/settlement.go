// Package settlement holds the money arithmetic for the booking platform.
// Everything here is pure; rounding happens only at the persistence or
// display boundary, never between steps.
package settlement

import "math"

const (
	// ServiceFeeRate is the platform markup charged on top of the
	// provider's base price.
	ServiceFeeRate = 0.10

	// CommissionRate is the platform's cut of the consultation fee taken
	// when an appointment completes.
	CommissionRate = 0.20
)

// Round rounds a monetary value to the smallest currency unit (cents).
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}

// TotalFromBase returns the amount charged to the customer for a given
// base (consultation) price: base plus the 10% service fee.
func TotalFromBase(base float64) float64 {
	return base * (1 + ServiceFeeRate)
}

// ConsultationFeeFromTotal recovers the provider's base price portion of
// a charged total.
func ConsultationFeeFromTotal(total float64) float64 {
	return total / (1 + ServiceFeeRate)
}

// ServiceFee is the platform markup portion of a charged total.
func ServiceFee(total float64) float64 {
	return total - ConsultationFeeFromTotal(total)
}

// Commission is the platform's cut of a consultation fee on completion.
func Commission(consultationFee float64) float64 {
	return consultationFee * CommissionRate
}

// ProviderNet is the provider's payout on completion.
func ProviderNet(consultationFee float64) float64 {
	return consultationFee * (1 - CommissionRate)
}

// CustomerCancelRefund is the refund for a customer-initiated cancellation:
// the full consultation fee comes back, the service fee is forfeited. The
// result is rounded because it is persisted directly on the invoice.
func CustomerCancelRefund(total float64) float64 {
	return Round(total / (1 + ServiceFeeRate))
}

// FullRefund is the refund for provider-initiated rejection or expiry of an
// unactioned booking: the entire charged total.
func FullRefund(total float64) float64 {
	return total
}

// TotalForBooking prices a booking of durationMinutes at the given hourly
// base rate, service fee included.
func TotalForBooking(hourlyRate float64, durationMinutes int) float64 {
	return TotalFromBase(hourlyRate * float64(durationMinutes) / 60)
}
