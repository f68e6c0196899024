package settlement

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTotalFromBase(t *testing.T) {
	if got := TotalFromBase(300); !almostEqual(got, 330) {
		t.Errorf("TotalFromBase(300) = %v, want 330", got)
	}
	if got := TotalFromBase(0); !almostEqual(got, 0) {
		t.Errorf("TotalFromBase(0) = %v, want 0", got)
	}
}

func TestConsultationFeeRoundTrip(t *testing.T) {
	bases := []float64{100, 150, 200, 275.50, 333.33}
	for _, base := range bases {
		total := TotalFromBase(base)
		if got := ConsultationFeeFromTotal(total); !almostEqual(got, base) {
			t.Errorf("ConsultationFeeFromTotal(TotalFromBase(%v)) = %v, want %v", base, got, base)
		}
	}
}

func TestServiceFeePlusConsultationIsTotal(t *testing.T) {
	totals := []float64{330, 220, 110, 577.50}
	for _, total := range totals {
		sum := ConsultationFeeFromTotal(total) + ServiceFee(total)
		if !almostEqual(sum, total) {
			t.Errorf("fee parts of %v sum to %v", total, sum)
		}
	}
}

func TestCommissionSplit(t *testing.T) {
	// A 200 consultation fee splits 40 platform / 160 provider.
	fee := 200.0
	if got := Commission(fee); !almostEqual(got, 40) {
		t.Errorf("Commission(200) = %v, want 40", got)
	}
	if got := ProviderNet(fee); !almostEqual(got, 160) {
		t.Errorf("ProviderNet(200) = %v, want 160", got)
	}
	if !almostEqual(Commission(fee)+ProviderNet(fee), fee) {
		t.Error("commission and net must sum to the consultation fee")
	}
}

func TestCustomerCancelRefundForfeitsServiceFee(t *testing.T) {
	// A 330 charge refunds the 300 consultation fee only.
	if got := CustomerCancelRefund(330); got != 300.00 {
		t.Errorf("CustomerCancelRefund(330) = %v, want 300.00", got)
	}
	// Refund never exceeds the consultation fee portion.
	if got := CustomerCancelRefund(110); got != 100.00 {
		t.Errorf("CustomerCancelRefund(110) = %v, want 100.00", got)
	}
}

func TestFullRefund(t *testing.T) {
	if got := FullRefund(330); !almostEqual(got, 330) {
		t.Errorf("FullRefund(330) = %v, want 330", got)
	}
}

func TestTotalForBooking(t *testing.T) {
	cases := []struct {
		rate    float64
		minutes int
		want    float64
	}{
		{100, 60, 110},
		{100, 120, 220},
		{150, 60, 165},
		{150, 120, 330},
	}
	for _, c := range cases {
		if got := TotalForBooking(c.rate, c.minutes); !almostEqual(got, c.want) {
			t.Errorf("TotalForBooking(%v, %d) = %v, want %v", c.rate, c.minutes, got, c.want)
		}
	}
}

func TestRound(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{1.005, 1.0},  // 1.005*100 lands just under the half in binary
		{2.675, 2.68}, // 2.675*100 lands exactly on 267.5
		{100.123, 100.12},
		{100.125, 100.13},
		{-1.555, -1.56}, // half away from zero
	}
	for _, c := range cases {
		if got := Round(c.in); got != c.want {
			t.Errorf("Round(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
