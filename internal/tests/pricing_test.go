package tests

import (
	"math"
	"testing"

	"rental/internal/domain"
	"rental/internal/service"
)

// ──────────────────────────────────────────────
// PRICING ENGINE
// ──────────────────────────────────────────────

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPricing_StandardTwoHourQuote(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(service.DefaultRateTable())

	quote, err := pricing.Calculate(domain.VehicleClassStandard, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 2h at 12.0/h, default distance 2*25=50km at 0.45/km.
	if !almostEqual(quote.EstimatedKm, 50.0) {
		t.Errorf("expected 50 km estimated, got %v", quote.EstimatedKm)
	}
	if !almostEqual(quote.BaseAmount, 24.0) {
		t.Errorf("expected base 24.0, got %v", quote.BaseAmount)
	}
	if !almostEqual(quote.DistanceAmount, 22.5) {
		t.Errorf("expected distance 22.5, got %v", quote.DistanceAmount)
	}
	if !almostEqual(quote.Subtotal, 46.5) {
		t.Errorf("expected subtotal 46.5, got %v", quote.Subtotal)
	}
	if !almostEqual(quote.SecurityDeposit, 50.0) {
		t.Errorf("expected deposit floor 50.0, got %v", quote.SecurityDeposit)
	}
	if !almostEqual(quote.ServiceFee, 4.65) {
		t.Errorf("expected fee 4.65, got %v", quote.ServiceFee)
	}
	if !almostEqual(quote.TotalAmount, 51.15) {
		t.Errorf("expected total 51.15, got %v", quote.TotalAmount)
	}
	if quote.Currency != "SGD" {
		t.Errorf("expected SGD, got %s", quote.Currency)
	}
}

func TestPricing_Deterministic(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(service.DefaultRateTable())

	first, err := pricing.Calculate(domain.VehicleClassPremium, 6.5, 120)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := pricing.Calculate(domain.VehicleClassPremium, 6.5, 120)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *first != *second {
		t.Errorf("identical inputs produced different quotes: %+v vs %+v", first, second)
	}
}

func TestPricing_UnknownClassFallsBackToStandard(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(service.DefaultRateTable())

	unknown, err := pricing.Calculate(domain.VehicleClass("HOVERCRAFT"), 3, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	standard, err := pricing.Calculate(domain.VehicleClassStandard, 3, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if unknown.VehicleClass != domain.VehicleClassStandard {
		t.Errorf("expected fallback to STANDARD, got %s", unknown.VehicleClass)
	}
	if !almostEqual(unknown.TotalAmount, standard.TotalAmount) {
		t.Errorf("fallback total %v differs from standard total %v", unknown.TotalAmount, standard.TotalAmount)
	}
}

func TestPricing_NonPositiveDuration(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(service.DefaultRateTable())

	for _, hours := range []float64{0, -1} {
		if _, err := pricing.Calculate(domain.VehicleClassEconomy, hours, 10); err != service.ErrInvalidDuration {
			t.Errorf("hours=%v: expected ErrInvalidDuration, got %v", hours, err)
		}
	}
}

func TestPricing_DefaultDistanceCapped(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(service.DefaultRateTable())

	// 10 hours would estimate 250km; the cap holds it at 200.
	quote, err := pricing.Calculate(domain.VehicleClassEconomy, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(quote.EstimatedKm, 200.0) {
		t.Errorf("expected capped estimate 200, got %v", quote.EstimatedKm)
	}
}

func TestPricing_ExplicitDistanceUsed(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(service.DefaultRateTable())

	quote, err := pricing.Calculate(domain.VehicleClassEconomy, 4, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The cap only applies to the derived estimate, not a renter's own figure.
	if !almostEqual(quote.EstimatedKm, 300.0) {
		t.Errorf("expected renter estimate 300 to stand, got %v", quote.EstimatedKm)
	}
	if !almostEqual(quote.DistanceAmount, 90.0) {
		t.Errorf("expected distance amount 90.0, got %v", quote.DistanceAmount)
	}
}

func TestPricing_DepositScalesAboveFloor(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(service.DefaultRateTable())

	// 24h premium: base 600, distance 200*0.80=160, subtotal 760.
	quote, err := pricing.Calculate(domain.VehicleClassPremium, 24, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(quote.SecurityDeposit, 152.0) {
		t.Errorf("expected deposit 152.0 (20%% of 760), got %v", quote.SecurityDeposit)
	}
}

func TestPricing_EstimatePriceMatchesCalculateWithDefaults(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(service.DefaultRateTable())

	estimate, err := pricing.EstimatePrice(domain.VehicleClassStandard, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	full, err := pricing.Calculate(domain.VehicleClassStandard, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if *estimate != *full {
		t.Errorf("estimate %+v differs from calculate with defaults %+v", estimate, full)
	}
}

func TestPricing_CustomRateTable(t *testing.T) {
	t.Parallel()

	rates := service.RateTable{
		domain.VehicleClassStandard: {BaseRatePerHour: 10.0, PerKmRate: 0.50},
	}
	pricing := service.NewPricingService(rates)

	quote, err := pricing.Calculate(domain.VehicleClassStandard, 2, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(quote.BaseAmount, 20.0) || !almostEqual(quote.DistanceAmount, 10.0) {
		t.Errorf("injected rates ignored: base=%v distance=%v", quote.BaseAmount, quote.DistanceAmount)
	}
}
