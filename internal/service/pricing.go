package service

import (
	"rental/internal/domain"
)

// ClassRate holds the hourly and distance rates for one vehicle class.
type ClassRate struct {
	BaseRatePerHour float64
	PerKmRate       float64
	Description     string
}

// RateTable maps vehicle classes to their rates.
type RateTable map[domain.VehicleClass]ClassRate

// DefaultRateTable returns the standard platform rates.
func DefaultRateTable() RateTable {
	return RateTable{
		domain.VehicleClassEconomy: {
			BaseRatePerHour: 8.0,
			PerKmRate:       0.30,
			Description:     "Compact hatchbacks and entry sedans",
		},
		domain.VehicleClassStandard: {
			BaseRatePerHour: 12.0,
			PerKmRate:       0.45,
			Description:     "Mid-size sedans and small SUVs",
		},
		domain.VehicleClassPremium: {
			BaseRatePerHour: 25.0,
			PerKmRate:       0.80,
			Description:     "Luxury sedans and large SUVs",
		},
	}
}

// Pricing constants.
const (
	depositRate    = 0.20
	minimumDeposit = 50.0
	serviceFeeRate = 0.10

	// Estimated distance when the renter gives none: assumed average speed
	// times the rental hours, capped at the daily allowance.
	assumedKmPerHour = 25.0
	maxEstimatedKm   = 200.0

	// Currency is the settlement currency for all quotes.
	Currency = "SGD"
)

// PricingService computes deterministic rental quotes from a rate table.
type PricingService struct {
	rates RateTable
}

// NewPricingService creates a PricingService using the given rate table.
func NewPricingService(rates RateTable) *PricingService {
	return &PricingService{rates: rates}
}

// Calculate produces a quote for the given class, duration in hours, and
// estimated distance in km. A non-positive estimatedKm means the renter gave
// no estimate and the default is derived from the duration. Unknown classes
// fall back to STANDARD rates.
func (s *PricingService) Calculate(class domain.VehicleClass, hours, estimatedKm float64) (*domain.Quote, error) {
	if hours <= 0 {
		return nil, ErrInvalidDuration
	}

	rate, ok := s.rates[class]
	if !ok {
		class = domain.VehicleClassStandard
		rate = s.rates[class]
	}

	if estimatedKm <= 0 {
		estimatedKm = hours * assumedKmPerHour
		if estimatedKm > maxEstimatedKm {
			estimatedKm = maxEstimatedKm
		}
	}

	baseAmount := hours * rate.BaseRatePerHour
	distanceAmount := estimatedKm * rate.PerKmRate
	subtotal := baseAmount + distanceAmount

	deposit := subtotal * depositRate
	if deposit < minimumDeposit {
		deposit = minimumDeposit
	}

	serviceFee := subtotal * serviceFeeRate

	return &domain.Quote{
		VehicleClass:    class,
		BaseRatePerHour: rate.BaseRatePerHour,
		PerKmRate:       rate.PerKmRate,
		PlannedHours:    hours,
		EstimatedKm:     estimatedKm,
		BaseAmount:      baseAmount,
		DistanceAmount:  distanceAmount,
		Subtotal:        subtotal,
		SecurityDeposit: deposit,
		ServiceFee:      serviceFee,
		TotalAmount:     subtotal + serviceFee,
		Currency:        Currency,
	}, nil
}

// EstimatePrice quotes a rental with the default distance estimate.
func (s *PricingService) EstimatePrice(class domain.VehicleClass, hours float64) (*domain.Quote, error) {
	return s.Calculate(class, hours, 0)
}

// Rates returns a copy of the rate table for display.
func (s *PricingService) Rates() RateTable {
	out := make(RateTable, len(s.rates))
	for class, rate := range s.rates {
		out[class] = rate
	}
	return out
}
