package service

import (
	"context"
	"fmt"

	"rental/internal/domain"
	"rental/internal/repository"
)

// AvailabilityGate decides whether a vehicle can accept a new booking. A
// vehicle is unavailable while it has any trip in a blocking status, no
// matter when that trip is planned.
type AvailabilityGate struct {
	tripRepo repository.TripRepository
}

// NewAvailabilityGate creates a new AvailabilityGate.
func NewAvailabilityGate(tripRepo repository.TripRepository) *AvailabilityGate {
	return &AvailabilityGate{tripRepo: tripRepo}
}

// CheckVehicleAvailable returns ErrVehicleUnavailable when the vehicle has a
// confirmed or in-progress trip.
func (g *AvailabilityGate) CheckVehicleAvailable(ctx context.Context, vehicleID string) error {
	return CheckVehicleAvailable(ctx, g.tripRepo, vehicleID)
}

// CheckVehicleAvailable runs the availability check against the given
// repository, so transitions can re-check inside their own transaction.
func CheckVehicleAvailable(ctx context.Context, tripRepo repository.TripRepository, vehicleID string) error {
	blocking, err := tripRepo.GetBlockingByVehicleID(ctx, vehicleID, domain.BlockingTripStatuses)
	if err != nil {
		return err
	}

	if len(blocking) > 0 {
		return fmt.Errorf("%w: vehicle %s has %d blocking trip(s)", ErrVehicleUnavailable, vehicleID, len(blocking))
	}

	return nil
}
