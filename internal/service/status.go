package service

import (
	"context"

	"rental/internal/domain"
	"rental/internal/repository"
)

// VehicleStatusSync mirrors trip transitions onto vehicle status. It only
// ever flips FREE to RENTED when a trip becomes blocking, and RENTED back to
// FREE when the blocking trip ends. REPAIRING and RESTING belong to the host
// and are never touched from the trip side.
type VehicleStatusSync struct{}

// NewVehicleStatusSync creates a new VehicleStatusSync.
func NewVehicleStatusSync() *VehicleStatusSync {
	return &VehicleStatusSync{}
}

// MarkRented moves the vehicle FREE to RENTED. Returns ErrVehicleNotFree if
// the vehicle is in any other status, so a transition cannot steal a vehicle
// that is repairing, resting, or already rented.
func (s *VehicleStatusSync) MarkRented(ctx context.Context, vehicles repository.VehicleRepository, vehicleID string) error {
	ok, err := vehicles.CompareAndSetStatus(ctx, vehicleID, domain.VehicleStatusFree, domain.VehicleStatusRented)
	if err != nil {
		return err
	}
	if !ok {
		return ErrVehicleNotFree
	}
	return nil
}

// Release moves the vehicle RENTED back to FREE. A vehicle in any other
// status is left alone: the host may have moved it to REPAIRING while the
// trip was still open, and that decision wins.
func (s *VehicleStatusSync) Release(ctx context.Context, vehicles repository.VehicleRepository, vehicleID string) error {
	_, err := vehicles.CompareAndSetStatus(ctx, vehicleID, domain.VehicleStatusRented, domain.VehicleStatusFree)
	return err
}
