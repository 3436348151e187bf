package repository

import (
	"context"

	"rental/internal/domain"
)

// VehicleRepository defines the persistence operations for vehicles.
type VehicleRepository interface {
	// Create persists a new vehicle.
	Create(ctx context.Context, vehicle *domain.Vehicle) error

	// GetByID retrieves a vehicle by ID.
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)

	// GetByLicensePlate retrieves a vehicle by its license plate.
	GetByLicensePlate(ctx context.Context, plate string) (*domain.Vehicle, error)

	// GetByOwnerID retrieves all vehicles owned by a host.
	GetByOwnerID(ctx context.Context, ownerID string) ([]*domain.Vehicle, error)

	// GetVerifiedByStatus retrieves verified vehicles in the given status.
	GetVerifiedByStatus(ctx context.Context, status domain.VehicleStatus) ([]*domain.Vehicle, error)

	// Update updates an existing vehicle.
	Update(ctx context.Context, vehicle *domain.Vehicle) error

	// UpdateStatus sets a vehicle's status unconditionally.
	UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error

	// CompareAndSetStatus sets the status only if the vehicle is currently
	// in the expected status. Returns false when the precondition failed.
	// This is the single conditional write that closes the check-then-act
	// window on vehicle state.
	CompareAndSetStatus(ctx context.Context, id string, from, to domain.VehicleStatus) (bool, error)
}
