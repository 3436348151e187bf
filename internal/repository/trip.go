package repository

import (
	"context"

	"rental/internal/domain"
)

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// Update updates an existing trip.
	Update(ctx context.Context, trip *domain.Trip) error

	// GetByVehicleID retrieves all trips for a vehicle.
	GetByVehicleID(ctx context.Context, vehicleID string) ([]*domain.Trip, error)

	// GetBlockingByVehicleID retrieves the vehicle's trips whose status is
	// in the given set. Used by the availability gate with the blocking
	// statuses (CONFIRMED, IN_PROGRESS).
	GetBlockingByVehicleID(ctx context.Context, vehicleID string, statuses []domain.TripStatus) ([]*domain.Trip, error)

	// GetByRenterID retrieves all trips booked by a renter.
	GetByRenterID(ctx context.Context, renterID string) ([]*domain.Trip, error)

	// GetByOwnerID retrieves all trips on vehicles owned by an owner.
	GetByOwnerID(ctx context.Context, ownerID string) ([]*domain.Trip, error)

	// GetByStatus retrieves all trips in the given status.
	GetByStatus(ctx context.Context, status domain.TripStatus) ([]*domain.Trip, error)

	// GetWithInsuranceClaims retrieves all trips with a linked claim.
	GetWithInsuranceClaims(ctx context.Context) ([]*domain.Trip, error)

	// Count returns the total number of trips.
	Count(ctx context.Context) (int64, error)
}
