package redis

import (
	"context"
	"time"

	"rental/internal/domain"
)

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireVehicleLock(ctx context.Context, vehicleID string, ttl time.Duration) (bool, error)
	ReleaseVehicleLock(ctx context.Context, vehicleID string) error
}

// TokenStoreInterface defines the interface for session token storage.
type TokenStoreInterface interface {
	Issue(ctx context.Context, userID string) (string, error)
	Lookup(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

// CacheStoreInterface defines the interface for entity caching.
type CacheStoreInterface interface {
	GetVehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error)
	SetVehicle(ctx context.Context, vehicle *domain.Vehicle) error
	InvalidateVehicle(ctx context.Context, vehicleID string) error
	GetTrip(ctx context.Context, tripID string) (*domain.Trip, error)
	SetTrip(ctx context.Context, trip *domain.Trip) error
	InvalidateTrip(ctx context.Context, tripID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ LockStoreInterface  = (*LockStore)(nil)
	_ TokenStoreInterface = (*TokenStore)(nil)
	_ CacheStoreInterface = (*CacheStore)(nil)
)
