package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"rental/internal/domain"
)

// CacheStore handles entity caching in Redis. The full entity is cached so
// a cache hit serves the same document as a repository read.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	VehicleCacheTTL = 30 * time.Second // Vehicle status flips on every trip transition
	TripCacheTTL    = 60 * time.Second // Trips change less frequently
)

// Key prefixes
const (
	vehicleCachePrefix = "cache:vehicle:"
	tripCachePrefix    = "cache:trip:"
)

// GetVehicle retrieves a vehicle from cache. A miss returns nil, nil.
func (s *CacheStore) GetVehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	if ok, err := s.get(ctx, vehicleCachePrefix+vehicleID, &vehicle); !ok {
		return nil, err
	}
	return &vehicle, nil
}

// SetVehicle stores a vehicle in cache.
func (s *CacheStore) SetVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	return s.set(ctx, vehicleCachePrefix+vehicle.ID, vehicle, VehicleCacheTTL)
}

// InvalidateVehicle removes a vehicle from cache.
func (s *CacheStore) InvalidateVehicle(ctx context.Context, vehicleID string) error {
	return s.client.Del(ctx, vehicleCachePrefix+vehicleID).Err()
}

// GetTrip retrieves a trip from cache. A miss returns nil, nil.
func (s *CacheStore) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	var trip domain.Trip
	if ok, err := s.get(ctx, tripCachePrefix+tripID, &trip); !ok {
		return nil, err
	}
	return &trip, nil
}

// SetTrip stores a trip in cache.
func (s *CacheStore) SetTrip(ctx context.Context, trip *domain.Trip) error {
	return s.set(ctx, tripCachePrefix+trip.ID, trip, TripCacheTTL)
}

// InvalidateTrip removes a trip from cache.
func (s *CacheStore) InvalidateTrip(ctx context.Context, tripID string) error {
	return s.client.Del(ctx, tripCachePrefix+tripID).Err()
}

func (s *CacheStore) get(ctx context.Context, key string, out any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil // Cache miss
		}
		return false, err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *CacheStore) set(ctx context.Context, key string, entity any, ttl time.Duration) error {
	data, err := json.Marshal(entity)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}
