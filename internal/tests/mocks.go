package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"rental/internal/domain"
	"rental/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
	GetError    error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{
		trips: make(map[string]*domain.Trip),
	}
}

// AddTrip adds a trip to the mock repository.
func (m *MockTripRepository) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *trip
	m.trips[trip.ID] = &copy
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *trip
	return &copy, nil
}

func (m *MockTripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[trip.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *trip
	m.trips[trip.ID] = &copy
	return nil
}

func (m *MockTripRepository) GetByVehicleID(ctx context.Context, vehicleID string) ([]*domain.Trip, error) {
	return m.filter(func(t *domain.Trip) bool { return t.VehicleID == vehicleID })
}

func (m *MockTripRepository) GetBlockingByVehicleID(ctx context.Context, vehicleID string, statuses []domain.TripStatus) ([]*domain.Trip, error) {
	return m.filter(func(t *domain.Trip) bool {
		if t.VehicleID != vehicleID {
			return false
		}
		for _, s := range statuses {
			if t.Status == s {
				return true
			}
		}
		return false
	})
}

func (m *MockTripRepository) GetByRenterID(ctx context.Context, renterID string) ([]*domain.Trip, error) {
	return m.filter(func(t *domain.Trip) bool { return t.RenterID == renterID })
}

func (m *MockTripRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*domain.Trip, error) {
	return m.filter(func(t *domain.Trip) bool { return t.OwnerID == ownerID })
}

func (m *MockTripRepository) GetByStatus(ctx context.Context, status domain.TripStatus) ([]*domain.Trip, error) {
	return m.filter(func(t *domain.Trip) bool { return t.Status == status })
}

func (m *MockTripRepository) GetWithInsuranceClaims(ctx context.Context) ([]*domain.Trip, error) {
	return m.filter(func(t *domain.Trip) bool { return t.HasInsuranceClaim })
}

func (m *MockTripRepository) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.trips)), nil
}

func (m *MockTripRepository) filter(keep func(*domain.Trip) bool) ([]*domain.Trip, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Trip
	for _, t := range m.trips {
		if keep(t) {
			copy := *t
			result = append(result, &copy)
		}
	}
	return result, nil
}

// GetTrip returns a trip for test assertions.
func (m *MockTripRepository) GetTrip(id string) *domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trips[id]
}

// CountTrips returns the number of stored trips.
func (m *MockTripRepository) CountTrips() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips)
}

// ──────────────────────────────────────────────
// MOCK VEHICLE REPOSITORY
// ──────────────────────────────────────────────

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32
	CASCallCount    int32

	// Error injection
	CreateError error
	UpdateError error
	CASError    error
}

// NewMockVehicleRepository creates a new mock vehicle repository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{
		vehicles: make(map[string]*domain.Vehicle),
	}
}

// AddVehicle adds a vehicle to the mock repository.
func (m *MockVehicleRepository) AddVehicle(vehicle *domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *vehicle
	m.vehicles[vehicle.ID] = &copy
	return nil
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *vehicle
	return &copy, nil
}

func (m *MockVehicleRepository) GetByLicensePlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, v := range m.vehicles {
		if v.LicensePlate == plate {
			copy := *v
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockVehicleRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Vehicle
	for _, v := range m.vehicles {
		if v.OwnerID == ownerID {
			copy := *v
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockVehicleRepository) GetVerifiedByStatus(ctx context.Context, status domain.VehicleStatus) ([]*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Vehicle
	for _, v := range m.vehicles {
		if v.Verified && v.Status == status {
			copy := *v
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vehicles[vehicle.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *vehicle
	m.vehicles[vehicle.ID] = &copy
	return nil
}

func (m *MockVehicleRepository) UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return repository.ErrNotFound
	}
	vehicle.Status = status
	return nil
}

func (m *MockVehicleRepository) CompareAndSetStatus(ctx context.Context, id string, from, to domain.VehicleStatus) (bool, error) {
	atomic.AddInt32(&m.CASCallCount, 1)
	if m.CASError != nil {
		return false, m.CASError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return false, nil
	}
	if vehicle.Status != from {
		return false, nil
	}
	vehicle.Status = to
	return true, nil
}

// GetVehicle returns a vehicle for test assertions.
func (m *MockVehicleRepository) GetVehicle(id string) *domain.Vehicle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vehicles[id]
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateCallCount int32
	CreateError     error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *user
	m.users[user.ID] = &copy
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		result = append(result, &copy)
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK TX RUNNER
// ──────────────────────────────────────────────

// MockTxRunner hands the callback the same mock repositories used outside the
// transaction. Rollback is not simulated; tests assert on error returns.
type MockTxRunner struct {
	Trips    *MockTripRepository
	Vehicles *MockVehicleRepository

	InTxCallCount int32
	InTxError     error
}

// NewMockTxRunner creates a MockTxRunner over the given mocks.
func NewMockTxRunner(trips *MockTripRepository, vehicles *MockVehicleRepository) *MockTxRunner {
	return &MockTxRunner{Trips: trips, Vehicles: vehicles}
}

func (m *MockTxRunner) InTx(ctx context.Context, fn func(s repository.Stores) error) error {
	atomic.AddInt32(&m.InTxCallCount, 1)
	if m.InTxError != nil {
		return m.InTxError
	}
	return fn(repository.Stores{Trips: m.Trips, Vehicles: m.Vehicles})
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is an in-memory implementation of the vehicle lock store.
type MockLockStore struct {
	mu    sync.Mutex
	held  map[string]bool
	Fails bool // every acquire reports the lock as already held

	AcquireCallCount int32
	ReleaseCallCount int32
	AcquireError     error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{held: make(map[string]bool)}
}

func (m *MockLockStore) AcquireVehicleLock(ctx context.Context, vehicleID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fails || m.held[vehicleID] {
		return false, nil
	}
	m.held[vehicleID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseVehicleLock(ctx context.Context, vehicleID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, vehicleID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK CACHE STORE
// ──────────────────────────────────────────────

// MockCacheStore is an in-memory implementation of the entity cache. TTLs
// are not simulated; entries live until invalidated.
type MockCacheStore struct {
	mu       sync.Mutex
	vehicles map[string]*domain.Vehicle
	trips    map[string]*domain.Trip

	SetVehicleCallCount        int32
	SetTripCallCount           int32
	InvalidateVehicleCallCount int32
	InvalidateTripCallCount    int32
	GetError                   error
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		vehicles: make(map[string]*domain.Vehicle),
		trips:    make(map[string]*domain.Trip),
	}
}

func (m *MockCacheStore) GetVehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vehicles[vehicleID], nil
}

func (m *MockCacheStore) SetVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	atomic.AddInt32(&m.SetVehicleCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *vehicle
	m.vehicles[vehicle.ID] = &copied
	return nil
}

func (m *MockCacheStore) InvalidateVehicle(ctx context.Context, vehicleID string) error {
	atomic.AddInt32(&m.InvalidateVehicleCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vehicles, vehicleID)
	return nil
}

func (m *MockCacheStore) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.trips[tripID], nil
}

func (m *MockCacheStore) SetTrip(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.SetTripCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *trip
	m.trips[trip.ID] = &copied
	return nil
}

func (m *MockCacheStore) InvalidateTrip(ctx context.Context, tripID string) error {
	atomic.AddInt32(&m.InvalidateTripCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.trips, tripID)
	return nil
}

// CachedVehicle returns the cached entry, or nil when absent.
func (m *MockCacheStore) CachedVehicle(id string) *domain.Vehicle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vehicles[id]
}

// CachedTrip returns the cached entry, or nil when absent.
func (m *MockCacheStore) CachedTrip(id string) *domain.Trip {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.trips[id]
}

// ──────────────────────────────────────────────
// MOCK TOKEN STORE
// ──────────────────────────────────────────────

// MockTokenStore is an in-memory implementation of the session token store.
type MockTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string
	nextID int
}

// NewMockTokenStore creates a new mock token store.
func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{tokens: make(map[string]string)}
}

func (m *MockTokenStore) Issue(ctx context.Context, userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	token := "token-" + userID + "-" + string(rune('a'+m.nextID%26))
	m.tokens[token] = userID
	return token, nil
}

func (m *MockTokenStore) Lookup(ctx context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens[token], nil
}

func (m *MockTokenStore) Revoke(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
	return nil
}
