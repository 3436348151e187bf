package tests

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"rental/internal/domain"
	"rental/internal/service"
)

// ──────────────────────────────────────────────
// BOOKING / AVAILABILITY GATE
// ──────────────────────────────────────────────

// tripFixture wires a TripService over the in-memory mocks.
type tripFixture struct {
	tripRepo    *MockTripRepository
	vehicleRepo *MockVehicleRepository
	locks       *MockLockStore
	cache       *MockCacheStore
	txRunner    *MockTxRunner
	service     *service.TripService
}

func newTripFixture() *tripFixture {
	tripRepo := NewMockTripRepository()
	vehicleRepo := NewMockVehicleRepository()
	locks := NewMockLockStore()
	cache := NewMockCacheStore()
	txRunner := NewMockTxRunner(tripRepo, vehicleRepo)

	svc := service.NewTripService(
		txRunner,
		tripRepo,
		vehicleRepo,
		service.NewPricingService(service.DefaultRateTable()),
		service.NewAvailabilityGate(tripRepo),
		service.NewVehicleStatusSync(),
		locks,
		cache,
		service.NewNotificationService(),
	)

	return &tripFixture{
		tripRepo:    tripRepo,
		vehicleRepo: vehicleRepo,
		locks:       locks,
		cache:       cache,
		txRunner:    txRunner,
		service:     svc,
	}
}

func (f *tripFixture) addVehicle(id string, status domain.VehicleStatus) *domain.Vehicle {
	vehicle := &domain.Vehicle{
		ID:           id,
		LicensePlate: "SGP-" + id,
		OwnerID:      "owner-1",
		Verified:     true,
		Status:       status,
		Class:        domain.VehicleClassStandard,
	}
	f.vehicleRepo.AddVehicle(vehicle)
	return vehicle
}

func (f *tripFixture) addTrip(id, vehicleID string, status domain.TripStatus) *domain.Trip {
	trip := &domain.Trip{
		ID:           id,
		RenterID:     "renter-1",
		OwnerID:      "owner-1",
		VehicleID:    vehicleID,
		BookedAt:     time.Now(),
		PlannedStart: time.Now().Add(time.Hour),
		PlannedEnd:   time.Now().Add(3 * time.Hour),
		Status:       status,
	}
	f.tripRepo.AddTrip(trip)
	return trip
}

func createRequest(vehicleID string) service.CreateTripRequest {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	return service.CreateTripRequest{
		RenterID:     "renter-2",
		VehicleID:    vehicleID,
		PlannedStart: start,
		PlannedEnd:   start.Add(2 * time.Hour),
	}
}

func TestCreateTrip_Success(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	f.addVehicle("veh-1", domain.VehicleStatusFree)

	trip, err := f.service.CreateTrip(context.Background(), createRequest("veh-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if trip.Status != domain.TripStatusPending {
		t.Errorf("expected PENDING, got %s", trip.Status)
	}
	if trip.OwnerID != "owner-1" {
		t.Errorf("expected owner from vehicle, got %s", trip.OwnerID)
	}
	// 2h STANDARD booking with the default distance estimate.
	if !almostEqual(trip.TotalAmount, 51.15) {
		t.Errorf("expected total 51.15, got %v", trip.TotalAmount)
	}
	if !almostEqual(trip.SecurityDeposit, 50.0) {
		t.Errorf("expected deposit 50.0, got %v", trip.SecurityDeposit)
	}

	// Booking never touches vehicle status.
	if got := f.vehicleRepo.GetVehicle("veh-1").Status; got != domain.VehicleStatusFree {
		t.Errorf("expected vehicle to stay FREE, got %s", got)
	}

	// The booking lock was acquired and released.
	if f.locks.AcquireCallCount != 1 || f.locks.ReleaseCallCount != 1 {
		t.Errorf("expected one acquire and one release, got %d/%d", f.locks.AcquireCallCount, f.locks.ReleaseCallCount)
	}
}

func TestCreateTrip_ValidationErrors(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	f.addVehicle("veh-1", domain.VehicleStatusFree)

	cases := []struct {
		name    string
		mutate  func(*service.CreateTripRequest)
		wantErr error
	}{
		{"missing renter", func(r *service.CreateTripRequest) { r.RenterID = "" }, service.ErrInvalidRenterID},
		{"missing vehicle", func(r *service.CreateTripRequest) { r.VehicleID = "" }, service.ErrInvalidVehicleID},
		{"zero start", func(r *service.CreateTripRequest) { r.PlannedStart = time.Time{} }, service.ErrInvalidTimeWindow},
		{"zero end", func(r *service.CreateTripRequest) { r.PlannedEnd = time.Time{} }, service.ErrInvalidTimeWindow},
		{"end before start", func(r *service.CreateTripRequest) { r.PlannedEnd = r.PlannedStart.Add(-time.Hour) }, service.ErrInvalidTimeWindow},
		{"end equals start", func(r *service.CreateTripRequest) { r.PlannedEnd = r.PlannedStart }, service.ErrInvalidTimeWindow},
	}

	for _, tc := range cases {
		req := createRequest("veh-1")
		tc.mutate(&req)
		if _, err := f.service.CreateTrip(context.Background(), req); !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}

	if f.tripRepo.CountTrips() != 0 {
		t.Errorf("expected no trips persisted, got %d", f.tripRepo.CountTrips())
	}
}

func TestCreateTrip_VehicleNotFound(t *testing.T) {
	t.Parallel()

	f := newTripFixture()

	_, err := f.service.CreateTrip(context.Background(), createRequest("no-such-vehicle"))
	if err == nil {
		t.Fatal("expected error for unknown vehicle")
	}
}

func TestCreateTrip_BlockedByConfirmedTrip(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	f.addVehicle("veh-1", domain.VehicleStatusRented)
	f.addTrip("trip-1", "veh-1", domain.TripStatusConfirmed)

	_, err := f.service.CreateTrip(context.Background(), createRequest("veh-1"))
	if !errors.Is(err, service.ErrVehicleUnavailable) {
		t.Fatalf("expected ErrVehicleUnavailable, got %v", err)
	}

	// The lock is released even on rejection.
	if f.locks.ReleaseCallCount != 1 {
		t.Errorf("expected lock released, got %d releases", f.locks.ReleaseCallCount)
	}
}

func TestCreateTrip_BlockedByInProgressTrip(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	f.addVehicle("veh-1", domain.VehicleStatusRented)
	f.addTrip("trip-1", "veh-1", domain.TripStatusInProgress)

	_, err := f.service.CreateTrip(context.Background(), createRequest("veh-1"))
	if !errors.Is(err, service.ErrVehicleUnavailable) {
		t.Fatalf("expected ErrVehicleUnavailable, got %v", err)
	}
}

func TestCreateTrip_TerminalTripsDoNotBlock(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	f.addVehicle("veh-1", domain.VehicleStatusFree)
	f.addTrip("trip-1", "veh-1", domain.TripStatusCompleted)
	f.addTrip("trip-2", "veh-1", domain.TripStatusCancelled)

	if _, err := f.service.CreateTrip(context.Background(), createRequest("veh-1")); err != nil {
		t.Fatalf("terminal trips must not block: %v", err)
	}
}

func TestCreateTrip_PendingTripsDoNotBlock(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	f.addVehicle("veh-1", domain.VehicleStatusFree)
	f.addTrip("trip-1", "veh-1", domain.TripStatusPending)

	// Multiple PENDING requests may coexist; only confirmation is exclusive.
	if _, err := f.service.CreateTrip(context.Background(), createRequest("veh-1")); err != nil {
		t.Fatalf("pending trips must not block: %v", err)
	}
}

func TestCreateTrip_LockHeldByAnotherBooking(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	f.addVehicle("veh-1", domain.VehicleStatusFree)
	f.locks.Fails = true

	_, err := f.service.CreateTrip(context.Background(), createRequest("veh-1"))
	if !errors.Is(err, service.ErrVehicleLocked) {
		t.Fatalf("expected ErrVehicleLocked, got %v", err)
	}

	if f.tripRepo.CountTrips() != 0 {
		t.Error("no trip may be created while the lock is held elsewhere")
	}
}

func TestCreateTrip_NotesCarriedOntoTrip(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	f.addVehicle("veh-1", domain.VehicleStatusFree)

	req := createRequest("veh-1")
	req.Notes = "child seat please"

	trip, err := f.service.CreateTrip(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(trip.Notes, "child seat please") {
		t.Errorf("expected notes to carry the request, got %q", trip.Notes)
	}
}
