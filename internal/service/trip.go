package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rental/internal/domain"
	"rental/internal/redis"
	"rental/internal/repository"
)

// vehicleLockTTL bounds how long a booking attempt may hold the vehicle
// lock. A crashed process releases the vehicle after this.
const vehicleLockTTL = 5 * time.Second

// TripService drives the trip lifecycle. Every transition that changes both
// a trip and its vehicle runs inside a single transaction through the
// TxRunner, so the vehicle status never drifts from the trip state.
type TripService struct {
	txRunner            repository.TxRunner
	tripRepo            repository.TripRepository
	vehicleRepo         repository.VehicleRepository
	pricingService      *PricingService
	gate                *AvailabilityGate
	statusSync          *VehicleStatusSync
	locks               redis.LockStoreInterface
	cacheStore          redis.CacheStoreInterface
	notificationService *NotificationService
}

// NewTripService creates a new TripService.
func NewTripService(
	txRunner repository.TxRunner,
	tripRepo repository.TripRepository,
	vehicleRepo repository.VehicleRepository,
	pricingService *PricingService,
	gate *AvailabilityGate,
	statusSync *VehicleStatusSync,
	locks redis.LockStoreInterface,
	cacheStore redis.CacheStoreInterface,
	notificationService *NotificationService,
) *TripService {
	return &TripService{
		txRunner:            txRunner,
		tripRepo:            tripRepo,
		vehicleRepo:         vehicleRepo,
		pricingService:      pricingService,
		gate:                gate,
		statusSync:          statusSync,
		locks:               locks,
		cacheStore:          cacheStore,
		notificationService: notificationService,
	}
}

// invalidateTrip drops the trip's cache entry after a committed change, and
// the vehicle's as well when its status moved with the trip. Cache errors
// are swallowed; the TTL bounds any staleness.
func (s *TripService) invalidateTrip(ctx context.Context, trip *domain.Trip, vehicleChanged bool) {
	if s.cacheStore == nil {
		return
	}
	_ = s.cacheStore.InvalidateTrip(ctx, trip.ID)
	if vehicleChanged {
		_ = s.cacheStore.InvalidateVehicle(ctx, trip.VehicleID)
	}
}

// CreateTripRequest contains the parameters for booking a vehicle.
type CreateTripRequest struct {
	RenterID     string
	VehicleID    string
	PlannedStart time.Time
	PlannedEnd   time.Time
	EstimatedKm  float64
	Notes        string
}

// CreateTrip books a vehicle for the renter. The new trip is PENDING and
// does not touch vehicle status; only confirmation or pickup does that. The
// quoted price is snapshotted onto the trip and never recomputed.
func (s *TripService) CreateTrip(ctx context.Context, req CreateTripRequest) (*domain.Trip, error) {
	if req.RenterID == "" {
		return nil, ErrInvalidRenterID
	}

	if req.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	if req.PlannedStart.IsZero() || req.PlannedEnd.IsZero() || !req.PlannedEnd.After(req.PlannedStart) {
		return nil, ErrInvalidTimeWindow
	}

	// The lock serializes concurrent booking attempts on one vehicle so the
	// availability check and the insert act as one step.
	acquired, err := s.locks.AcquireVehicleLock(ctx, req.VehicleID, vehicleLockTTL)
	if err != nil {
		return nil, err
	}

	if !acquired {
		return nil, ErrVehicleLocked
	}

	defer func() {
		_ = s.locks.ReleaseVehicleLock(ctx, req.VehicleID)
	}()

	if err := s.gate.CheckVehicleAvailable(ctx, req.VehicleID); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	hours := req.PlannedEnd.Sub(req.PlannedStart).Hours()
	quote, err := s.pricingService.Calculate(vehicle.Class, hours, req.EstimatedKm)
	if err != nil {
		return nil, err
	}

	trip := &domain.Trip{
		ID:              uuid.New().String(),
		RenterID:        req.RenterID,
		OwnerID:         vehicle.OwnerID,
		VehicleID:       vehicle.ID,
		BookedAt:        time.Now(),
		PlannedStart:    req.PlannedStart,
		PlannedEnd:      req.PlannedEnd,
		Status:          domain.TripStatusPending,
		PaymentStatus:   domain.PaymentStatusPending,
		TotalAmount:     quote.TotalAmount,
		SecurityDeposit: quote.SecurityDeposit,
	}
	trip.AppendNote(req.Notes)

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	// Notification failures do not fail the booking.
	_ = s.notificationService.NotifyBookingCreated(ctx, trip)

	return trip, nil
}

// ConfirmTrip moves a PENDING trip to CONFIRMED and the vehicle to RENTED in
// one transaction. Availability is rechecked inside the transaction: a
// booking that raced past the gate before this trip was confirmed cannot
// also confirm.
func (s *TripService) ConfirmTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	var trip *domain.Trip
	err := s.txRunner.InTx(ctx, func(st repository.Stores) error {
		var err error
		trip, err = st.Trips.GetByID(ctx, tripID)
		if err != nil {
			return err
		}

		if trip.Status != domain.TripStatusPending {
			return ErrTripNotConfirmable
		}

		if err := CheckVehicleAvailable(ctx, st.Trips, trip.VehicleID); err != nil {
			return err
		}

		trip.Status = domain.TripStatusConfirmed
		if err := st.Trips.Update(ctx, trip); err != nil {
			return err
		}

		return s.statusSync.MarkRented(ctx, st.Vehicles, trip.VehicleID)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTrip(ctx, trip, true)
	_ = s.notificationService.NotifyTripConfirmed(ctx, trip)

	return trip, nil
}

// StartTripRequest contains the parameters for recording a pickup.
type StartTripRequest struct {
	TripID        string
	StartOdometer int64
}

// StartTrip moves a PENDING or CONFIRMED trip to IN_PROGRESS and records the
// pickup time and odometer. A trip started straight from PENDING also claims
// the vehicle, since confirmation never did.
func (s *TripService) StartTrip(ctx context.Context, req StartTripRequest) (*domain.Trip, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}

	if req.StartOdometer <= 0 {
		return nil, ErrInvalidOdometer
	}

	var trip *domain.Trip
	err := s.txRunner.InTx(ctx, func(st repository.Stores) error {
		var err error
		trip, err = st.Trips.GetByID(ctx, req.TripID)
		if err != nil {
			return err
		}

		if trip.Status != domain.TripStatusPending && trip.Status != domain.TripStatusConfirmed {
			return ErrTripNotStartable
		}

		wasPending := trip.Status == domain.TripStatusPending
		if wasPending {
			if err := CheckVehicleAvailable(ctx, st.Trips, trip.VehicleID); err != nil {
				return err
			}
		}

		trip.Status = domain.TripStatusInProgress
		trip.ActualStart = time.Now()
		trip.StartOdometer = req.StartOdometer

		if err := st.Trips.Update(ctx, trip); err != nil {
			return err
		}

		if wasPending {
			return s.statusSync.MarkRented(ctx, st.Vehicles, trip.VehicleID)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTrip(ctx, trip, true)
	_ = s.notificationService.NotifyTripStarted(ctx, trip)

	return trip, nil
}

// CompleteTripRequest contains the parameters for recording a return.
type CompleteTripRequest struct {
	TripID      string
	EndOdometer int64
}

// CompleteTrip moves an IN_PROGRESS trip to COMPLETED, records the return
// time and odometer, and frees the vehicle in the same transaction.
func (s *TripService) CompleteTrip(ctx context.Context, req CompleteTripRequest) (*domain.Trip, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}

	if req.EndOdometer <= 0 {
		return nil, ErrInvalidOdometer
	}

	var trip *domain.Trip
	err := s.txRunner.InTx(ctx, func(st repository.Stores) error {
		var err error
		trip, err = st.Trips.GetByID(ctx, req.TripID)
		if err != nil {
			return err
		}

		if trip.Status != domain.TripStatusInProgress {
			return ErrTripNotInProgress
		}

		if req.EndOdometer < trip.StartOdometer {
			return ErrOdometerBelowStart
		}

		trip.Status = domain.TripStatusCompleted
		trip.ActualEnd = time.Now()
		trip.EndOdometer = req.EndOdometer

		if err := st.Trips.Update(ctx, trip); err != nil {
			return err
		}

		return s.statusSync.Release(ctx, st.Vehicles, trip.VehicleID)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTrip(ctx, trip, true)
	_ = s.notificationService.NotifyTripCompleted(ctx, trip)

	return trip, nil
}

// CancelTripRequest contains the parameters for cancelling a trip.
type CancelTripRequest struct {
	TripID      string
	CancelledBy string
	Reason      string
}

// CancelTrip moves a PENDING or CONFIRMED trip to CANCELLED and appends the
// reason to the trip notes. Cancelling a CONFIRMED trip also frees the
// vehicle; a PENDING trip never held it.
func (s *TripService) CancelTrip(ctx context.Context, req CancelTripRequest) (*domain.Trip, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}

	if req.Reason == "" {
		return nil, ErrEmptyCancelReason
	}

	var trip *domain.Trip
	wasBlocking := false
	err := s.txRunner.InTx(ctx, func(st repository.Stores) error {
		var err error
		trip, err = st.Trips.GetByID(ctx, req.TripID)
		if err != nil {
			return err
		}

		if !trip.CanBeCancelled() {
			return ErrTripNotCancellable
		}

		wasBlocking = trip.Status.IsBlocking()

		trip.Status = domain.TripStatusCancelled
		trip.AppendNote("Cancelled: " + req.Reason)

		if err := st.Trips.Update(ctx, trip); err != nil {
			return err
		}

		if wasBlocking {
			return s.statusSync.Release(ctx, st.Vehicles, trip.VehicleID)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTrip(ctx, trip, wasBlocking)
	_ = s.notificationService.NotifyTripCancelled(ctx, trip, req.CancelledBy, req.Reason)

	return trip, nil
}

// AddRatingRequest contains the parameters for rating a completed trip.
// A zero rating means that side is not being submitted; comments are only
// written alongside their side's rating.
type AddRatingRequest struct {
	TripID         string
	RenterRating   int
	OwnerRating    int
	RenterComments string
	OwnerComments  string
}

// AddRatingsAndReviews records ratings and comments on a COMPLETED trip.
// The renter's and owner's sides are independent; either may be submitted
// or resubmitted without touching the other.
func (s *TripService) AddRatingsAndReviews(ctx context.Context, req AddRatingRequest) (*domain.Trip, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}

	if req.RenterRating != 0 && (req.RenterRating < 1 || req.RenterRating > 5) {
		return nil, ErrInvalidRating
	}

	if req.OwnerRating != 0 && (req.OwnerRating < 1 || req.OwnerRating > 5) {
		return nil, ErrInvalidRating
	}

	trip, err := s.tripRepo.GetByID(ctx, req.TripID)
	if err != nil {
		return nil, err
	}

	if trip.Status != domain.TripStatusCompleted {
		return nil, ErrTripNotCompleted
	}

	if req.RenterRating != 0 {
		trip.RenterRating = req.RenterRating
		trip.RenterComments = req.RenterComments
	}

	if req.OwnerRating != 0 {
		trip.OwnerRating = req.OwnerRating
		trip.OwnerComments = req.OwnerComments
	}

	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	s.invalidateTrip(ctx, trip, false)

	if req.RenterRating != 0 {
		_ = s.notificationService.NotifyRatingSubmitted(ctx, trip, trip.OwnerID, req.RenterRating)
	}
	if req.OwnerRating != 0 {
		_ = s.notificationService.NotifyRatingSubmitted(ctx, trip, trip.RenterID, req.OwnerRating)
	}

	return trip, nil
}

// LinkInsuranceClaim attaches an insurance claim to a trip. Claims can be
// filed at any point in the lifecycle, including after completion.
func (s *TripService) LinkInsuranceClaim(ctx context.Context, tripID, claimID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	if claimID == "" {
		return nil, ErrInvalidClaimID
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	trip.LinkClaim(claimID)

	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	s.invalidateTrip(ctx, trip, false)
	_ = s.notificationService.NotifyClaimLinked(ctx, trip)

	return trip, nil
}

// GetTrip retrieves a trip by ID, serving from cache when possible.
func (s *TripService) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}

	if s.cacheStore != nil {
		cached, err := s.cacheStore.GetTrip(ctx, tripID)
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetTrip(ctx, trip)
	}

	return trip, nil
}

// GetTripsForUser retrieves the trips where the user is the renter followed
// by the trips on vehicles they own.
func (s *TripService) GetTripsForUser(ctx context.Context, userID string) ([]*domain.Trip, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	asRenter, err := s.tripRepo.GetByRenterID(ctx, userID)
	if err != nil {
		return nil, err
	}

	asOwner, err := s.tripRepo.GetByOwnerID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return append(asRenter, asOwner...), nil
}

// GetActiveTripForUser returns the user's IN_PROGRESS trip as a renter, or
// nil when there is none.
func (s *TripService) GetActiveTripForUser(ctx context.Context, userID string) (*domain.Trip, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	trips, err := s.tripRepo.GetByRenterID(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, trip := range trips {
		if trip.Status == domain.TripStatusInProgress {
			return trip, nil
		}
	}

	return nil, nil
}

// GetTripsByVehicle retrieves the full trip history of a vehicle.
func (s *TripService) GetTripsByVehicle(ctx context.Context, vehicleID string) ([]*domain.Trip, error) {
	if vehicleID == "" {
		return nil, ErrInvalidVehicleID
	}
	return s.tripRepo.GetByVehicleID(ctx, vehicleID)
}

// GetTripsWithClaims retrieves all trips with a linked insurance claim.
func (s *TripService) GetTripsWithClaims(ctx context.Context) ([]*domain.Trip, error) {
	return s.tripRepo.GetWithInsuranceClaims(ctx)
}
