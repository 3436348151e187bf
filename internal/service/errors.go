package service

import "errors"

var (
	// ErrInvalidRenterID is returned when the renter ID is empty.
	ErrInvalidRenterID = errors.New("invalid renter id")

	// ErrInvalidOwnerID is returned when the owner ID is empty.
	ErrInvalidOwnerID = errors.New("invalid owner id")

	// ErrInvalidVehicleID is returned when the vehicle ID is empty.
	ErrInvalidVehicleID = errors.New("invalid vehicle id")

	// ErrInvalidTripID is returned when the trip ID is empty.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrInvalidUserID is returned when the user ID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidTimeWindow is returned when the planned window is missing or
	// ends before it starts.
	ErrInvalidTimeWindow = errors.New("invalid time window")

	// ErrInvalidDuration is returned when a rental duration is zero or negative.
	ErrInvalidDuration = errors.New("invalid rental duration")

	// ErrVehicleUnavailable is returned when the vehicle already has a
	// confirmed or in-progress trip.
	ErrVehicleUnavailable = errors.New("vehicle unavailable")

	// ErrVehicleLocked is returned when another booking attempt holds the
	// vehicle's booking lock.
	ErrVehicleLocked = errors.New("vehicle booking in progress")

	// ErrVehicleNotFree is returned when a vehicle is not in FREE status.
	ErrVehicleNotFree = errors.New("vehicle not free")

	// ErrVehicleNotVerified is returned when an unverified vehicle is booked.
	ErrVehicleNotVerified = errors.New("vehicle not verified")

	// ErrTripNotConfirmable is returned when confirming a trip that is not PENDING.
	ErrTripNotConfirmable = errors.New("trip cannot be confirmed in current state")

	// ErrTripNotStartable is returned when starting a trip that is not
	// PENDING or CONFIRMED.
	ErrTripNotStartable = errors.New("trip cannot be started in current state")

	// ErrTripNotInProgress is returned when completing a trip that is not IN_PROGRESS.
	ErrTripNotInProgress = errors.New("trip not in progress")

	// ErrTripNotCancellable is returned when cancelling a trip that already
	// started or reached a terminal state.
	ErrTripNotCancellable = errors.New("trip cannot be cancelled in current state")

	// ErrTripNotCompleted is returned when rating a trip that is not COMPLETED.
	ErrTripNotCompleted = errors.New("trip not completed")

	// ErrInvalidOdometer is returned when an odometer reading is not positive.
	ErrInvalidOdometer = errors.New("invalid odometer reading")

	// ErrOdometerBelowStart is returned when the end reading is lower than the start.
	ErrOdometerBelowStart = errors.New("end odometer below start odometer")

	// ErrInvalidRating is returned when a rating is outside 1 to 5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrEmptyCancelReason is returned when a cancellation has no reason.
	ErrEmptyCancelReason = errors.New("cancellation reason required")

	// ErrInvalidClaimID is returned when the insurance claim ID is empty.
	ErrInvalidClaimID = errors.New("invalid insurance claim id")

	// ErrNotTripParticipant is returned when the caller is neither the
	// renter nor the owner of the trip.
	ErrNotTripParticipant = errors.New("caller is not a trip participant")

	// ErrInvalidLicensePlate is returned when a license plate is empty.
	ErrInvalidLicensePlate = errors.New("invalid license plate")

	// ErrDuplicateLicensePlate is returned when a plate is already registered.
	ErrDuplicateLicensePlate = errors.New("license plate already registered")

	// ErrInvalidVehicleStatus is returned when a status string is unknown.
	ErrInvalidVehicleStatus = errors.New("invalid vehicle status")

	// ErrStatusNotSettable is returned when a host tries to set a vehicle
	// into a trip-managed status.
	ErrStatusNotSettable = errors.New("status can only be changed by the trip engine")

	// ErrVehicleRented is returned when a host edits a vehicle that is on a trip.
	ErrVehicleRented = errors.New("vehicle currently rented")

	// ErrInvalidName is returned when a user name is empty.
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidEmail is returned when an email address is empty or malformed.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrInvalidRole is returned when a role string is unknown.
	ErrInvalidRole = errors.New("invalid role")

	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidToken is returned when a bearer token is unknown or expired.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrForbidden is returned when the caller's role does not allow the operation.
	ErrForbidden = errors.New("operation not allowed for caller")
)
