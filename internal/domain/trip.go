package domain

import (
	"fmt"
	"time"
)

// TripStatus represents the current status of a trip.
type TripStatus string

const (
	TripStatusPending    TripStatus = "PENDING"
	TripStatusConfirmed  TripStatus = "CONFIRMED"
	TripStatusInProgress TripStatus = "IN_PROGRESS"
	TripStatusCompleted  TripStatus = "COMPLETED"
	TripStatusCancelled  TripStatus = "CANCELLED"
)

// ParseTripStatus validates a raw status string at the boundary.
func ParseTripStatus(s string) (TripStatus, error) {
	switch TripStatus(s) {
	case TripStatusPending, TripStatusConfirmed, TripStatusInProgress,
		TripStatusCompleted, TripStatusCancelled:
		return TripStatus(s), nil
	}
	return "", fmt.Errorf("unknown trip status %q", s)
}

// IsBlocking reports whether a trip in this status prevents the vehicle
// from accepting a new trip.
func (s TripStatus) IsBlocking() bool {
	return s == TripStatusConfirmed || s == TripStatusInProgress
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s TripStatus) IsTerminal() bool {
	return s == TripStatusCompleted || s == TripStatusCancelled
}

// BlockingTripStatuses are the statuses the availability gate queries for.
var BlockingTripStatuses = []TripStatus{TripStatusConfirmed, TripStatusInProgress}

// PaymentStatus tracks payment state on a trip. It is informational and
// independent of the trip status machine.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// Trip represents a rental engagement between a renter and a vehicle's owner.
//
// TotalAmount and SecurityDeposit are a price snapshot taken once at booking
// time from the pricing engine; they are never recomputed even if rates change.
type Trip struct {
	ID        string
	RenterID  string
	OwnerID   string
	VehicleID string

	BookedAt     time.Time
	PlannedStart time.Time
	PlannedEnd   time.Time
	ActualStart  time.Time // zero until the trip starts
	ActualEnd    time.Time // zero until the trip completes

	Status        TripStatus
	PaymentStatus PaymentStatus

	TotalAmount     float64
	SecurityDeposit float64

	StartOdometer int64 // zero until recorded at pickup
	EndOdometer   int64 // zero until recorded at return

	Notes string // append-only log of instructions, issues and cancellations

	RenterRating   int // 0 means not rated
	OwnerRating    int
	RenterComments string
	OwnerComments  string

	HasInsuranceClaim bool
	InsuranceClaimID  string
}

// PlannedDuration returns the planned rental window length, or zero when the
// window is not fully set.
func (t *Trip) PlannedDuration() time.Duration {
	if t.PlannedStart.IsZero() || t.PlannedEnd.IsZero() {
		return 0
	}
	return t.PlannedEnd.Sub(t.PlannedStart)
}

// ActualDuration returns the elapsed time between pickup and return, or zero
// when the trip has not completed.
func (t *Trip) ActualDuration() time.Duration {
	if t.ActualStart.IsZero() || t.ActualEnd.IsZero() {
		return 0
	}
	return t.ActualEnd.Sub(t.ActualStart)
}

// DistanceTraveled returns endOdometer - startOdometer once both readings
// are recorded, and zero otherwise.
func (t *Trip) DistanceTraveled() int64 {
	if t.StartOdometer <= 0 || t.EndOdometer <= 0 {
		return 0
	}
	return t.EndOdometer - t.StartOdometer
}

// CanBeCancelled reports whether the trip may still be cancelled.
func (t *Trip) CanBeCancelled() bool {
	return t.Status == TripStatusPending || t.Status == TripStatusConfirmed
}

// AppendNote adds a line to the trip's notes log.
func (t *Trip) AppendNote(note string) {
	if note == "" {
		return
	}
	if t.Notes != "" {
		t.Notes += "\n"
	}
	t.Notes += note
}

// LinkClaim attaches an insurance claim to the trip. Setting a claim ID
// always implies the claim flag becomes true.
func (t *Trip) LinkClaim(claimID string) {
	t.InsuranceClaimID = claimID
	if claimID != "" {
		t.HasInsuranceClaim = true
	}
}
