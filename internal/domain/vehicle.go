package domain

import (
	"fmt"
	"strings"
	"time"
)

// VehicleStatus represents a vehicle's availability state.
type VehicleStatus string

const (
	VehicleStatusRepairing VehicleStatus = "REPAIRING"
	VehicleStatusResting   VehicleStatus = "RESTING"
	VehicleStatusFree      VehicleStatus = "FREE"
	VehicleStatusRented    VehicleStatus = "RENTED"
)

// ParseVehicleStatus validates a raw status string at the boundary.
func ParseVehicleStatus(s string) (VehicleStatus, error) {
	switch VehicleStatus(s) {
	case VehicleStatusRepairing, VehicleStatusResting, VehicleStatusFree, VehicleStatusRented:
		return VehicleStatus(s), nil
	}
	return "", fmt.Errorf("unknown vehicle status %q", s)
}

// VehicleClass is the pricing class of a vehicle.
type VehicleClass string

const (
	VehicleClassEconomy  VehicleClass = "ECONOMY"
	VehicleClassStandard VehicleClass = "STANDARD"
	VehicleClassPremium  VehicleClass = "PREMIUM"
)

// ParseVehicleClass validates a raw class string, case-insensitively.
func ParseVehicleClass(s string) (VehicleClass, error) {
	switch VehicleClass(strings.ToUpper(s)) {
	case VehicleClassEconomy, VehicleClassStandard, VehicleClassPremium:
		return VehicleClass(strings.ToUpper(s)), nil
	}
	return "", fmt.Errorf("unknown vehicle class %q", s)
}

// Vehicle represents a host's listed vehicle.
//
// Status is RENTED if and only if the vehicle has exactly one trip in a
// blocking state; the status synchronizer is the sole writer of that value
// from the trip side.
type Vehicle struct {
	ID           string
	LicensePlate string
	OwnerID      string
	RegisteredAt time.Time

	// Verified is false on registration; only verified vehicles are
	// offered to renters.
	Verified bool

	Status VehicleStatus
	Class  VehicleClass

	Make  string
	Model string
	Year  int
	Seats int
}
