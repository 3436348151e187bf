package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"rental/internal/domain"
	"rental/internal/redis"
	"rental/internal/repository"
)

// VehicleService handles the host-facing vehicle registry.
type VehicleService struct {
	vehicleRepo repository.VehicleRepository
	cacheStore  redis.CacheStoreInterface
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(vehicleRepo repository.VehicleRepository, cacheStore redis.CacheStoreInterface) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		cacheStore:  cacheStore,
	}
}

// RegisterVehicleRequest contains the parameters for listing a vehicle.
type RegisterVehicleRequest struct {
	OwnerID      string
	LicensePlate string
	Class        string
	Make         string
	Model        string
	Year         int
	Seats        int
}

// RegisterVehicle lists a new vehicle for the owner. New vehicles start
// unverified and RESTING; the owner frees them once they pass verification.
func (s *VehicleService) RegisterVehicle(ctx context.Context, req RegisterVehicleRequest) (*domain.Vehicle, error) {
	if req.OwnerID == "" {
		return nil, ErrInvalidOwnerID
	}

	if req.LicensePlate == "" {
		return nil, ErrInvalidLicensePlate
	}

	class := domain.VehicleClassStandard
	if req.Class != "" {
		parsed, err := domain.ParseVehicleClass(req.Class)
		if err != nil {
			return nil, err
		}
		class = parsed
	}

	existing, err := s.vehicleRepo.GetByLicensePlate(ctx, req.LicensePlate)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		return nil, ErrDuplicateLicensePlate
	}

	vehicle := &domain.Vehicle{
		ID:           uuid.New().String(),
		LicensePlate: req.LicensePlate,
		OwnerID:      req.OwnerID,
		RegisteredAt: time.Now(),
		Verified:     false,
		Status:       domain.VehicleStatusResting,
		Class:        class,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Seats:        req.Seats,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}

// GetVehicle retrieves a vehicle, serving from cache when possible.
func (s *VehicleService) GetVehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	if vehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	if s.cacheStore != nil {
		cached, err := s.cacheStore.GetVehicle(ctx, vehicleID)
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetVehicle(ctx, vehicle)
	}

	return vehicle, nil
}

// ListAvailable retrieves the verified vehicles in FREE status.
func (s *VehicleService) ListAvailable(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.vehicleRepo.GetVerifiedByStatus(ctx, domain.VehicleStatusFree)
}

// GetForOwner retrieves all vehicles listed by a host.
func (s *VehicleService) GetForOwner(ctx context.Context, ownerID string) ([]*domain.Vehicle, error) {
	if ownerID == "" {
		return nil, ErrInvalidOwnerID
	}
	return s.vehicleRepo.GetByOwnerID(ctx, ownerID)
}

// SetStatus lets a host move their vehicle between REPAIRING, RESTING and
// FREE. RENTED is owned by the trip engine: a host can neither set it nor
// take a vehicle out of it.
func (s *VehicleService) SetStatus(ctx context.Context, ownerID, vehicleID string, rawStatus string) (*domain.Vehicle, error) {
	if vehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	status, err := domain.ParseVehicleStatus(rawStatus)
	if err != nil {
		return nil, ErrInvalidVehicleStatus
	}

	if status == domain.VehicleStatusRented {
		return nil, ErrStatusNotSettable
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if vehicle.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	if vehicle.Status == domain.VehicleStatusRented {
		return nil, ErrVehicleRented
	}

	vehicle.Status = status
	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateVehicle(ctx, vehicleID)
	}

	return vehicle, nil
}

// VerifyVehicle marks a vehicle as verified so it can be offered to renters.
func (s *VehicleService) VerifyVehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	if vehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	vehicle.Verified = true
	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateVehicle(ctx, vehicleID)
	}

	return vehicle, nil
}
