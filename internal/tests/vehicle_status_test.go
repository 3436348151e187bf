package tests

import (
	"context"
	"errors"
	"testing"

	"rental/internal/domain"
	"rental/internal/service"
)

// ──────────────────────────────────────────────
// VEHICLE STATUS SYNCHRONIZER
// ──────────────────────────────────────────────

func TestStatusSync_MarkRentedRequiresFree(t *testing.T) {
	t.Parallel()

	sync := service.NewVehicleStatusSync()

	for _, status := range []domain.VehicleStatus{
		domain.VehicleStatusRepairing,
		domain.VehicleStatusResting,
		domain.VehicleStatusRented,
	} {
		repo := NewMockVehicleRepository()
		repo.AddVehicle(&domain.Vehicle{ID: "veh-1", Status: status})

		err := sync.MarkRented(context.Background(), repo, "veh-1")
		if !errors.Is(err, service.ErrVehicleNotFree) {
			t.Errorf("status %s: expected ErrVehicleNotFree, got %v", status, err)
		}
		if got := repo.GetVehicle("veh-1").Status; got != status {
			t.Errorf("status %s: vehicle must be left alone, got %s", status, got)
		}
	}
}

func TestStatusSync_ReleaseOnlyFlipsRented(t *testing.T) {
	t.Parallel()

	sync := service.NewVehicleStatusSync()

	// RENTED flips to FREE.
	repo := NewMockVehicleRepository()
	repo.AddVehicle(&domain.Vehicle{ID: "veh-1", Status: domain.VehicleStatusRented})
	if err := sync.Release(context.Background(), repo, "veh-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := repo.GetVehicle("veh-1").Status; got != domain.VehicleStatusFree {
		t.Errorf("expected FREE, got %s", got)
	}

	// Host-owned statuses win over the release.
	for _, status := range []domain.VehicleStatus{
		domain.VehicleStatusRepairing,
		domain.VehicleStatusResting,
		domain.VehicleStatusFree,
	} {
		repo := NewMockVehicleRepository()
		repo.AddVehicle(&domain.Vehicle{ID: "veh-1", Status: status})

		if err := sync.Release(context.Background(), repo, "veh-1"); err != nil {
			t.Errorf("status %s: release must not error, got %v", status, err)
		}
		if got := repo.GetVehicle("veh-1").Status; got != status {
			t.Errorf("status %s: vehicle must be left alone, got %s", status, got)
		}
	}
}

func TestConfirmTrip_RepairingVehicleCannotBeClaimed(t *testing.T) {
	t.Parallel()

	f := newTripFixture()
	vehicle := f.addVehicle("veh-1", domain.VehicleStatusRepairing)
	f.addTrip("trip-1", "veh-1", domain.TripStatusPending)

	_, err := f.service.ConfirmTrip(context.Background(), "trip-1")
	if !errors.Is(err, service.ErrVehicleNotFree) {
		t.Fatalf("expected ErrVehicleNotFree, got %v", err)
	}

	if vehicle.Status != domain.VehicleStatusRepairing {
		t.Errorf("expected vehicle still REPAIRING, got %s", vehicle.Status)
	}
}

// ──────────────────────────────────────────────
// VEHICLE REGISTRY
// ──────────────────────────────────────────────

func TestRegisterVehicle_Defaults(t *testing.T) {
	t.Parallel()

	repo := NewMockVehicleRepository()
	svc := service.NewVehicleService(repo, nil)

	vehicle, err := svc.RegisterVehicle(context.Background(), service.RegisterVehicleRequest{
		OwnerID:      "owner-1",
		LicensePlate: "SGX1234A",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if vehicle.Verified {
		t.Error("new vehicles must start unverified")
	}
	if vehicle.Status != domain.VehicleStatusResting {
		t.Errorf("expected RESTING, got %s", vehicle.Status)
	}
	if vehicle.Class != domain.VehicleClassStandard {
		t.Errorf("expected STANDARD default class, got %s", vehicle.Class)
	}
}

func TestRegisterVehicle_DuplicatePlate(t *testing.T) {
	t.Parallel()

	repo := NewMockVehicleRepository()
	svc := service.NewVehicleService(repo, nil)

	req := service.RegisterVehicleRequest{OwnerID: "owner-1", LicensePlate: "SGX1234A"}
	if _, err := svc.RegisterVehicle(context.Background(), req); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, err := svc.RegisterVehicle(context.Background(), req)
	if !errors.Is(err, service.ErrDuplicateLicensePlate) {
		t.Fatalf("expected ErrDuplicateLicensePlate, got %v", err)
	}
}

func TestRegisterVehicle_UnknownClassRejected(t *testing.T) {
	t.Parallel()

	repo := NewMockVehicleRepository()
	svc := service.NewVehicleService(repo, nil)

	_, err := svc.RegisterVehicle(context.Background(), service.RegisterVehicleRequest{
		OwnerID:      "owner-1",
		LicensePlate: "SGX1234A",
		Class:        "HOVERCRAFT",
	})
	if err == nil {
		t.Fatal("expected error for unknown class at registration")
	}
}

func TestListAvailable_OnlyVerifiedFree(t *testing.T) {
	t.Parallel()

	repo := NewMockVehicleRepository()
	svc := service.NewVehicleService(repo, nil)

	repo.AddVehicle(&domain.Vehicle{ID: "v1", Verified: true, Status: domain.VehicleStatusFree})
	repo.AddVehicle(&domain.Vehicle{ID: "v2", Verified: false, Status: domain.VehicleStatusFree})
	repo.AddVehicle(&domain.Vehicle{ID: "v3", Verified: true, Status: domain.VehicleStatusRented})
	repo.AddVehicle(&domain.Vehicle{ID: "v4", Verified: true, Status: domain.VehicleStatusResting})

	available, err := svc.ListAvailable(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(available) != 1 || available[0].ID != "v1" {
		t.Errorf("expected only v1, got %v", available)
	}
}

func TestSetStatus_HostRules(t *testing.T) {
	t.Parallel()

	repo := NewMockVehicleRepository()
	svc := service.NewVehicleService(repo, nil)
	repo.AddVehicle(&domain.Vehicle{ID: "veh-1", OwnerID: "owner-1", Status: domain.VehicleStatusFree})

	// RENTED is not host-settable.
	if _, err := svc.SetStatus(context.Background(), "owner-1", "veh-1", "RENTED"); !errors.Is(err, service.ErrStatusNotSettable) {
		t.Errorf("expected ErrStatusNotSettable, got %v", err)
	}

	// Unknown statuses are rejected.
	if _, err := svc.SetStatus(context.Background(), "owner-1", "veh-1", "FLYING"); !errors.Is(err, service.ErrInvalidVehicleStatus) {
		t.Errorf("expected ErrInvalidVehicleStatus, got %v", err)
	}

	// Non-owners may not touch the vehicle.
	if _, err := svc.SetStatus(context.Background(), "owner-2", "veh-1", "RESTING"); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}

	// The owner can park the vehicle.
	vehicle, err := svc.SetStatus(context.Background(), "owner-1", "veh-1", "REPAIRING")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vehicle.Status != domain.VehicleStatusRepairing {
		t.Errorf("expected REPAIRING, got %s", vehicle.Status)
	}
}

func TestSetStatus_RentedVehicleIsLockedToHost(t *testing.T) {
	t.Parallel()

	repo := NewMockVehicleRepository()
	svc := service.NewVehicleService(repo, nil)
	repo.AddVehicle(&domain.Vehicle{ID: "veh-1", OwnerID: "owner-1", Status: domain.VehicleStatusRented})

	_, err := svc.SetStatus(context.Background(), "owner-1", "veh-1", "FREE")
	if !errors.Is(err, service.ErrVehicleRented) {
		t.Fatalf("expected ErrVehicleRented, got %v", err)
	}
}

func TestVerifyVehicle(t *testing.T) {
	t.Parallel()

	repo := NewMockVehicleRepository()
	svc := service.NewVehicleService(repo, nil)
	repo.AddVehicle(&domain.Vehicle{ID: "veh-1", OwnerID: "owner-1", Status: domain.VehicleStatusResting})

	vehicle, err := svc.VerifyVehicle(context.Background(), "veh-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !vehicle.Verified {
		t.Error("expected vehicle verified")
	}
}
