package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rental/internal/domain"
	"rental/internal/repository"
)

const vehicleColumns = `
	id, license_plate, owner_id, registered_at, verified, status, class,
	make, model, year, seats`

// VehicleRepository is a PostgreSQL implementation of repository.VehicleRepository.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

// NewVehicleRepositoryWithTx creates a vehicle repository using a transaction.
func NewVehicleRepositoryWithTx(tx *sql.Tx) *VehicleRepository {
	return &VehicleRepository{q: tx}
}

// Create persists a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.q.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.LicensePlate,
		vehicle.OwnerID,
		vehicle.RegisteredAt,
		vehicle.Verified,
		vehicle.Status,
		vehicle.Class,
		nullString(vehicle.Make),
		nullString(vehicle.Model),
		nullInt64(int64(vehicle.Year)),
		nullInt64(int64(vehicle.Seats)),
	)

	return err
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	vehicle, err := scanVehicle(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return vehicle, nil
}

// GetByLicensePlate retrieves a vehicle by its license plate.
func (r *VehicleRepository) GetByLicensePlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE license_plate = $1`

	vehicle, err := scanVehicle(r.q.QueryRowContext(ctx, query, plate))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return vehicle, nil
}

// GetByOwnerID retrieves all vehicles owned by a host.
func (r *VehicleRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE owner_id = $1 ORDER BY registered_at DESC`
	return r.queryVehicles(ctx, query, ownerID)
}

// GetVerifiedByStatus retrieves verified vehicles in the given status.
func (r *VehicleRepository) GetVerifiedByStatus(ctx context.Context, status domain.VehicleStatus) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE verified = TRUE AND status = $1 ORDER BY registered_at DESC`
	return r.queryVehicles(ctx, query, status)
}

// Update updates an existing vehicle.
func (r *VehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET license_plate = $1, verified = $2, status = $3, class = $4,
			make = $5, model = $6, year = $7, seats = $8
		WHERE id = $9
	`

	result, err := r.q.ExecContext(ctx, query,
		vehicle.LicensePlate,
		vehicle.Verified,
		vehicle.Status,
		vehicle.Class,
		nullString(vehicle.Make),
		nullString(vehicle.Model),
		nullInt64(int64(vehicle.Year)),
		nullInt64(int64(vehicle.Seats)),
		vehicle.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// UpdateStatus sets a vehicle's status unconditionally.
func (r *VehicleRepository) UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error {
	result, err := r.q.ExecContext(ctx, `UPDATE vehicles SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// CompareAndSetStatus sets the status only if the vehicle is currently in
// the expected status. The WHERE clause makes the transition a single
// conditional write, so concurrent callers cannot both succeed.
func (r *VehicleRepository) CompareAndSetStatus(ctx context.Context, id string, from, to domain.VehicleStatus) (bool, error) {
	result, err := r.q.ExecContext(ctx,
		`UPDATE vehicles SET status = $1 WHERE id = $2 AND status = $3`,
		to, id, from,
	)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *VehicleRepository) queryVehicles(ctx context.Context, query string, args ...any) ([]*domain.Vehicle, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, rows.Err()
}

func scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	var make, model sql.NullString
	var year, seats sql.NullInt64

	err := row.Scan(
		&vehicle.ID,
		&vehicle.LicensePlate,
		&vehicle.OwnerID,
		&vehicle.RegisteredAt,
		&vehicle.Verified,
		&vehicle.Status,
		&vehicle.Class,
		&make,
		&model,
		&year,
		&seats,
	)
	if err != nil {
		return nil, err
	}

	vehicle.Make = make.String
	vehicle.Model = model.String
	vehicle.Year = int(year.Int64)
	vehicle.Seats = int(seats.Int64)

	return &vehicle, nil
}

// Ensure VehicleRepository implements repository.VehicleRepository.
var _ repository.VehicleRepository = (*VehicleRepository)(nil)
