package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"rental/internal/domain"
	"rental/internal/repository"
)

const tripColumns = `
	id, renter_id, owner_id, vehicle_id,
	booked_at, planned_start, planned_end, actual_start, actual_end,
	status, payment_status, total_amount, security_deposit,
	start_odometer, end_odometer, notes,
	renter_rating, owner_rating, renter_comments, owner_comments,
	has_insurance_claim, insurance_claim_id`

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (` + tripColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`

	_, err := r.q.ExecContext(ctx, query,
		trip.ID,
		trip.RenterID,
		trip.OwnerID,
		trip.VehicleID,
		trip.BookedAt,
		trip.PlannedStart,
		trip.PlannedEnd,
		nullTime(trip.ActualStart),
		nullTime(trip.ActualEnd),
		trip.Status,
		trip.PaymentStatus,
		trip.TotalAmount,
		trip.SecurityDeposit,
		nullInt64(trip.StartOdometer),
		nullInt64(trip.EndOdometer),
		trip.Notes,
		nullInt64(int64(trip.RenterRating)),
		nullInt64(int64(trip.OwnerRating)),
		nullString(trip.RenterComments),
		nullString(trip.OwnerComments),
		trip.HasInsuranceClaim,
		nullString(trip.InsuranceClaimID),
	)

	return err
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	trip, err := scanTrip(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return trip, nil
}

// Update updates an existing trip.
func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	query := `
		UPDATE trips
		SET actual_start = $1, actual_end = $2, status = $3, payment_status = $4,
			start_odometer = $5, end_odometer = $6, notes = $7,
			renter_rating = $8, owner_rating = $9, renter_comments = $10, owner_comments = $11,
			has_insurance_claim = $12, insurance_claim_id = $13
		WHERE id = $14
	`

	result, err := r.q.ExecContext(ctx, query,
		nullTime(trip.ActualStart),
		nullTime(trip.ActualEnd),
		trip.Status,
		trip.PaymentStatus,
		nullInt64(trip.StartOdometer),
		nullInt64(trip.EndOdometer),
		trip.Notes,
		nullInt64(int64(trip.RenterRating)),
		nullInt64(int64(trip.OwnerRating)),
		nullString(trip.RenterComments),
		nullString(trip.OwnerComments),
		trip.HasInsuranceClaim,
		nullString(trip.InsuranceClaimID),
		trip.ID,
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

// GetByVehicleID retrieves all trips for a vehicle.
func (r *TripRepository) GetByVehicleID(ctx context.Context, vehicleID string) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE vehicle_id = $1 ORDER BY booked_at DESC`
	return r.queryTrips(ctx, query, vehicleID)
}

// GetBlockingByVehicleID retrieves the vehicle's trips whose status is in
// the given set.
func (r *TripRepository) GetBlockingByVehicleID(ctx context.Context, vehicleID string, statuses []domain.TripStatus) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE vehicle_id = $1 AND status = ANY($2)`

	raw := make([]string, len(statuses))
	for i, s := range statuses {
		raw[i] = string(s)
	}

	return r.queryTrips(ctx, query, vehicleID, pq.Array(raw))
}

// GetByRenterID retrieves all trips booked by a renter.
func (r *TripRepository) GetByRenterID(ctx context.Context, renterID string) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE renter_id = $1 ORDER BY booked_at DESC`
	return r.queryTrips(ctx, query, renterID)
}

// GetByOwnerID retrieves all trips on vehicles owned by an owner.
func (r *TripRepository) GetByOwnerID(ctx context.Context, ownerID string) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE owner_id = $1 ORDER BY booked_at DESC`
	return r.queryTrips(ctx, query, ownerID)
}

// GetByStatus retrieves all trips in the given status.
func (r *TripRepository) GetByStatus(ctx context.Context, status domain.TripStatus) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE status = $1 ORDER BY booked_at DESC`
	return r.queryTrips(ctx, query, status)
}

// GetWithInsuranceClaims retrieves all trips with a linked claim.
func (r *TripRepository) GetWithInsuranceClaims(ctx context.Context) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE has_insurance_claim = TRUE ORDER BY booked_at DESC`
	return r.queryTrips(ctx, query)
}

// Count returns the total number of trips.
func (r *TripRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips`).Scan(&count)
	return count, err
}

func (r *TripRepository) queryTrips(ctx context.Context, query string, args ...any) ([]*domain.Trip, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*domain.Trip, error) {
	var trip domain.Trip
	var actualStart, actualEnd sql.NullTime
	var startOdometer, endOdometer, renterRating, ownerRating sql.NullInt64
	var renterComments, ownerComments, claimID sql.NullString

	err := row.Scan(
		&trip.ID,
		&trip.RenterID,
		&trip.OwnerID,
		&trip.VehicleID,
		&trip.BookedAt,
		&trip.PlannedStart,
		&trip.PlannedEnd,
		&actualStart,
		&actualEnd,
		&trip.Status,
		&trip.PaymentStatus,
		&trip.TotalAmount,
		&trip.SecurityDeposit,
		&startOdometer,
		&endOdometer,
		&trip.Notes,
		&renterRating,
		&ownerRating,
		&renterComments,
		&ownerComments,
		&trip.HasInsuranceClaim,
		&claimID,
	)
	if err != nil {
		return nil, err
	}

	if actualStart.Valid {
		trip.ActualStart = actualStart.Time
	}
	if actualEnd.Valid {
		trip.ActualEnd = actualEnd.Time
	}
	trip.StartOdometer = startOdometer.Int64
	trip.EndOdometer = endOdometer.Int64
	trip.RenterRating = int(renterRating.Int64)
	trip.OwnerRating = int(ownerRating.Int64)
	trip.RenterComments = renterComments.String
	trip.OwnerComments = ownerComments.String
	trip.InsuranceClaimID = claimID.String

	return &trip, nil
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
