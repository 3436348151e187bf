package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"rental/internal/repository"
)

// TxRunner runs callbacks inside a database transaction, handing them
// transaction-scoped repositories.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner creates a TxRunner backed by the given database.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// InTx begins a transaction, invokes fn with repositories bound to it, and
// commits if fn returns nil. Any error from fn rolls the transaction back
// and is returned unchanged so callers can match sentinel errors.
func (r *TxRunner) InTx(ctx context.Context, fn func(s repository.Stores) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	stores := repository.Stores{
		Trips:    NewTripRepositoryWithTx(tx),
		Vehicles: NewVehicleRepositoryWithTx(tx),
	}

	if err := fn(stores); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %w: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Ensure TxRunner implements repository.TxRunner.
var _ repository.TxRunner = (*TxRunner)(nil)
