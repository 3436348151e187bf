package repository

import "context"

// Stores bundles the transaction-scoped repositories handed to an InTx
// callback. Every write made through them commits or rolls back together.
type Stores struct {
	Trips    TripRepository
	Vehicles VehicleRepository
}

// TxRunner executes a function inside a single storage transaction. Trip
// transitions that touch both the trip and the vehicle run through this so
// no transition is ever partially applied.
type TxRunner interface {
	InTx(ctx context.Context, fn func(s Stores) error) error
}
