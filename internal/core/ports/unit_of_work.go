package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for every command attempt.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	RackRepository() RackRepository
	SectionRepository() SectionRepository
	ShipmentRepository() ShipmentRepository
	InvoiceRepository() InvoiceRepository
	PricingRepository() PricingRepository
	SequenceRepository() SequenceRepository
}
