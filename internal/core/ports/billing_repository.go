package ports

import (
	"context"

	"warehouse/internal/core/domain/model/billing"
	"warehouse/internal/core/domain/model/kernel"
)

// InvoiceRepository stores issued invoices. Invoices are immutable.
type InvoiceRepository interface {
	// Add stores the invoice. Fails with errs.ErrAlreadyInvoiced when the
	// shipment already has one.
	Add(ctx context.Context, aggregate *billing.Invoice) error

	GetByNumber(ctx context.Context, number billing.InvoiceNumber) (*billing.Invoice, error)

	GetByShipment(ctx context.Context, shipmentID kernel.UUID) (*billing.Invoice, error)
}

// PricingRepository stores the single tariff row.
type PricingRepository interface {
	// Get returns errs.ErrObjectNotFound until a tariff has been saved.
	Get(ctx context.Context) (billing.Pricing, error)

	// Save replaces the tariff.
	Save(ctx context.Context, pricing billing.Pricing) error
}

// SequenceRepository hands out per-name counters shared by every terminal.
type SequenceRepository interface {
	// Next atomically increments the named counter and returns the new value.
	// The first call for a name returns 1.
	Next(ctx context.Context, name string) (int, error)
}
