package ports

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/billing"
)

// Clock supplies the current time in the warehouse calendar. Barcodes and
// invoice numbers take their date from it.
type Clock interface {
	Now() time.Time
}

// PricingProvider returns the tariff in force. Implementations may cache it;
// Invalidate drops any cached copy after an update.
type PricingProvider interface {
	Get(ctx context.Context) (billing.Pricing, error)
	Invalidate()
}

// InvoiceArchive keeps a document copy of every issued invoice.
type InvoiceArchive interface {
	Archive(ctx context.Context, invoice *billing.Invoice) error
}
