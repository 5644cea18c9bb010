package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
// Shipments are never deleted.
type ShipmentRepository interface {
	// Add stores a new shipment. Fails with errs.ErrObjectAlreadyExists on a duplicate barcode.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists the release of a shipment.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	GetByBarcode(ctx context.Context, barcode shipment.Barcode) (*shipment.Shipment, error)

	// ListReleasedWithoutInvoice returns up to limit released shipments that
	// were never billed, oldest release first.
	ListReleasedWithoutInvoice(ctx context.Context, limit int) ([]*shipment.Shipment, error)
}
