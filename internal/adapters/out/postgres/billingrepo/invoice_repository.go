package billingrepo

import (
	"context"

	"warehouse/internal/adapters/out/postgres/pgerr"
	"warehouse/internal/core/domain/model/billing"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInvoiceRepository implements ports.InvoiceRepository using GORM.
type GormInvoiceRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

func NewGormInvoiceRepository(db *gorm.DB, tracker aggregateTracker) *GormInvoiceRepository {
	return &GormInvoiceRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the invoice. The unique index on shipment_id turns a second
// invoice for the same shipment into errs.ErrAlreadyInvoiced, even when two
// terminals bill the shipment at the same moment.
func (r *GormInvoiceRepository) Add(ctx context.Context, aggregate *billing.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := invoiceFromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err, shipmentConstraint) {
			return errs.NewAlreadyInvoicedError("shipment", aggregate.ShipmentID().String())
		}
		return pgerr.Translate("add invoice", "invoice", dto.Number, err)
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

func (r *GormInvoiceRepository) GetByNumber(ctx context.Context, number billing.InvoiceNumber) (*billing.Invoice, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}

	var dto InvoiceDTO
	if err := r.db.WithContext(ctx).First(&dto, "number = ?", number.String()).Error; err != nil {
		return nil, pgerr.Translate("get invoice", "invoice", number.String(), err)
	}

	return invoiceToDomain(dto)
}

func (r *GormInvoiceRepository) GetByShipment(ctx context.Context, shipmentID kernel.UUID) (*billing.Invoice, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dto InvoiceDTO
	if err := r.db.WithContext(ctx).First(&dto, "shipment_id = ?", shipmentID.Bytes()).Error; err != nil {
		return nil, pgerr.Translate("get invoice", "invoice", shipmentID.String(), err)
	}

	return invoiceToDomain(dto)
}
