package memory

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/billing"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// InvoiceRepository implements ports.InvoiceRepository on a Store.
type InvoiceRepository struct {
	exec executor
}

// Add stores the invoice. A second invoice for the same shipment is
// errs.ErrAlreadyInvoiced; a reused number is errs.ErrObjectAlreadyExists.
func (r *InvoiceRepository) Add(ctx context.Context, aggregate *billing.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.exec(ctx, func(s *state) error {
		shipmentID := aggregate.ShipmentID().String()
		number := aggregate.Number().String()
		for _, existing := range s.invoices {
			if existing.ShipmentID().String() == shipmentID {
				return errs.NewAlreadyInvoicedError("shipment", shipmentID)
			}
		}
		if _, ok := s.invoiceNumbers[number]; ok {
			return errs.NewObjectAlreadyExistsError("invoice", number)
		}

		s.invoices[aggregate.ID().String()] = aggregate
		s.invoiceNumbers[number] = aggregate.ID().String()
		return nil
	})
}

func (r *InvoiceRepository) GetByNumber(ctx context.Context, number billing.InvoiceNumber) (*billing.Invoice, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}

	var found *billing.Invoice
	err := r.exec(ctx, func(s *state) error {
		id, ok := s.invoiceNumbers[number.String()]
		if !ok {
			return errs.NewObjectNotFoundError("invoice", number.String())
		}
		found = s.invoices[id]
		return nil
	})
	return found, err
}

func (r *InvoiceRepository) GetByShipment(ctx context.Context, shipmentID kernel.UUID) (*billing.Invoice, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var found *billing.Invoice
	err := r.exec(ctx, func(s *state) error {
		for _, inv := range s.invoices {
			if inv.ShipmentID().IsEqual(shipmentID) {
				found = inv
				return nil
			}
		}
		return errs.NewObjectNotFoundError("invoice", shipmentID.String())
	})
	return found, err
}

// PricingRepository implements ports.PricingRepository on a Store.
type PricingRepository struct {
	exec executor
}

func (r *PricingRepository) Get(ctx context.Context) (billing.Pricing, error) {
	var found billing.Pricing
	err := r.exec(ctx, func(s *state) error {
		if s.pricing == nil {
			return errs.NewObjectNotFoundError("pricing", 1)
		}
		found = *s.pricing
		return nil
	})
	return found, err
}

func (r *PricingRepository) Save(ctx context.Context, pricing billing.Pricing) error {
	if err := pricing.Validate(); err != nil {
		return err
	}

	return r.exec(ctx, func(s *state) error {
		saved := pricing
		s.pricing = &saved
		return nil
	})
}

// SequenceRepository implements ports.SequenceRepository on a Store.
type SequenceRepository struct {
	exec executor
}

func (r *SequenceRepository) Next(ctx context.Context, name string) (int, error) {
	var next int
	err := r.exec(ctx, func(s *state) error {
		s.sequences[name]++
		next = s.sequences[name]
		return nil
	})
	return next, err
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
