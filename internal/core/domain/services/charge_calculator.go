package services

import (
	"time"

	"warehouse/internal/core/domain/model/billing"
	"warehouse/internal/core/domain/model/shipment"
)

// ChargeCalculator prices the storage of one shipment.
//
// Storage ends at the release time for released shipments and at now for
// shipments that are still stored, so a quote and the final invoice use the
// same arithmetic.
type ChargeCalculator struct{}

// NewChargeCalculator creates a ChargeCalculator.
func NewChargeCalculator() ChargeCalculator {
	return ChargeCalculator{}
}

// Compute returns the itemized charges of s under pricing.
func (c ChargeCalculator) Compute(s *shipment.Shipment, pricing billing.Pricing, now time.Time) (billing.Charges, error) {
	if err := s.Validate(); err != nil {
		return billing.Charges{}, err
	}
	if err := pricing.Validate(); err != nil {
		return billing.Charges{}, err
	}

	return billing.NewCharges(s.StorageDays(now), s.Weight(), pricing), nil
}
