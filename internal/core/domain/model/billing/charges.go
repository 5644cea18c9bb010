package billing

import (
	"warehouse/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// ChargeCode identifies a line of the itemized charges.
type ChargeCode string

const (
	// StorageCharge is chargeable days x weight x per-kg-day rate.
	StorageCharge ChargeCode = "storage"
	// FlatCharge is the flat rate per release.
	FlatCharge ChargeCode = "flat"
	// HandlingCharge is the fixed handling fee per release.
	HandlingCharge ChargeCode = "handling"
)

// ChargeItem is one enabled component of the bill.
type ChargeItem struct {
	Code   ChargeCode      `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

// Charges is the full breakdown for one release. Components that are disabled
// in the tariff are zero and do not appear in Items.
type Charges struct {
	StorageDays    int
	ChargeableDays int
	Storage        decimal.Decimal
	Flat           decimal.Decimal
	Handling       decimal.Decimal
	Total          decimal.Decimal
	Items          []ChargeItem
}

// NewCharges applies pricing to a stored weight over storageDays.
//
//	chargeableDays = max(0, storageDays - freeDays)
//	storage        = chargeableDays * weight * perKgDayRate   (if enabled)
//	flat           = flatRate                                 (if enabled)
//	handling       = handlingFee                              (if enabled)
//	total          = storage + flat + handling
//
// Every amount is rounded to kernel.AmountScale places.
func NewCharges(storageDays int, weight decimal.Decimal, pricing Pricing) Charges {
	settings := pricing.Settings()
	chargeable := max(0, storageDays-settings.FreeDays)

	c := Charges{
		StorageDays:    storageDays,
		ChargeableDays: chargeable,
		Storage:        decimal.Zero,
		Flat:           decimal.Zero,
		Handling:       decimal.Zero,
		Items:          make([]ChargeItem, 0, 3),
	}

	if settings.PerKgDayEnabled {
		c.Storage = kernel.RoundAmount(decimal.NewFromInt(int64(chargeable)).Mul(weight).Mul(settings.PerKgDayRate))
		c.Items = append(c.Items, ChargeItem{Code: StorageCharge, Amount: c.Storage})
	}
	if settings.FlatRateEnabled {
		c.Flat = kernel.RoundAmount(settings.FlatRate)
		c.Items = append(c.Items, ChargeItem{Code: FlatCharge, Amount: c.Flat})
	}
	if settings.HandlingEnabled {
		c.Handling = kernel.RoundAmount(settings.HandlingFee)
		c.Items = append(c.Items, ChargeItem{Code: HandlingCharge, Amount: c.Handling})
	}

	c.Total = kernel.RoundAmount(c.Storage.Add(c.Flat).Add(c.Handling))
	return c
}
