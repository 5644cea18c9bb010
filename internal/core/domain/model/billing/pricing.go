package billing

import (
	"errors"
	"fmt"
	"time"

	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrPricingIsNotConstructed is returned when Pricing bypassed NewPricing.
var ErrPricingIsNotConstructed = errors.New("Pricing must be created via NewPricing constructor")

// PricingSettings is the editable form of the tariff.
type PricingSettings struct {
	PerKgDayRate    decimal.Decimal
	HandlingFee     decimal.Decimal
	FlatRate        decimal.Decimal
	FreeDays        int
	PerKgDayEnabled bool
	HandlingEnabled bool
	FlatRateEnabled bool
}

// Pricing is the validated tariff in force. Any combination of the three
// components may be enabled; disabled components contribute nothing.
type Pricing struct {
	settings  PricingSettings
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// DefaultPricingSettings is the tariff seeded into an empty database.
func DefaultPricingSettings() PricingSettings {
	return PricingSettings{
		PerKgDayRate:    decimal.RequireFromString("0.5"),
		HandlingFee:     decimal.NewFromInt(10),
		FlatRate:        decimal.NewFromInt(25),
		FreeDays:        2,
		PerKgDayEnabled: true,
		HandlingEnabled: true,
		FlatRateEnabled: false,
	}
}

// NewPricing validates settings. Rates and fees must not be negative.
func NewPricing(settings PricingSettings, updatedAt time.Time) (Pricing, error) {
	if err := errors.Join(
		validateAmount("perKgDayRate", settings.PerKgDayRate),
		validateAmount("handlingFee", settings.HandlingFee),
		validateAmount("flatRate", settings.FlatRate),
		validateFreeDays(settings.FreeDays),
	); err != nil {
		return Pricing{}, err
	}

	return Pricing{
		settings:  settings,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the pricing was built by NewPricing.
func (p Pricing) Validate() error {
	return p.guard.Validate(ErrPricingIsNotConstructed)
}

// Settings returns a copy of the tariff values.
func (p Pricing) Settings() PricingSettings {
	return p.settings
}

// UpdatedAt returns when the tariff was last changed.
func (p Pricing) UpdatedAt() time.Time {
	return p.updatedAt
}

// FreeDays returns the number of storage days not charged per kilogram.
func (p Pricing) FreeDays() int {
	return p.settings.FreeDays
}

func validateAmount(name string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", amount))
	}
	return nil
}

func validateFreeDays(days int) error {
	if days < 0 {
		return errs.NewValueIsInvalidErrorWithCause("freeDays", fmt.Errorf("%d is negative", days))
	}
	return nil
}
