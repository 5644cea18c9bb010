package commands

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/billing"
	"warehouse/internal/pkg/guard"
)

var ErrUpdatePricingCommandIsNotConstructed = errors.New(
	"UpdatePricingCommand must be created via NewUpdatePricingCommand constructor",
)

// UpdatePricingCommand replaces the tariff.
type UpdatePricingCommand struct { //nolint:recvcheck //using for validation
	settings billing.PricingSettings

	guard guard.ConstructorGuard
}

// NewUpdatePricingCommand validates that no amount is negative.
func NewUpdatePricingCommand(settings billing.PricingSettings) (UpdatePricingCommand, error) {
	if _, err := billing.NewPricing(settings, time.Time{}); err != nil {
		return UpdatePricingCommand{}, err
	}

	return UpdatePricingCommand{
		settings: settings,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePricingCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePricingCommandIsNotConstructed)
}

func (c UpdatePricingCommand) Settings() billing.PricingSettings {
	return c.settings
}
