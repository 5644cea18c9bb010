package commands

import (
	"context"

	"warehouse/internal/core/domain/model/billing"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/retry"
)

// UpdatePricingCommandHandler saves a new tariff and drops the cached one so
// the next invoice is computed with it.
type UpdatePricingCommandHandler struct {
	uowFactory PricingUoWFactory
	provider   ports.PricingProvider
	clock      ports.Clock
	policy     retry.Policy
}

// NewUpdatePricingCommandHandler creates a handler for tariff updates.
func NewUpdatePricingCommandHandler(
	uowFactory PricingUoWFactory,
	provider ports.PricingProvider,
	clock ports.Clock,
	policy retry.Policy,
) UpdatePricingCommandHandler {
	return UpdatePricingCommandHandler{
		uowFactory: uowFactory,
		provider:   provider,
		clock:      clock,
		policy:     policy,
	}
}

// Handle stores the tariff and returns it.
func (h UpdatePricingCommandHandler) Handle(ctx context.Context, cmd UpdatePricingCommand) (billing.Pricing, error) {
	if err := cmd.Validate(); err != nil {
		return billing.Pricing{}, err
	}

	pricing, err := billing.NewPricing(cmd.Settings(), h.clock.Now())
	if err != nil {
		return billing.Pricing{}, err
	}

	err = retry.Do(ctx, h.policy, func(ctx context.Context) error {
		return h.handle(ctx, pricing)
	})
	if err != nil {
		return billing.Pricing{}, err
	}

	h.provider.Invalidate()
	return pricing, nil
}

func (h UpdatePricingCommandHandler) handle(ctx context.Context, pricing billing.Pricing) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.PricingRepository().Save(ctx, pricing); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
