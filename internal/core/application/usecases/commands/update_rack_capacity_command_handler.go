package commands

import (
	"context"

	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/retry"
)

// UpdateRackCapacityCommandHandler resizes a rack. Shrinking below the current
// occupancy fails with errs.ErrCapacityBelowOccupancy.
type UpdateRackCapacityCommandHandler struct {
	uowFactory RackUoWFactory
	clock      ports.Clock
	policy     retry.Policy
}

// NewUpdateRackCapacityCommandHandler creates a handler for capacity changes.
func NewUpdateRackCapacityCommandHandler(
	uowFactory RackUoWFactory,
	clock ports.Clock,
	policy retry.Policy,
) UpdateRackCapacityCommandHandler {
	return UpdateRackCapacityCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		policy:     policy,
	}
}

// Handle applies the new capacity and returns the updated rack.
func (h UpdateRackCapacityCommandHandler) Handle(ctx context.Context, cmd UpdateRackCapacityCommand) (*rack.Rack, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var updated *rack.Rack
	err := retry.Do(ctx, h.policy, func(ctx context.Context) error {
		var err error
		updated, err = h.handle(ctx, cmd)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (h UpdateRackCapacityCommandHandler) handle(ctx context.Context, cmd UpdateRackCapacityCommand) (*rack.Rack, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	rackRepo := uow.RackRepository()

	r, err := rackRepo.Get(ctx, cmd.RackID())
	if err != nil {
		return nil, err
	}

	if err = r.UpdateCapacity(cmd.Capacity(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = rackRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}
