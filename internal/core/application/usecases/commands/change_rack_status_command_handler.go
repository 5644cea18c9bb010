package commands

import (
	"context"

	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/retry"
)

// ChangeRackStatusCommandHandler enables or disables a rack. Stored shipments
// stay where they are; a disabled rack only stops receiving new ones.
type ChangeRackStatusCommandHandler struct {
	uowFactory RackUoWFactory
	clock      ports.Clock
	policy     retry.Policy
}

// NewChangeRackStatusCommandHandler creates a handler for rack status changes.
func NewChangeRackStatusCommandHandler(
	uowFactory RackUoWFactory,
	clock ports.Clock,
	policy retry.Policy,
) ChangeRackStatusCommandHandler {
	return ChangeRackStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		policy:     policy,
	}
}

// Handle applies the status and returns the updated rack.
func (h ChangeRackStatusCommandHandler) Handle(ctx context.Context, cmd ChangeRackStatusCommand) (*rack.Rack, error) {
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

func (h ChangeRackStatusCommandHandler) handle(ctx context.Context, cmd ChangeRackStatusCommand) (*rack.Rack, error) {
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

	now := h.clock.Now()
	if cmd.Enabled() {
		r.Enable(now)
	} else {
		r.Disable(now)
	}

	if err = rackRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}
