package commands

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/retry"
)

// IntakeShipmentCommandHandler stores a new shipment.
//
// Allocation, barcode issue and the shipment insert share one transaction: a
// failed allocation leaves neither a shipment nor a consumed barcode. The
// rack update is version checked, so two terminals racing for the last slot
// of a rack cannot both win; the loser retries and gets the next rack.
type IntakeShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	allocator  services.RackAllocator
	clock      ports.Clock
	policy     retry.Policy
}

// NewIntakeShipmentCommandHandler creates a handler for shipment intake.
func NewIntakeShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	clock ports.Clock,
	policy retry.Policy,
) IntakeShipmentCommandHandler {
	return IntakeShipmentCommandHandler{
		uowFactory: uowFactory,
		allocator:  services.NewRackAllocator(),
		clock:      clock,
		policy:     policy,
	}
}

// Handle allocates a rack and registers the shipment in it.
//
// Returns errs.ErrObjectNotFound for an unknown preferred rack and
// errs.ErrNoCapacity when every rack is full or disabled. Conflicts that
// outlast the retry policy surface as errs.ErrVersionIsInvalid.
//
// Example:
//
//	handler := NewIntakeShipmentCommandHandler(factories.Shipment, clock, retry.DefaultPolicy())
//	s, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrNoCapacity) {
//	    return fmt.Errorf("warehouse is full: %w", err)
//	}
func (h IntakeShipmentCommandHandler) Handle(ctx context.Context, cmd IntakeShipmentCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var stored *shipment.Shipment
	err := retry.Do(ctx, h.policy, func(ctx context.Context) error {
		var err error
		stored, err = h.handle(ctx, cmd)
		return err
	})
	if err != nil {
		return nil, err
	}

	return stored, nil
}

func (h IntakeShipmentCommandHandler) handle(ctx context.Context, cmd IntakeShipmentCommand) (*shipment.Shipment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	rackRepo := uow.RackRepository()
	shipmentRepo := uow.ShipmentRepository()
	sequenceRepo := uow.SequenceRepository()

	var preferred *rack.Rack
	if id, ok := cmd.PreferredRack(); ok {
		r, err := rackRepo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		preferred = r
	}

	var candidates []*rack.Rack
	if preferred == nil || !preferred.CanAllocate() {
		var err error
		candidates, err = rackRepo.ListAllocatable(ctx)
		if err != nil {
			return nil, err
		}
	}

	now := h.clock.Now()
	chosen, err := h.allocator.Allocate(preferred, candidates, now)
	if err != nil {
		return nil, err
	}

	if err = rackRepo.Update(ctx, chosen); err != nil {
		return nil, err
	}

	counter, err := sequenceRepo.Next(ctx, shipment.SequenceName(now))
	if err != nil {
		return nil, err
	}

	barcode, err := shipment.NewBarcode(now, counter)
	if err != nil {
		return nil, err
	}

	stored, err := shipment.NewShipment(kernel.NewUUID(), barcode, cmd.Details(), chosen.ID(), now)
	if err != nil {
		return nil, err
	}

	if err = shipmentRepo.Add(ctx, stored); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return stored, nil
}
