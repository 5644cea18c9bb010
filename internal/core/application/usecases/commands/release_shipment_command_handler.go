package commands

import (
	"context"

	"warehouse/internal/core/domain/model/billing"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/retry"
)

// ReleaseShipmentResult is the released shipment and, when billing succeeded,
// its invoice. InvoiceErr is set when the release committed but billing did
// not; the shipment is then billed later by IssueInvoice or the reconciliation
// job, never by releasing again. ArchiveErr mirrors IssueInvoiceResult.
type ReleaseShipmentResult struct {
	Shipment   *shipment.Shipment
	Invoice    *billing.Invoice
	InvoiceErr error
	ArchiveErr error
}

// ReleaseShipmentCommandHandler marks a shipment as out, frees its rack slot
// and bills it.
//
// Example:
//
//	cmd, _ := NewReleaseShipmentCommand(id)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrAlreadyReleased):
//	    // a second release changes nothing
//	case err != nil:
//	    return err
//	case result.InvoiceErr != nil:
//	    log.Printf("released %s, invoice pending: %v", result.Shipment.Barcode(), result.InvoiceErr)
//	}
type ReleaseShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	issuer     InvoiceIssuer
	clock      ports.Clock
	policy     retry.Policy
}

// NewReleaseShipmentCommandHandler creates a handler for shipment release.
func NewReleaseShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	issuer InvoiceIssuer,
	clock ports.Clock,
	policy retry.Policy,
) ReleaseShipmentCommandHandler {
	return ReleaseShipmentCommandHandler{
		uowFactory: uowFactory,
		issuer:     issuer,
		clock:      clock,
		policy:     policy,
	}
}

// Handle releases the shipment and then issues its invoice.
//
// Returns errs.ErrObjectNotFound for an unknown shipment and
// errs.ErrAlreadyReleased when it left the warehouse before.
func (h ReleaseShipmentCommandHandler) Handle(ctx context.Context, cmd ReleaseShipmentCommand) (ReleaseShipmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReleaseShipmentResult{}, err
	}

	var released *shipment.Shipment
	err := retry.Do(ctx, h.policy, func(ctx context.Context) error {
		var err error
		released, err = h.handle(ctx, cmd)
		return err
	})
	if err != nil {
		return ReleaseShipmentResult{}, err
	}

	result := ReleaseShipmentResult{Shipment: released}

	invoiceCmd, err := NewIssueInvoiceCommand(released.ID())
	if err != nil {
		result.InvoiceErr = err
		return result, nil
	}

	issued, err := h.issuer.Handle(ctx, invoiceCmd)
	if err != nil {
		result.InvoiceErr = err
		return result, nil
	}

	result.Invoice = issued.Invoice
	result.ArchiveErr = issued.ArchiveErr
	return result, nil
}

func (h ReleaseShipmentCommandHandler) handle(ctx context.Context, cmd ReleaseShipmentCommand) (*shipment.Shipment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	rackRepo := uow.RackRepository()

	stored, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	if err = stored.Release(now); err != nil {
		return nil, err
	}

	r, err := rackRepo.Get(ctx, stored.RackID())
	if err != nil {
		return nil, err
	}

	if err = r.Release(now); err != nil {
		return nil, err
	}

	if err = rackRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	if err = shipmentRepo.Update(ctx, stored); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return stored, nil
}
