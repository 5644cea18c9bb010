package commands

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/billing"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/retry"
)

// IssueInvoiceResult is the issued invoice. ArchiveErr is set when the invoice
// was committed but its document copy could not be stored; the invoice row
// stays the source of truth.
type IssueInvoiceResult struct {
	Invoice    *billing.Invoice
	ArchiveErr error
}

// InvoiceIssuer bills one shipment. Implemented by IssueInvoiceCommandHandler.
type InvoiceIssuer interface {
	Handle(ctx context.Context, cmd IssueInvoiceCommand) (IssueInvoiceResult, error)
}

// IssueInvoiceCommandHandler computes the charges of a released shipment and
// records them under a fresh invoice number.
//
// Pricing is read fresh through the provider on every attempt. Charges run up
// to the release time, so billing late does not bill extra days.
// The document copy is archived after commit under the same retry policy;
// an archive that outlives AttemptTimeout is reported in ArchiveErr.
type IssueInvoiceCommandHandler struct {
	uowFactory InvoiceUoWFactory
	pricing    ports.PricingProvider
	archive    ports.InvoiceArchive
	calculator services.ChargeCalculator
	clock      ports.Clock
	policy     retry.Policy
}

// NewIssueInvoiceCommandHandler creates a handler for invoice issue.
// archive may be nil, in which case invoices are only stored in the database.
func NewIssueInvoiceCommandHandler(
	uowFactory InvoiceUoWFactory,
	pricing ports.PricingProvider,
	archive ports.InvoiceArchive,
	clock ports.Clock,
	policy retry.Policy,
) IssueInvoiceCommandHandler {
	return IssueInvoiceCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		archive:    archive,
		calculator: services.NewChargeCalculator(),
		clock:      clock,
		policy:     policy,
	}
}

// Handle issues the invoice.
//
// Returns errs.ErrObjectNotFound for an unknown shipment, errs.ErrValueIsInvalid
// wrapping billing.ErrShipmentIsNotReleased for a stored one, and
// errs.ErrAlreadyInvoiced when the shipment was billed before.
//
// Example:
//
//	cmd, _ := NewIssueInvoiceCommand(shipmentID)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	if result.ArchiveErr != nil {
//	    logger.Warn("invoice not archived", zap.Error(result.ArchiveErr))
//	}
func (h IssueInvoiceCommandHandler) Handle(ctx context.Context, cmd IssueInvoiceCommand) (IssueInvoiceResult, error) {
	if err := cmd.Validate(); err != nil {
		return IssueInvoiceResult{}, err
	}

	var issued *billing.Invoice
	err := retry.Do(ctx, h.policy, func(ctx context.Context) error {
		var err error
		issued, err = h.handle(ctx, cmd)
		return err
	})
	if err != nil {
		return IssueInvoiceResult{}, err
	}

	result := IssueInvoiceResult{Invoice: issued}
	if h.archive != nil {
		result.ArchiveErr = retry.Do(ctx, h.policy, func(ctx context.Context) error {
			return h.archive.Archive(ctx, issued)
		})
	}

	return result, nil
}

func (h IssueInvoiceCommandHandler) handle(ctx context.Context, cmd IssueInvoiceCommand) (*billing.Invoice, error) {
	pricing, err := h.pricing.Get(ctx)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	invoiceRepo := uow.InvoiceRepository()
	sequenceRepo := uow.SequenceRepository()

	released, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}

	if !released.IsReleased() {
		return nil, errs.NewValueIsInvalidErrorWithCause("shipment", billing.ErrShipmentIsNotReleased)
	}

	_, err = invoiceRepo.GetByShipment(ctx, released.ID())
	switch {
	case err == nil:
		return nil, errs.NewAlreadyInvoicedError("shipment", released.ID().String())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	now := h.clock.Now()
	charges, err := h.calculator.Compute(released, pricing, now)
	if err != nil {
		return nil, err
	}

	sequence, err := sequenceRepo.Next(ctx, billing.InvoiceSequenceName(now))
	if err != nil {
		return nil, err
	}

	number, err := billing.NewInvoiceNumber(now, sequence)
	if err != nil {
		return nil, err
	}

	issued, err := billing.NewInvoice(kernel.NewUUID(), number, released, charges, now)
	if err != nil {
		return nil, err
	}

	if err = invoiceRepo.Add(ctx, issued); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return issued, nil
}
