package commands

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/billing"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/retry"
)

// BillingFailure is a shipment the pass could not bill.
type BillingFailure struct {
	ShipmentID kernel.UUID
	Err        error
}

// BillPendingShipmentsResult summarises one reconciliation pass.
type BillPendingShipmentsResult struct {
	Issued   []*billing.Invoice
	Failures []BillingFailure
	// Archive failures of invoices that were issued.
	ArchiveFailures []BillingFailure
}

// BillPendingShipmentsCommandHandler issues invoices for shipments released
// while billing was failing. Shipments billed concurrently by someone else
// are silently skipped.
type BillPendingShipmentsCommandHandler struct {
	uowFactory InvoiceUoWFactory
	issuer     InvoiceIssuer
	policy     retry.Policy
}

// NewBillPendingShipmentsCommandHandler creates a handler for reconciliation passes.
func NewBillPendingShipmentsCommandHandler(
	uowFactory InvoiceUoWFactory,
	issuer InvoiceIssuer,
	policy retry.Policy,
) BillPendingShipmentsCommandHandler {
	return BillPendingShipmentsCommandHandler{
		uowFactory: uowFactory,
		issuer:     issuer,
		policy:     policy,
	}
}

// Handle bills every pending shipment of the batch. A failure on one shipment
// does not stop the others; it is reported in the result.
func (h BillPendingShipmentsCommandHandler) Handle(
	ctx context.Context,
	cmd BillPendingShipmentsCommand,
) (BillPendingShipmentsResult, error) {
	if err := cmd.Validate(); err != nil {
		return BillPendingShipmentsResult{}, err
	}

	var pending []kernel.UUID
	err := retry.Do(ctx, h.policy, func(ctx context.Context) error {
		var err error
		pending, err = h.listPending(ctx, cmd.Limit())
		return err
	})
	if err != nil {
		return BillPendingShipmentsResult{}, err
	}

	result := BillPendingShipmentsResult{
		Issued: make([]*billing.Invoice, 0, len(pending)),
	}

	for _, shipmentID := range pending {
		invoiceCmd, err := NewIssueInvoiceCommand(shipmentID)
		if err != nil {
			result.Failures = append(result.Failures, BillingFailure{ShipmentID: shipmentID, Err: err})
			continue
		}

		issued, err := h.issuer.Handle(ctx, invoiceCmd)
		switch {
		case errors.Is(err, errs.ErrAlreadyInvoiced):
			continue
		case err != nil:
			result.Failures = append(result.Failures, BillingFailure{ShipmentID: shipmentID, Err: err})
			continue
		}

		result.Issued = append(result.Issued, issued.Invoice)
		if issued.ArchiveErr != nil {
			result.ArchiveFailures = append(result.ArchiveFailures, BillingFailure{
				ShipmentID: shipmentID,
				Err:        issued.ArchiveErr,
			})
		}
	}

	return result, nil
}

func (h BillPendingShipmentsCommandHandler) listPending(ctx context.Context, limit int) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipments, err := uow.ShipmentRepository().ListReleasedWithoutInvoice(ctx, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(shipments))
	for _, s := range shipments {
		ids = append(ids, s.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ids, nil
}
