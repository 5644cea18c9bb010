package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrIssueInvoiceCommandIsNotConstructed = errors.New(
	"IssueInvoiceCommand must be created via NewIssueInvoiceCommand constructor",
)

// IssueInvoiceCommand bills a released shipment.
type IssueInvoiceCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewIssueInvoiceCommand creates the command for shipmentID.
func NewIssueInvoiceCommand(shipmentID kernel.UUID) (IssueInvoiceCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return IssueInvoiceCommand{}, err
	}

	return IssueInvoiceCommand{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c IssueInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrIssueInvoiceCommandIsNotConstructed)
}

func (c IssueInvoiceCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}
