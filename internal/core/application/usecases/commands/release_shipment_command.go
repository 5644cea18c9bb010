package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrReleaseShipmentCommandIsNotConstructed = errors.New(
	"ReleaseShipmentCommand must be created via NewReleaseShipmentCommand constructor",
)

// ReleaseShipmentCommand hands a stored shipment over to the consignee.
type ReleaseShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReleaseShipmentCommand creates the command for shipmentID.
func NewReleaseShipmentCommand(shipmentID kernel.UUID) (ReleaseShipmentCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return ReleaseShipmentCommand{}, err
	}

	return ReleaseShipmentCommand{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseShipmentCommand) Validate() error {
	return c.guard.Validate(ErrReleaseShipmentCommandIsNotConstructed)
}

func (c ReleaseShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}
