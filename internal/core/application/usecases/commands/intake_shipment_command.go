package commands

import (
	"errors"
	"strings"

	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrIntakeShipmentCommandIsNotConstructed = errors.New(
	"IntakeShipmentCommand must be created via NewIntakeShipmentCommand constructor",
)

// IntakeShipmentCommand registers goods arriving at the warehouse.
//
// Example:
//
//	cmd, err := NewIntakeShipmentCommand("Acme", "Globex", decimal.RequireFromString("5.5"), 3, "", "")
//	if err != nil {
//	    return fmt.Errorf("invalid intake: %w", err)
//	}
//	s, err := handler.Handle(ctx, cmd)
//	fmt.Printf("stored %s in %s\n", s.Barcode(), s.RackID())
type IntakeShipmentCommand struct { //nolint:recvcheck //using for validation
	details       shipment.Details
	preferredRack rack.ID

	guard guard.ConstructorGuard
}

// NewIntakeShipmentCommand validates the operator input. An empty
// preferredRack lets the allocator choose.
func NewIntakeShipmentCommand(
	shipper, consignee string,
	weight decimal.Decimal,
	pieceCount int,
	preferredRack string,
	notes string,
) (IntakeShipmentCommand, error) {
	cmd := IntakeShipmentCommand{
		details: shipment.Details{
			Shipper:    shipper,
			Consignee:  consignee,
			Weight:     weight,
			PieceCount: pieceCount,
			Notes:      notes,
		},
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.details.Validate(),
		cmd.setPreferredRack(preferredRack),
	); err != nil {
		return IntakeShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c IntakeShipmentCommand) Validate() error {
	return c.guard.Validate(ErrIntakeShipmentCommandIsNotConstructed)
}

func (c IntakeShipmentCommand) Details() shipment.Details {
	return c.details
}

// PreferredRack returns the requested rack and whether one was requested.
func (c IntakeShipmentCommand) PreferredRack() (rack.ID, bool) {
	return c.preferredRack, !c.preferredRack.IsZero()
}

func (c *IntakeShipmentCommand) setPreferredRack(preferredRack string) error {
	if strings.TrimSpace(preferredRack) == "" {
		return nil
	}

	id, err := rack.ParseID(preferredRack)
	if err != nil {
		return err
	}

	c.preferredRack = id
	return nil
}
