package commands_test

import (
	"testing"
	"time"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/billing"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/core/domain/model/shipment"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func rackID(t *testing.T, section string, number int) rack.ID {
	t.Helper()
	id, err := rack.NewID(section, "", number)
	require.NoError(t, err)
	return id
}

func existingRack(t *testing.T, section string, number, capacity, occupancy int) *rack.Rack {
	t.Helper()
	r, err := rack.NewRack(rackID(t, section, number), section, capacity, "old", testNow)
	require.NoError(t, err)
	for range occupancy {
		require.NoError(t, r.Allocate(testNow))
	}
	return r
}

func intakeCommand(t *testing.T, preferred string) commands.IntakeShipmentCommand {
	t.Helper()
	cmd, err := commands.NewIntakeShipmentCommand("Acme Freight", "Globex", decimal.RequireFromString("5.5"), 3, preferred, "")
	require.NoError(t, err)
	return cmd
}

func storedShipment(t *testing.T, r *rack.Rack, intakeAt time.Time) *shipment.Shipment {
	t.Helper()
	barcode, err := shipment.NewBarcode(intakeAt, 1)
	require.NoError(t, err)
	s, err := shipment.NewShipment(kernel.NewUUID(), barcode, shipment.Details{
		Shipper:    "Acme Freight",
		Consignee:  "Globex",
		Weight:     decimal.RequireFromString("5.5"),
		PieceCount: 2,
	}, r.ID(), intakeAt)
	require.NoError(t, err)
	return s
}

func defaultPricing(t *testing.T) billing.Pricing {
	t.Helper()
	p, err := billing.NewPricing(billing.DefaultPricingSettings(), testNow)
	require.NoError(t, err)
	return p
}

func releasedShipment(t *testing.T, storedFor time.Duration) *shipment.Shipment {
	t.Helper()
	s := storedShipment(t, existingRack(t, "A", 1, 4, 1), testNow.Add(-storedFor))
	require.NoError(t, s.Release(testNow))
	return s
}
