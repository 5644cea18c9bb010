package billing

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvoiceIsNotConstructed is returned when an Invoice bypassed its constructors.
	ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice constructor")
	// ErrShipmentIsNotReleased is returned when billing a shipment that is still stored.
	ErrShipmentIsNotReleased = errors.New("shipment is not released")
)

// Snapshot freezes the shipment attributes printed on the invoice.
type Snapshot struct {
	Barcode    string          `json:"barcode"`
	Shipper    string          `json:"shipper"`
	Consignee  string          `json:"consignee"`
	Weight     decimal.Decimal `json:"weight"`
	PieceCount int             `json:"pieceCount"`
	RackID     string          `json:"rackId"`
	IntakeAt   time.Time       `json:"intakeAt"`
	ReleasedAt time.Time       `json:"releasedAt"`
}

// Invoice is the billing record of one release. At most one invoice exists per
// shipment and it never changes after it is issued.
type Invoice struct {
	id         kernel.UUID
	number     InvoiceNumber
	shipmentID kernel.UUID
	snapshot   Snapshot
	charges    Charges
	issuedAt   time.Time

	isConstructed bool
}

// NewInvoice bills a released shipment.
//
// Parameters:
//   - id: new invoice identifier
//   - number: number drawn from the per-day invoice sequence
//   - released: shipment in Out status
//   - charges: breakdown computed at the release time
//   - issuedAt: issue timestamp
//
// Returns:
//   - *Invoice: the issued invoice
//   - error: validation errors, or ErrShipmentIsNotReleased
//
// Example:
//
//	number, _ := billing.NewInvoiceNumber(now, 17)
//	days := released.StorageDays(*released.ReleasedAt())
//	charges := billing.NewCharges(days, released.Weight(), pricing)
//	inv, err := billing.NewInvoice(kernel.NewUUID(), number, released, charges, now)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(inv.Number(), inv.Total()) // INV20250928000017 18.25
func NewInvoice(id kernel.UUID, number InvoiceNumber, released *shipment.Shipment, charges Charges, issuedAt time.Time) (*Invoice, error) {
	if err := released.Validate(); err != nil {
		return nil, err
	}
	if !released.IsReleased() {
		return nil, errs.NewValueIsInvalidErrorWithCause("shipment", ErrShipmentIsNotReleased)
	}

	snapshot := Snapshot{
		Barcode:    released.Barcode().String(),
		Shipper:    released.Shipper(),
		Consignee:  released.Consignee(),
		Weight:     released.Weight(),
		PieceCount: released.PieceCount(),
		RackID:     released.RackID().String(),
		IntakeAt:   released.IntakeAt(),
		ReleasedAt: *released.ReleasedAt(),
	}

	return RestoreInvoice(id, number, released.ID(), snapshot, charges, issuedAt)
}

// RestoreInvoice rebuilds an invoice from storage.
func RestoreInvoice(
	id kernel.UUID,
	number InvoiceNumber,
	shipmentID kernel.UUID,
	snapshot Snapshot,
	charges Charges,
	issuedAt time.Time,
) (*Invoice, error) {
	if err := errors.Join(
		id.Validate(),
		number.Validate(),
		shipmentID.Validate(),
	); err != nil {
		return nil, err
	}
	if charges.Total.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause("total", errors.New("total is negative"))
	}

	return &Invoice{
		id:            id,
		number:        number,
		shipmentID:    shipmentID,
		snapshot:      snapshot,
		charges:       charges,
		issuedAt:      issuedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the invoice was built by a constructor.
func (i *Invoice) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInvoiceIsNotConstructed
	}
	return nil
}

func (i *Invoice) ID() kernel.UUID {
	return i.id
}

func (i *Invoice) Number() InvoiceNumber {
	return i.number
}

func (i *Invoice) ShipmentID() kernel.UUID {
	return i.shipmentID
}

func (i *Invoice) Snapshot() Snapshot {
	return i.snapshot
}

func (i *Invoice) Charges() Charges {
	return i.charges
}

func (i *Invoice) IssuedAt() time.Time {
	return i.issuedAt
}

// Total returns the amount due.
func (i *Invoice) Total() decimal.Decimal {
	return i.charges.Total
}
