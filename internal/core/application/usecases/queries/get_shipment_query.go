package queries

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentByIDQuery or NewGetShipmentByBarcodeQuery constructor",
)

// GetShipmentQuery looks a shipment up by its ID or by its barcode.
//
// Example:
//
//	query, err := NewGetShipmentByBarcodeQuery("WH2509281234")
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown label
//	}
type GetShipmentQuery struct {
	id      kernel.UUID
	barcode shipment.Barcode

	guard guard.ConstructorGuard
}

func NewGetShipmentByIDQuery(id kernel.UUID) (GetShipmentQuery, error) {
	if err := id.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}

	return GetShipmentQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

// NewGetShipmentByBarcodeQuery accepts the printed barcode only, not a piece label.
func NewGetShipmentByBarcodeQuery(barcode string) (GetShipmentQuery, error) {
	parsed, err := shipment.ParseBarcode(barcode)
	if err != nil {
		return GetShipmentQuery{}, err
	}

	return GetShipmentQuery{barcode: parsed, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// ByBarcode reports whether the lookup key is the barcode.
func (q GetShipmentQuery) ByBarcode() bool {
	return !q.barcode.IsZero()
}

func (q GetShipmentQuery) ID() kernel.UUID {
	return q.id
}

func (q GetShipmentQuery) Barcode() shipment.Barcode {
	return q.barcode
}

// ShipmentView is the read model of one shipment. InvoiceNumber is set once
// the shipment has been billed.
type ShipmentView struct {
	ID            kernel.UUID     `json:"id"`
	Barcode       string          `json:"barcode"`
	Shipper       string          `json:"shipper"`
	Consignee     string          `json:"consignee"`
	Weight        decimal.Decimal `json:"weight"`
	PieceCount    int             `json:"pieceCount"`
	PieceIDs      []string        `json:"pieceIds"`
	RackID        string          `json:"rackId"`
	Status        string          `json:"status"`
	IntakeAt      time.Time       `json:"intakeAt"`
	ReleasedAt    *time.Time      `json:"releasedAt,omitempty"`
	StorageDays   int             `json:"storageDays"`
	Notes         string          `json:"notes"`
	InvoiceNumber *string         `json:"invoiceNumber,omitempty"`
}

// NewShipmentView projects a shipment aggregate, as returned by the intake
// and release commands, into its read model.
func NewShipmentView(s *shipment.Shipment, now time.Time, invoiceNumber *string) ShipmentView {
	return ShipmentView{
		ID:            s.ID(),
		Barcode:       s.Barcode().String(),
		Shipper:       s.Shipper(),
		Consignee:     s.Consignee(),
		Weight:        s.Weight(),
		PieceCount:    s.PieceCount(),
		PieceIDs:      s.PieceIDs(),
		RackID:        s.RackID().String(),
		Status:        s.Status().String(),
		IntakeAt:      s.IntakeAt(),
		ReleasedAt:    s.ReleasedAt(),
		StorageDays:   s.StorageDays(now),
		Notes:         s.Notes(),
		InvoiceNumber: invoiceNumber,
	}
}
