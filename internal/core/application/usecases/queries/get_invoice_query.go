package queries

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/billing"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetInvoiceQueryIsNotConstructed = errors.New(
	"GetInvoiceQuery must be created via NewGetInvoiceByNumberQuery or NewGetInvoiceByShipmentQuery constructor",
)

// GetInvoiceQuery looks an invoice up by number or by the billed shipment.
type GetInvoiceQuery struct {
	number     billing.InvoiceNumber
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetInvoiceByNumberQuery(number string) (GetInvoiceQuery, error) {
	parsed, err := billing.ParseInvoiceNumber(number)
	if err != nil {
		return GetInvoiceQuery{}, err
	}

	return GetInvoiceQuery{number: parsed, guard: guard.NewConstructorGuard()}, nil
}

func NewGetInvoiceByShipmentQuery(shipmentID kernel.UUID) (GetInvoiceQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetInvoiceQuery{}, err
	}

	return GetInvoiceQuery{shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetInvoiceQuery) Validate() error {
	return q.guard.Validate(ErrGetInvoiceQueryIsNotConstructed)
}

// ByNumber reports whether the lookup key is the invoice number.
func (q GetInvoiceQuery) ByNumber() bool {
	return q.number.String() != ""
}

func (q GetInvoiceQuery) Number() billing.InvoiceNumber {
	return q.number
}

func (q GetInvoiceQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// InvoiceView is the read model of an invoice.
type InvoiceView struct {
	ID             kernel.UUID          `json:"id"`
	Number         string               `json:"number"`
	ShipmentID     kernel.UUID          `json:"shipmentId"`
	Snapshot       billing.Snapshot     `json:"snapshot"`
	StorageDays    int                  `json:"storageDays"`
	ChargeableDays int                  `json:"chargeableDays"`
	Storage        decimal.Decimal      `json:"storageCharge"`
	Flat           decimal.Decimal      `json:"flatCharge"`
	Handling       decimal.Decimal      `json:"handlingCharge"`
	Total          decimal.Decimal      `json:"total"`
	Items          []billing.ChargeItem `json:"items"`
	IssuedAt       time.Time            `json:"issuedAt"`
}

// NewInvoiceView projects an issued invoice into its read model.
func NewInvoiceView(inv *billing.Invoice) InvoiceView {
	charges := inv.Charges()
	items := charges.Items
	if items == nil {
		items = []billing.ChargeItem{}
	}

	return InvoiceView{
		ID:             inv.ID(),
		Number:         inv.Number().String(),
		ShipmentID:     inv.ShipmentID(),
		Snapshot:       inv.Snapshot(),
		StorageDays:    charges.StorageDays,
		ChargeableDays: charges.ChargeableDays,
		Storage:        charges.Storage,
		Flat:           charges.Flat,
		Handling:       charges.Handling,
		Total:          charges.Total,
		Items:          items,
		IssuedAt:       inv.IssuedAt(),
	}
}
