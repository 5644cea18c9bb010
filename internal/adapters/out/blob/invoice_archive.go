package blob

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/billing"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const invoiceContentType = "application/json"

// InvoiceDocument is the archived form of an invoice.
type InvoiceDocument struct {
	ID             kernel.UUID          `json:"id"`
	Number         string               `json:"number"`
	ShipmentID     kernel.UUID          `json:"shipmentId"`
	Shipment       billing.Snapshot     `json:"shipment"`
	StorageDays    int                  `json:"storageDays"`
	ChargeableDays int                  `json:"chargeableDays"`
	Items          []billing.ChargeItem `json:"items"`
	Total          decimal.Decimal      `json:"total"`
	IssuedAt       time.Time            `json:"issuedAt"`
}

// InvoiceArchive implements ports.InvoiceArchive on a Store.
type InvoiceArchive struct {
	store Store
}

func NewInvoiceArchive(store Store) *InvoiceArchive {
	return &InvoiceArchive{store: store}
}

// InvoiceKey is the object key of an invoice: invoices/YYYY/MM/{number}.json,
// dated by the issue time.
func InvoiceKey(number billing.InvoiceNumber, issuedAt time.Time) string {
	return fmt.Sprintf("invoices/%s/%s.json", issuedAt.Format("2006/01"), number.String())
}

// Archive writes the invoice document. Archiving the same invoice twice
// overwrites the object with identical content.
func (a *InvoiceArchive) Archive(ctx context.Context, invoice *billing.Invoice) error {
	if err := invoice.Validate(); err != nil {
		return err
	}

	charges := invoice.Charges()
	body, err := json.Marshal(InvoiceDocument{
		ID:             invoice.ID(),
		Number:         invoice.Number().String(),
		ShipmentID:     invoice.ShipmentID(),
		Shipment:       invoice.Snapshot(),
		StorageDays:    charges.StorageDays,
		ChargeableDays: charges.ChargeableDays,
		Items:          charges.Items,
		Total:          charges.Total,
		IssuedAt:       invoice.IssuedAt(),
	})
	if err != nil {
		return fmt.Errorf("encode invoice %s: %w", invoice.Number(), err)
	}

	key := InvoiceKey(invoice.Number(), invoice.IssuedAt())
	if err = a.store.Put(ctx, key, body, invoiceContentType); err != nil {
		return errs.NewBackendUnavailableError("archive invoice", err)
	}
	return nil
}

// Load reads an archived invoice document back.
func (a *InvoiceArchive) Load(ctx context.Context, number billing.InvoiceNumber, issuedAt time.Time) (InvoiceDocument, error) {
	body, err := a.store.Get(ctx, InvoiceKey(number, issuedAt))
	if err != nil {
		return InvoiceDocument{}, err
	}

	var doc InvoiceDocument
	if err = json.Unmarshal(body, &doc); err != nil {
		return InvoiceDocument{}, fmt.Errorf("decode invoice %s: %w", number, err)
	}
	return doc, nil
}
