// Package billingrepo persists invoices and the pricing tariff.
package billingrepo

import (
	"encoding/json"
	"time"

	"warehouse/internal/core/domain/model/billing"
	"warehouse/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// shipmentConstraint is the unique index that makes billing a shipment twice impossible.
const shipmentConstraint = "idx_invoices_shipment_id"

// pricingRowID is the key of the single pricing row.
const pricingRowID = 1

// InvoiceDTO is the row layout of the invoices table. The snapshot and the
// itemized lines are kept as jsonb documents; the amounts are also stored as
// columns for reporting.
type InvoiceDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number         string          `gorm:"type:varchar(17);not null;uniqueIndex:idx_invoices_number"`
	ShipmentID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_invoices_shipment_id"`
	Snapshot       datatypes.JSON  `gorm:"type:jsonb;not null"`
	Items          datatypes.JSON  `gorm:"type:jsonb;not null"`
	StorageDays    int             `gorm:"type:int;not null"`
	ChargeableDays int             `gorm:"type:int;not null"`
	Storage        decimal.Decimal `gorm:"type:decimal(20,3);not null"`
	Flat           decimal.Decimal `gorm:"type:decimal(20,3);not null"`
	Handling       decimal.Decimal `gorm:"type:decimal(20,3);not null"`
	Total          decimal.Decimal `gorm:"type:decimal(20,3);not null"`
	IssuedAt       time.Time       `gorm:"not null;index"`
}

func (InvoiceDTO) TableName() string {
	return "invoices"
}

// PricingDTO is the single-row pricing table.
type PricingDTO struct {
	ID              int             `gorm:"primaryKey;autoIncrement:false"`
	PerKgDayRate    decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	PerKgDayEnabled bool            `gorm:"not null"`
	HandlingFee     decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	HandlingEnabled bool            `gorm:"not null"`
	FlatRate        decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	FlatRateEnabled bool            `gorm:"not null"`
	FreeDays        int             `gorm:"type:int;not null"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime:false"`
}

func (PricingDTO) TableName() string {
	return "pricing"
}

func invoiceFromDomain(inv *billing.Invoice) (InvoiceDTO, error) {
	snapshot, err := json.Marshal(inv.Snapshot())
	if err != nil {
		return InvoiceDTO{}, err
	}

	charges := inv.Charges()
	items := charges.Items
	if items == nil {
		items = []billing.ChargeItem{}
	}
	rawItems, err := json.Marshal(items)
	if err != nil {
		return InvoiceDTO{}, err
	}

	return InvoiceDTO{
		ID:             inv.ID().Bytes(),
		Number:         inv.Number().String(),
		ShipmentID:     inv.ShipmentID().Bytes(),
		Snapshot:       datatypes.JSON(snapshot),
		Items:          datatypes.JSON(rawItems),
		StorageDays:    charges.StorageDays,
		ChargeableDays: charges.ChargeableDays,
		Storage:        charges.Storage,
		Flat:           charges.Flat,
		Handling:       charges.Handling,
		Total:          charges.Total,
		IssuedAt:       inv.IssuedAt().UTC(),
	}, nil
}

func invoiceToDomain(dto InvoiceDTO) (*billing.Invoice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}

	number, err := billing.ParseInvoiceNumber(dto.Number)
	if err != nil {
		return nil, err
	}

	var snapshot billing.Snapshot
	if err = json.Unmarshal(dto.Snapshot, &snapshot); err != nil {
		return nil, err
	}

	var items []billing.ChargeItem
	if err = json.Unmarshal(dto.Items, &items); err != nil {
		return nil, err
	}

	return billing.RestoreInvoice(id, number, shipmentID, snapshot, billing.Charges{
		StorageDays:    dto.StorageDays,
		ChargeableDays: dto.ChargeableDays,
		Storage:        dto.Storage,
		Flat:           dto.Flat,
		Handling:       dto.Handling,
		Total:          dto.Total,
		Items:          items,
	}, dto.IssuedAt)
}

func pricingFromDomain(p billing.Pricing) PricingDTO {
	s := p.Settings()
	return PricingDTO{
		ID:              pricingRowID,
		PerKgDayRate:    s.PerKgDayRate,
		PerKgDayEnabled: s.PerKgDayEnabled,
		HandlingFee:     s.HandlingFee,
		HandlingEnabled: s.HandlingEnabled,
		FlatRate:        s.FlatRate,
		FlatRateEnabled: s.FlatRateEnabled,
		FreeDays:        s.FreeDays,
		UpdatedAt:       p.UpdatedAt().UTC(),
	}
}

func pricingToDomain(dto PricingDTO) (billing.Pricing, error) {
	return billing.NewPricing(billing.PricingSettings{
		PerKgDayRate:    dto.PerKgDayRate,
		HandlingFee:     dto.HandlingFee,
		FlatRate:        dto.FlatRate,
		FreeDays:        dto.FreeDays,
		PerKgDayEnabled: dto.PerKgDayEnabled,
		HandlingEnabled: dto.HandlingEnabled,
		FlatRateEnabled: dto.FlatRateEnabled,
	}, dto.UpdatedAt)
}
