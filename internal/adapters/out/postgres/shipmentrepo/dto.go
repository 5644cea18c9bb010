// Package shipmentrepo persists shipments. Piece labels are stored with the
// shipment row as a text array so a label can be looked up without
// regenerating it.
package shipmentrepo

import (
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ShipmentDTO is the row layout of the shipments table.
type ShipmentDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Barcode    string          `gorm:"type:varchar(16);not null;uniqueIndex"`
	Shipper    string          `gorm:"type:varchar(255);not null"`
	Consignee  string          `gorm:"type:varchar(255);not null"`
	Weight     decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	PieceCount int             `gorm:"type:int;not null"`
	PieceIDs   pq.StringArray  `gorm:"type:text[];not null"`
	RackID     string          `gorm:"type:varchar(64);not null;index"`
	Status     string          `gorm:"type:varchar(8);not null;index"`
	IntakeAt   time.Time       `gorm:"not null;index"`
	ReleasedAt *time.Time      `gorm:"index"`
	Notes      string          `gorm:"type:text;not null;default:''"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	var releasedAt *time.Time
	if s.ReleasedAt() != nil {
		utc := s.ReleasedAt().UTC()
		releasedAt = &utc
	}

	return ShipmentDTO{
		ID:         s.ID().Bytes(),
		Barcode:    s.Barcode().String(),
		Shipper:    s.Shipper(),
		Consignee:  s.Consignee(),
		Weight:     s.Weight(),
		PieceCount: s.PieceCount(),
		PieceIDs:   pq.StringArray(s.PieceIDs()),
		RackID:     s.RackID().String(),
		Status:     s.Status().String(),
		IntakeAt:   s.IntakeAt().UTC(),
		ReleasedAt: releasedAt,
		Notes:      s.Notes(),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	barcode, err := shipment.ParseBarcode(dto.Barcode)
	if err != nil {
		return nil, err
	}

	rackID, err := rack.ParseID(dto.RackID)
	if err != nil {
		return nil, err
	}

	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(
		id,
		barcode,
		shipment.Details{
			Shipper:    dto.Shipper,
			Consignee:  dto.Consignee,
			Weight:     dto.Weight,
			PieceCount: dto.PieceCount,
			Notes:      dto.Notes,
		},
		dto.PieceIDs,
		rackID,
		dto.IntakeAt,
		dto.ReleasedAt,
		status,
	)
}
