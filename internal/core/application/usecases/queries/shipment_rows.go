package queries

import (
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipment"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// shipmentColumns casts uuid, numeric and array columns to text so they scan
// the same way whatever database/sql driver is registered.
const shipmentColumns = `
	s.id::text        AS id,
	s.barcode         AS barcode,
	s.shipper         AS shipper,
	s.consignee       AS consignee,
	s.weight::text    AS weight,
	s.piece_count     AS piece_count,
	s.piece_ids::text AS piece_ids,
	s.rack_id         AS rack_id,
	s.status          AS status,
	s.intake_at       AS intake_at,
	s.released_at     AS released_at,
	s.notes           AS notes,
	i.number          AS invoice_number`

const shipmentFrom = `
	FROM shipments s
	LEFT JOIN invoices i ON i.shipment_id = s.id`

type shipmentRow struct {
	ID            string          `db:"id"`
	Barcode       string          `db:"barcode"`
	Shipper       string          `db:"shipper"`
	Consignee     string          `db:"consignee"`
	Weight        decimal.Decimal `db:"weight"`
	PieceCount    int             `db:"piece_count"`
	PieceIDs      pq.StringArray  `db:"piece_ids"`
	RackID        string          `db:"rack_id"`
	Status        string          `db:"status"`
	IntakeAt      time.Time       `db:"intake_at"`
	ReleasedAt    *time.Time      `db:"released_at"`
	Notes         string          `db:"notes"`
	InvoiceNumber *string         `db:"invoice_number"`
}

func (r shipmentRow) toView(now time.Time) (ShipmentView, error) {
	id, err := kernel.UUIDFromString(r.ID)
	if err != nil {
		return ShipmentView{}, err
	}

	end := now
	if r.ReleasedAt != nil {
		end = *r.ReleasedAt
	}

	pieceIDs := []string(r.PieceIDs)
	if pieceIDs == nil {
		pieceIDs = []string{}
	}

	return ShipmentView{
		ID:            id,
		Barcode:       r.Barcode,
		Shipper:       r.Shipper,
		Consignee:     r.Consignee,
		Weight:        r.Weight,
		PieceCount:    r.PieceCount,
		PieceIDs:      pieceIDs,
		RackID:        r.RackID,
		Status:        r.Status,
		IntakeAt:      r.IntakeAt,
		ReleasedAt:    r.ReleasedAt,
		StorageDays:   shipment.StorageDays(r.IntakeAt, end),
		Notes:         r.Notes,
		InvoiceNumber: r.InvoiceNumber,
	}, nil
}
