package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/pkg/errs"
)

const shipmentParam = "shipment"

// ShipmentRepository implements ports.ShipmentRepository on a Store.
type ShipmentRepository struct {
	exec executor
}

func (r *ShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.exec(ctx, func(s *state) error {
		id := aggregate.ID().String()
		barcode := aggregate.Barcode().String()
		if _, ok := s.shipments[id]; ok {
			return errs.NewObjectAlreadyExistsError(shipmentParam, id)
		}
		if _, ok := s.barcodes[barcode]; ok {
			return errs.NewObjectAlreadyExistsError("barcode", barcode)
		}

		s.shipments[id] = shipmentToRow(aggregate)
		s.barcodes[barcode] = id
		return nil
	})
}

// Update persists a release. Only a stored shipment can be updated, so a
// shipment is released at most once.
func (r *ShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.exec(ctx, func(s *state) error {
		id := aggregate.ID().String()
		row, ok := s.shipments[id]
		if !ok {
			return errs.NewObjectNotFoundError(shipmentParam, id)
		}
		if row.status != shipment.In {
			return errs.NewAlreadyReleasedError(shipmentParam, id)
		}

		s.shipments[id] = shipmentToRow(aggregate)
		return nil
	})
}

func (r *ShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var found *shipment.Shipment
	err := r.exec(ctx, func(s *state) error {
		row, ok := s.shipments[id.String()]
		if !ok {
			return errs.NewObjectNotFoundError(shipmentParam, id.String())
		}

		var err error
		found, err = rowToShipment(id, row)
		return err
	})
	return found, err
}

func (r *ShipmentRepository) GetByBarcode(ctx context.Context, barcode shipment.Barcode) (*shipment.Shipment, error) {
	if err := barcode.Validate(); err != nil {
		return nil, err
	}

	var found *shipment.Shipment
	err := r.exec(ctx, func(s *state) error {
		id, ok := s.barcodes[barcode.String()]
		if !ok {
			return errs.NewObjectNotFoundError("barcode", barcode.String())
		}

		parsed, err := kernel.UUIDFromString(id)
		if err != nil {
			return err
		}
		found, err = rowToShipment(parsed, s.shipments[id])
		return err
	})
	return found, err
}

// ListReleasedWithoutInvoice returns up to limit released shipments that were
// never billed, oldest release first.
func (r *ShipmentRepository) ListReleasedWithoutInvoice(ctx context.Context, limit int) ([]*shipment.Shipment, error) {
	var result []*shipment.Shipment
	err := r.exec(ctx, func(s *state) error {
		billed := make(map[string]struct{}, len(s.invoices))
		for _, inv := range s.invoices {
			billed[inv.ShipmentID().String()] = struct{}{}
		}

		type pending struct {
			id  string
			at  time.Time
			row shipmentRow
		}
		var found []pending
		for id, row := range s.shipments {
			if row.status != shipment.Out {
				continue
			}
			if _, ok := billed[id]; ok {
				continue
			}
			found = append(found, pending{id: id, at: *row.releasedAt, row: row})
		}

		slices.SortFunc(found, func(a, b pending) int {
			if c := a.at.Compare(b.at); c != 0 {
				return c
			}
			return strings.Compare(a.id, b.id)
		})
		if limit > 0 && len(found) > limit {
			found = found[:limit]
		}

		result = make([]*shipment.Shipment, 0, len(found))
		for _, p := range found {
			id, err := kernel.UUIDFromString(p.id)
			if err != nil {
				return err
			}
			restored, err := rowToShipment(id, p.row)
			if err != nil {
				return err
			}
			result = append(result, restored)
		}
		return nil
	})
	return result, err
}

func shipmentToRow(s *shipment.Shipment) shipmentRow {
	return shipmentRow{
		barcode:    s.Barcode().String(),
		shipper:    s.Shipper(),
		consignee:  s.Consignee(),
		weight:     s.Weight(),
		pieceCount: s.PieceCount(),
		pieceIDs:   s.PieceIDs(),
		rackID:     s.RackID().String(),
		status:     s.Status(),
		intakeAt:   s.IntakeAt(),
		releasedAt: s.ReleasedAt(),
		notes:      s.Notes(),
	}
}

func rowToShipment(id kernel.UUID, row shipmentRow) (*shipment.Shipment, error) {
	barcode, err := shipment.ParseBarcode(row.barcode)
	if err != nil {
		return nil, err
	}
	rackID, err := rack.ParseID(row.rackID)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(
		id,
		barcode,
		shipment.Details{
			Shipper:    row.shipper,
			Consignee:  row.consignee,
			Weight:     row.weight,
			PieceCount: row.pieceCount,
			Notes:      row.notes,
		},
		row.pieceIDs,
		rackID,
		row.intakeAt,
		row.releasedAt,
		row.status,
	)
}
