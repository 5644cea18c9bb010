package queries

import (
	"context"
	"database/sql"
	"errors"

	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/retry"

	"github.com/jmoiron/sqlx"
)

type GetShipmentQueryHandler struct {
	reader reader
	clock  ports.Clock
}

// NewGetShipmentQueryHandler creates the handler. clock drives the storage
// days of shipments that are still stored.
func NewGetShipmentQueryHandler(db *sqlx.DB, clock ports.Clock, policy retry.Policy) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{reader: newReader(db, policy), clock: clock}
}

// Handle returns errs.ErrObjectNotFound for an unknown ID or barcode and
// errs.ErrBackendUnavailable when the database cannot be reached.
func (h GetShipmentQueryHandler) Handle(ctx context.Context, query GetShipmentQuery) (ShipmentView, error) {
	if err := query.Validate(); err != nil {
		return ShipmentView{}, err
	}

	var (
		where string
		key   string
	)
	if query.ByBarcode() {
		where, key = "s.barcode = ?", query.Barcode().String()
	} else {
		where, key = "s.id = ?::uuid", query.ID().String()
	}

	row, err := getOne[shipmentRow](ctx, h.reader, "get shipment", "SELECT "+shipmentColumns+shipmentFrom+" WHERE "+where, key)
	if errors.Is(err, sql.ErrNoRows) {
		return ShipmentView{}, errs.NewObjectNotFoundError("shipment", key)
	}
	if err != nil {
		return ShipmentView{}, err
	}

	return row.toView(h.clock.Now())
}
