package queries

import (
	"context"
	"strings"

	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/retry"

	"github.com/jmoiron/sqlx"
)

type ListShipmentsQueryHandler struct {
	reader reader
	clock  ports.Clock
}

func NewListShipmentsQueryHandler(db *sqlx.DB, clock ports.Clock, policy retry.Policy) ListShipmentsQueryHandler {
	return ListShipmentsQueryHandler{reader: newReader(db, policy), clock: clock}
}

func (h ListShipmentsQueryHandler) Handle(ctx context.Context, query ListShipmentsQuery) ([]ShipmentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if status, ok := query.Status(); ok {
		where = append(where, "s.status = ?")
		args = append(args, status.String())
	}
	if rackID, ok := query.RackID(); ok {
		where = append(where, "s.rack_id = ?")
		args = append(args, rackID.String())
	}

	sql := "SELECT " + shipmentColumns + shipmentFrom
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY s.intake_at DESC, s.id LIMIT ? OFFSET ?"
	args = append(args, query.Limit(), query.Offset())

	rows, err := selectAll[shipmentRow](ctx, h.reader, "list shipments", sql, args...)
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	shipments := make([]ShipmentView, 0, len(rows))
	for _, row := range rows {
		view, err := row.toView(now)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, view)
	}
	return shipments, nil
}
