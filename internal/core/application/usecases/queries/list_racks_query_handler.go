package queries

import (
	"context"
	"strings"

	"warehouse/internal/pkg/retry"

	"github.com/jmoiron/sqlx"
)

type ListRacksQueryHandler struct {
	reader reader
}

func NewListRacksQueryHandler(db *sqlx.DB, policy retry.Policy) ListRacksQueryHandler {
	return ListRacksQueryHandler{reader: newReader(db, policy)}
}

func (h ListRacksQueryHandler) Handle(ctx context.Context, query ListRacksQuery) ([]RackView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if query.Section() != "" {
		where = append(where, "section = ?")
		args = append(args, query.Section())
	}
	if status, ok := query.Status(); ok {
		where = append(where, "status = ?")
		args = append(args, status.String())
	}

	sql := `SELECT id, section, capacity, occupancy, status, description, updated_at FROM racks`
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY id"

	return selectAll[RackView](ctx, h.reader, "list racks", sql, args...)
}
