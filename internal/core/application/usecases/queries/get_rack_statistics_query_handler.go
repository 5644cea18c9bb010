package queries

import (
	"context"

	"warehouse/internal/pkg/retry"

	"github.com/jmoiron/sqlx"
)

// GetRackStatisticsQueryHandler computes the statistics in a single aggregate query.
type GetRackStatisticsQueryHandler struct {
	reader reader
}

func NewGetRackStatisticsQueryHandler(db *sqlx.DB, policy retry.Policy) GetRackStatisticsQueryHandler {
	return GetRackStatisticsQueryHandler{reader: newReader(db, policy)}
}

// Handle returns zeroes, not an error, when no rack matches.
func (h GetRackStatisticsQueryHandler) Handle(
	ctx context.Context,
	query GetRackStatisticsQuery,
) (GetRackStatisticsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRackStatisticsQueryResponse{}, err
	}

	sql := `
		SELECT
			COUNT(*)                                        AS total_racks,
			COUNT(DISTINCT section)                         AS sections,
			COALESCE(SUM(capacity), 0)                      AS total_capacity,
			COALESCE(SUM(occupancy), 0)                     AS total_occupancy,
			COUNT(*) FILTER (WHERE status = 'available')    AS available_racks,
			COUNT(*) FILTER (WHERE status = 'full')         AS full_racks,
			COUNT(*) FILTER (WHERE status = 'disabled')     AS disabled_racks
		FROM racks`
	args := []any{}
	if query.Section() != "" {
		sql += " WHERE section = ?"
		args = append(args, query.Section())
	}

	stats, err := getOne[GetRackStatisticsQueryResponse](ctx, h.reader, "rack statistics", sql, args...)
	if err != nil {
		return GetRackStatisticsQueryResponse{}, err
	}

	stats.UtilizationRate = UtilizationRate(stats.TotalOccupancy, stats.TotalCapacity)
	return stats, nil
}
