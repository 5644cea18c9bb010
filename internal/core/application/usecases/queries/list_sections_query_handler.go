package queries

import (
	"context"

	"warehouse/internal/pkg/retry"

	"github.com/jmoiron/sqlx"
)

type ListSectionsQueryHandler struct {
	reader reader
}

func NewListSectionsQueryHandler(db *sqlx.DB, policy retry.Policy) ListSectionsQueryHandler {
	return ListSectionsQueryHandler{reader: newReader(db, policy)}
}

func (h ListSectionsQueryHandler) Handle(ctx context.Context, query ListSectionsQuery) ([]SectionView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sections, err := selectAll[SectionView](ctx, h.reader, "list sections", `
		SELECT
			s.name,
			COUNT(r.id)                   AS rack_count,
			COALESCE(SUM(r.capacity), 0)  AS total_capacity,
			COALESCE(SUM(r.occupancy), 0) AS total_occupancy
		FROM sections s
		LEFT JOIN racks r ON r.section = s.name
		GROUP BY s.name
		ORDER BY s.name
	`)
	if err != nil {
		return nil, err
	}

	for i := range sections {
		sections[i].UtilizationRate = UtilizationRate(sections[i].TotalOccupancy, sections[i].TotalCapacity)
	}
	return sections, nil
}
