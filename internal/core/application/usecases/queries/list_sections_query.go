package queries

import (
	"errors"

	"warehouse/internal/pkg/guard"
)

var ErrListSectionsQueryIsNotConstructed = errors.New(
	"ListSectionsQuery must be created via NewListSectionsQuery constructor",
)

// ListSectionsQuery lists sections with their aggregated capacity.
type ListSectionsQuery struct {
	guard guard.ConstructorGuard
}

func NewListSectionsQuery() ListSectionsQuery {
	return ListSectionsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListSectionsQuery) Validate() error {
	return q.guard.Validate(ErrListSectionsQueryIsNotConstructed)
}

// SectionView summarises one section.
type SectionView struct {
	Name            string  `db:"name" json:"name"`
	RackCount       int     `db:"rack_count" json:"rackCount"`
	TotalCapacity   int     `db:"total_capacity" json:"totalCapacity"`
	TotalOccupancy  int     `db:"total_occupancy" json:"totalOccupancy"`
	UtilizationRate float64 `db:"-" json:"utilizationRate"`
}
