package queries

import (
	"errors"
	"strings"

	"warehouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetRackStatisticsQueryIsNotConstructed = errors.New(
	"GetRackStatisticsQuery must be created via NewGetRackStatisticsQuery constructor",
)

// UtilizationScale is the number of decimal places of the utilization rate.
const UtilizationScale = 4

// GetRackStatisticsQuery aggregates capacity and occupancy, either for the
// whole warehouse or for one section.
//
// Example:
//
//	stats, err := handler.Handle(ctx, NewGetRackStatisticsQuery(""))
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d/%d slots used (%.1f%%)\n",
//	    stats.TotalOccupancy, stats.TotalCapacity, stats.UtilizationRate*100)
type GetRackStatisticsQuery struct {
	section string

	guard guard.ConstructorGuard
}

// NewGetRackStatisticsQuery creates the query. An empty section means every rack.
func NewGetRackStatisticsQuery(section string) GetRackStatisticsQuery {
	return GetRackStatisticsQuery{
		section: strings.TrimSpace(section),
		guard:   guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetRackStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetRackStatisticsQueryIsNotConstructed)
}

func (q GetRackStatisticsQuery) Section() string {
	return q.section
}

// GetRackStatisticsQueryResponse is the occupancy summary.
type GetRackStatisticsQueryResponse struct {
	TotalRacks      int     `db:"total_racks" json:"totalRacks"`
	Sections        int     `db:"sections" json:"sections"`
	TotalCapacity   int     `db:"total_capacity" json:"totalCapacity"`
	TotalOccupancy  int     `db:"total_occupancy" json:"totalOccupancy"`
	AvailableRacks  int     `db:"available_racks" json:"availableRacks"`
	FullRacks       int     `db:"full_racks" json:"fullRacks"`
	DisabledRacks   int     `db:"disabled_racks" json:"disabledRacks"`
	UtilizationRate float64 `db:"-" json:"utilizationRate"`
}

// FreeSlots is the number of shipments that still fit, disabled racks included.
func (r GetRackStatisticsQueryResponse) FreeSlots() int {
	return r.TotalCapacity - r.TotalOccupancy
}

// UtilizationRate is occupancy / capacity rounded to UtilizationScale places,
// and 0 when there is no capacity at all.
func UtilizationRate(occupancy, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}

	return decimal.NewFromInt(int64(occupancy)).
		DivRound(decimal.NewFromInt(int64(capacity)), UtilizationScale).
		InexactFloat64()
}
