package queries

import (
	"errors"
	"strings"
	"time"

	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/pkg/guard"
)

var ErrListRacksQueryIsNotConstructed = errors.New(
	"ListRacksQuery must be created via NewListRacksQuery constructor",
)

// ListRacksQuery lists racks ordered by ID, optionally filtered.
type ListRacksQuery struct {
	section string
	status  *rack.Status

	guard guard.ConstructorGuard
}

// NewListRacksQuery creates the query. Empty filters match everything;
// status must be one of available, full, disabled.
func NewListRacksQuery(section, status string) (ListRacksQuery, error) {
	q := ListRacksQuery{
		section: strings.TrimSpace(section),
		guard:   guard.NewConstructorGuard(),
	}

	if strings.TrimSpace(status) != "" {
		parsed, err := rack.ParseStatus(status)
		if err != nil {
			return ListRacksQuery{}, err
		}
		q.status = &parsed
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListRacksQuery) Validate() error {
	return q.guard.Validate(ErrListRacksQueryIsNotConstructed)
}

func (q ListRacksQuery) Section() string {
	return q.section
}

// Status returns the status filter and whether one was given.
func (q ListRacksQuery) Status() (rack.Status, bool) {
	if q.status == nil {
		return rack.Unknown, false
	}
	return *q.status, true
}

// RackView is the read model of one rack.
type RackView struct {
	ID          string    `db:"id" json:"id"`
	Section     string    `db:"section" json:"section"`
	Capacity    int       `db:"capacity" json:"capacity"`
	Occupancy   int       `db:"occupancy" json:"occupancy"`
	Status      string    `db:"status" json:"status"`
	Description string    `db:"description" json:"description"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// NewRackView projects a rack aggregate into its read model.
func NewRackView(r *rack.Rack) RackView {
	return RackView{
		ID:          r.ID().String(),
		Section:     r.Section(),
		Capacity:    r.Capacity(),
		Occupancy:   r.Occupancy(),
		Status:      r.Status().String(),
		Description: r.Description(),
		UpdatedAt:   r.UpdatedAt(),
	}
}
