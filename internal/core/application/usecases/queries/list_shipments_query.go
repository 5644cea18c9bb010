package queries

import (
	"errors"
	"strings"

	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrListShipmentsQueryIsNotConstructed = errors.New(
	"ListShipmentsQuery must be created via NewListShipmentsQuery constructor",
)

const (
	// DefaultPageSize is used when no limit is given.
	DefaultPageSize = 100
	// MaxPageSize bounds a single page.
	MaxPageSize = 1000
)

// ListShipmentsQuery pages through shipments, newest intake first.
type ListShipmentsQuery struct {
	status *shipment.Status
	rackID *rack.ID
	limit  int
	offset int

	guard guard.ConstructorGuard
}

// NewListShipmentsQuery creates the query. Empty status and rackID match
// everything; a zero limit means DefaultPageSize.
func NewListShipmentsQuery(status, rackID string, limit, offset int) (ListShipmentsQuery, error) {
	q := ListShipmentsQuery{
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}

	if q.limit == 0 {
		q.limit = DefaultPageSize
	}

	var joined []error
	if q.limit < 1 || q.limit > MaxPageSize {
		joined = append(joined, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageSize))
	}
	if offset < 0 {
		joined = append(joined, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded"))
	}
	if strings.TrimSpace(status) != "" {
		parsed, err := shipment.ParseStatus(status)
		joined = append(joined, err)
		q.status = &parsed
	}
	if strings.TrimSpace(rackID) != "" {
		parsed, err := rack.ParseID(rackID)
		joined = append(joined, err)
		q.rackID = &parsed
	}

	if err := errors.Join(joined...); err != nil {
		return ListShipmentsQuery{}, err
	}
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentsQueryIsNotConstructed)
}

// Status returns the status filter and whether one was given.
func (q ListShipmentsQuery) Status() (shipment.Status, bool) {
	if q.status == nil {
		return shipment.Unknown, false
	}
	return *q.status, true
}

// RackID returns the rack filter and whether one was given.
func (q ListShipmentsQuery) RackID() (rack.ID, bool) {
	if q.rackID == nil {
		return rack.ID{}, false
	}
	return *q.rackID, true
}

func (q ListShipmentsQuery) Limit() int {
	return q.limit
}

func (q ListShipmentsQuery) Offset() int {
	return q.offset
}
