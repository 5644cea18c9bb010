package services

import (
	"time"

	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/pkg/errs"
)

// RackAllocator chooses the rack that stores an incoming shipment.
//
// Business rules:
//   - a preferred rack with a free slot always wins
//   - otherwise the allocatable rack with the lexically lowest ID is used
//   - disabled and full racks never receive shipments
//
// Example usage:
//
//	allocator := services.NewRackAllocator()
//	chosen, err := allocator.Allocate(preferred, candidates, now)
//	if errors.Is(err, errs.ErrNoCapacity) {
//	    // warehouse is full
//	}
type RackAllocator struct{}

// NewRackAllocator creates a RackAllocator.
func NewRackAllocator() RackAllocator {
	return RackAllocator{}
}

// Allocate picks a rack and increments its occupancy.
//
// Parameters:
//   - preferred: rack requested by the operator, or nil
//   - candidates: racks to fall back to; order does not matter
//   - now: timestamp recorded on the rack
//
// Returns:
//   - *rack.Rack: the rack whose occupancy was incremented
//   - error: errs.ErrNoCapacity when no rack has a free slot, or validation errors
func (a RackAllocator) Allocate(preferred *rack.Rack, candidates []*rack.Rack, now time.Time) (*rack.Rack, error) {
	chosen, err := a.choose(preferred, candidates)
	if err != nil {
		return nil, err
	}

	if err = chosen.Allocate(now); err != nil {
		return nil, err
	}
	return chosen, nil
}

func (a RackAllocator) choose(preferred *rack.Rack, candidates []*rack.Rack) (*rack.Rack, error) {
	if preferred != nil {
		if err := preferred.Validate(); err != nil {
			return nil, err
		}
		if preferred.CanAllocate() {
			return preferred, nil
		}
	}

	var best *rack.Rack
	for _, r := range candidates {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if !r.CanAllocate() {
			continue
		}
		if best == nil || r.ID().Less(best.ID()) {
			best = r
		}
	}

	if best == nil {
		return nil, errs.NewNoCapacityError("", 0, 0)
	}
	return best, nil
}
