package errs

import (
	"errors"
	"fmt"
)

// ErrCapacity groups every rack capacity violation.
var ErrCapacity = errors.New("capacity violation")

var (
	// ErrNoCapacity means no eligible rack has spare capacity.
	ErrNoCapacity = errors.New("no capacity")

	// ErrCapacityBelowOccupancy means a capacity change would drop below the current occupancy.
	ErrCapacityBelowOccupancy = errors.New("capacity below occupancy")

	// ErrOccupancyUnderflow means a release was attempted on an empty rack.
	ErrOccupancyUnderflow = errors.New("occupancy underflow")

	// ErrRackIsOccupied means a rack still holds shipments and cannot be removed or reset.
	ErrRackIsOccupied = errors.New("rack is occupied")
)

// CapacityError describes a capacity violation on a rack. Reason is one of the
// capacity sentinels above; the error matches both Reason and ErrCapacity.
type CapacityError struct {
	RackID    string
	Capacity  int
	Occupancy int
	Reason    error
}

// NewNoCapacityError reports that rackID (or, when empty, the whole warehouse) has no room.
func NewNoCapacityError(rackID string, capacity, occupancy int) *CapacityError {
	return &CapacityError{RackID: rackID, Capacity: capacity, Occupancy: occupancy, Reason: ErrNoCapacity}
}

// NewCapacityBelowOccupancyError reports a rejected capacity change.
func NewCapacityBelowOccupancyError(rackID string, capacity, occupancy int) *CapacityError {
	return &CapacityError{RackID: rackID, Capacity: capacity, Occupancy: occupancy, Reason: ErrCapacityBelowOccupancy}
}

// NewOccupancyUnderflowError reports a release on an empty rack.
func NewOccupancyUnderflowError(rackID string, capacity int) *CapacityError {
	return &CapacityError{RackID: rackID, Capacity: capacity, Reason: ErrOccupancyUnderflow}
}

// NewRackIsOccupiedError reports a structural change refused because the rack holds shipments.
func NewRackIsOccupiedError(rackID string, capacity, occupancy int) *CapacityError {
	return &CapacityError{RackID: rackID, Capacity: capacity, Occupancy: occupancy, Reason: ErrRackIsOccupied}
}

func (e *CapacityError) Error() string {
	if e.RackID == "" {
		return fmt.Sprintf("%s: %s", ErrCapacity, e.Reason)
	}
	return fmt.Sprintf("%s: %s: rack %s holds %d of %d", ErrCapacity, e.Reason, e.RackID, e.Occupancy, e.Capacity)
}

func (e *CapacityError) Unwrap() []error {
	return []error{e.Reason, ErrCapacity}
}
