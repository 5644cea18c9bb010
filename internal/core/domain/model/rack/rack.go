package rack

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"warehouse/internal/pkg/errs"
)

// DefaultCapacity is the capacity of racks created without an explicit value.
const DefaultCapacity = 4

var (
	// ErrRackIsNotConstructed is returned when a Rack bypassed NewRack/RestoreRack.
	ErrRackIsNotConstructed = errors.New("Rack must be created via NewRack constructor")
)

// Rack is a physical storage slot with a capacity limit.
//
// Rack follows these invariants:
//   - 0 <= occupancy <= capacity, capacity > 0
//   - status is Full exactly when an enabled rack has occupancy = capacity
//   - a Disabled rack stays disabled until Enable is called
//   - the identifier never changes
//
// version is the optimistic concurrency token. Mutating methods leave it alone;
// repositories compare it on write and hand back the incremented value.
type Rack struct {
	id          ID
	section     string
	capacity    int
	occupancy   int
	status      Status
	description string
	version     int64
	createdAt   time.Time
	updatedAt   time.Time

	isConstructed bool
}

// NewRack creates an empty rack in section.
//
// Parameters:
//   - id: identifier produced by NewID or a Range
//   - section: owning section name
//   - capacity: positive number of shipments the rack can hold
//   - description: free text shown to operators
//   - now: creation timestamp
//
// Returns:
//   - *Rack: the rack in Available status with occupancy 0
//   - error: joined validation errors
//
// Example:
//
//	id, _ := rack.NewID("A", "", 1)
//	r, err := rack.NewRack(id, "A", rack.DefaultCapacity, "", clock.Now())
func NewRack(id ID, section string, capacity int, description string, now time.Time) (*Rack, error) {
	r := &Rack{
		status:        Available,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setSection(section),
		r.setCapacity(capacity),
	); err != nil {
		return nil, err
	}

	r.description = strings.TrimSpace(description)
	return r, nil
}

// RestoreRack rebuilds a rack from storage and re-checks every invariant.
func RestoreRack(
	id ID,
	section string,
	capacity int,
	occupancy int,
	status Status,
	description string,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) (*Rack, error) {
	r := &Rack{
		description:   description,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setSection(section),
		r.setCapacity(capacity),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if occupancy < 0 || occupancy > capacity {
		return nil, errs.NewValueIsOutOfRangeError("occupancy", occupancy, 0, capacity)
	}
	r.occupancy = occupancy

	if status == Disabled {
		r.status = Disabled
	} else {
		r.status = statusFor(capacity, occupancy)
	}

	return r, nil
}

// Validate ensures the rack was built by a constructor.
func (r *Rack) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRackIsNotConstructed
	}
	return nil
}

// ID returns the rack identifier.
func (r *Rack) ID() ID {
	return r.id
}

// Section returns the owning section name.
func (r *Rack) Section() string {
	return r.section
}

// Capacity returns the maximum number of shipments.
func (r *Rack) Capacity() int {
	return r.capacity
}

// Occupancy returns the number of stored shipments.
func (r *Rack) Occupancy() int {
	return r.occupancy
}

// FreeSlots returns capacity minus occupancy.
func (r *Rack) FreeSlots() int {
	return r.capacity - r.occupancy
}

// Status returns the allocation status.
func (r *Rack) Status() Status {
	return r.status
}

// Description returns the operator note.
func (r *Rack) Description() string {
	return r.description
}

// Version returns the concurrency token read from storage.
func (r *Rack) Version() int64 {
	return r.version
}

// CreatedAt returns the creation timestamp.
func (r *Rack) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns the timestamp of the last change.
func (r *Rack) UpdatedAt() time.Time {
	return r.updatedAt
}

// IsDisabled reports whether an operator took the rack out of rotation.
func (r *Rack) IsDisabled() bool {
	return r.status == Disabled
}

// CanAllocate reports whether the rack is enabled and has a free slot.
func (r *Rack) CanAllocate() bool {
	return !r.IsDisabled() && r.occupancy < r.capacity
}

// Allocate stores one more shipment in the rack.
// Fails with errs.ErrNoCapacity when the rack is full or disabled.
func (r *Rack) Allocate(now time.Time) error {
	if !r.CanAllocate() {
		return errs.NewNoCapacityError(r.id.String(), r.capacity, r.occupancy)
	}

	r.occupancy++
	r.refreshStatus()
	r.updatedAt = now
	return nil
}

// Release frees one slot. Fails with errs.ErrOccupancyUnderflow on an empty rack.
// Disabled racks may still be released so stored shipments can leave.
func (r *Rack) Release(now time.Time) error {
	if r.occupancy == 0 {
		return errs.NewOccupancyUnderflowError(r.id.String(), r.capacity)
	}

	r.occupancy--
	r.refreshStatus()
	r.updatedAt = now
	return nil
}

// UpdateCapacity changes the capacity.
// Fails with errs.ErrCapacityBelowOccupancy if the new value cannot hold the current load.
func (r *Rack) UpdateCapacity(capacity int, now time.Time) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity", fmt.Errorf("%d is not greater than 0", capacity))
	}
	if capacity < r.occupancy {
		return errs.NewCapacityBelowOccupancyError(r.id.String(), capacity, r.occupancy)
	}

	r.capacity = capacity
	r.refreshStatus()
	r.updatedAt = now
	return nil
}

// Disable takes the rack out of allocation. Stored shipments stay where they are.
func (r *Rack) Disable(now time.Time) {
	r.status = Disabled
	r.updatedAt = now
}

// Enable returns the rack to allocation with a status derived from its load.
func (r *Rack) Enable(now time.Time) {
	r.status = statusFor(r.capacity, r.occupancy)
	r.updatedAt = now
}

// Reset re-initialises an empty rack with new settings, as when a range is
// re-created with duplicates allowed. Occupied racks are refused with errs.ErrRackIsOccupied.
func (r *Rack) Reset(capacity int, description string, now time.Time) error {
	if r.occupancy > 0 {
		return errs.NewRackIsOccupiedError(r.id.String(), r.capacity, r.occupancy)
	}
	if err := r.setCapacity(capacity); err != nil {
		return err
	}

	r.description = strings.TrimSpace(description)
	r.status = Available
	r.updatedAt = now
	return nil
}

// AdvanceVersion records a successful conditional write. Repositories call it
// after storage accepted the change so later writes in the same unit of work
// compare against the new version.
func (r *Rack) AdvanceVersion() {
	r.version++
}

// CanDelete refuses removal while shipments are stored in the rack.
func (r *Rack) CanDelete() error {
	if r.occupancy > 0 {
		return errs.NewRackIsOccupiedError(r.id.String(), r.capacity, r.occupancy)
	}
	return nil
}

func (r *Rack) refreshStatus() {
	if r.status == Disabled {
		return
	}
	r.status = statusFor(r.capacity, r.occupancy)
}

func (r *Rack) setID(id ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rack) setSection(section string) error {
	if err := validateSectionName(section); err != nil {
		return err
	}
	r.section = section
	return nil
}

func (r *Rack) setCapacity(capacity int) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity", fmt.Errorf("%d is not greater than 0", capacity))
	}
	r.capacity = capacity
	return nil
}
