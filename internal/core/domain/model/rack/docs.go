// Package rack models the warehouse storage catalog: sections, racks, and the
// occupancy bookkeeping that keeps shipments within rack capacity.
//
// A Rack is the aggregate root. Its occupancy changes only through Allocate and
// Release, its status is derived from occupancy (available/full) unless an
// operator disabled it, and every persisted change bumps its version so storage
// adapters can reject concurrent writers.
package rack
