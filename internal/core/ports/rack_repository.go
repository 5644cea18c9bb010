// Package ports defines the contracts between the warehouse core and its
// infrastructure: repositories, the unit of work, blob archival, pricing
// lookup and the clock.
package ports

import (
	"context"

	"warehouse/internal/core/domain/model/rack"
)

// RackRepository defines the persistence contract for rack aggregates.
//
// Writes are optimistic: Update and Delete compare the rack version with the
// stored one and fail with errs.ErrVersionIsInvalid when another terminal got
// there first. On success the rack's version is advanced in memory.
type RackRepository interface {
	// Add stores a new rack. Fails with errs.ErrObjectAlreadyExists on a duplicate ID.
	Add(ctx context.Context, aggregate *rack.Rack) error

	// Update writes capacity, occupancy, status and description.
	Update(ctx context.Context, aggregate *rack.Rack) error

	// Delete removes the rack.
	Delete(ctx context.Context, aggregate *rack.Rack) error

	// Get returns errs.ErrObjectNotFound when the rack does not exist.
	Get(ctx context.Context, id rack.ID) (*rack.Rack, error)

	// ListAllocatable returns enabled racks with a free slot ordered by ID.
	ListAllocatable(ctx context.Context) ([]*rack.Rack, error)

	// ListBySection returns every rack of section ordered by ID.
	ListBySection(ctx context.Context, section string) ([]*rack.Rack, error)
}

// SectionRepository keeps the catalog of rack sections.
type SectionRepository interface {
	// Ensure creates the section if it does not exist yet.
	Ensure(ctx context.Context, name string) error

	// DeleteIfEmpty removes the section when no rack refers to it any more.
	// Reports whether the section was removed.
	DeleteIfEmpty(ctx context.Context, name string) (bool, error)
}
