package memory

import (
	"context"
	"slices"

	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/pkg/errs"
)

const rackParam = "rack"

// RackRepository implements ports.RackRepository on a Store.
type RackRepository struct {
	exec executor
}

func (r *RackRepository) Add(ctx context.Context, aggregate *rack.Rack) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.exec(ctx, func(s *state) error {
		id := aggregate.ID().String()
		if _, ok := s.racks[id]; ok {
			return errs.NewObjectAlreadyExistsError(rackParam, id)
		}
		s.racks[id] = rackToRow(aggregate)
		return nil
	})
}

// Update stores the rack if the stored version equals the aggregate's one and
// advances the aggregate's version.
func (r *RackRepository) Update(ctx context.Context, aggregate *rack.Rack) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	err := r.exec(ctx, func(s *state) error {
		id := aggregate.ID().String()
		if err := checkVersion(s, id, aggregate.Version()); err != nil {
			return err
		}
		row := rackToRow(aggregate)
		row.version++
		s.racks[id] = row
		return nil
	})
	if err != nil {
		return err
	}

	aggregate.AdvanceVersion()
	return nil
}

func (r *RackRepository) Delete(ctx context.Context, aggregate *rack.Rack) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.exec(ctx, func(s *state) error {
		id := aggregate.ID().String()
		if err := checkVersion(s, id, aggregate.Version()); err != nil {
			return err
		}
		delete(s.racks, id)
		return nil
	})
}

func (r *RackRepository) Get(ctx context.Context, id rack.ID) (*rack.Rack, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var found *rack.Rack
	err := r.exec(ctx, func(s *state) error {
		row, ok := s.racks[id.String()]
		if !ok {
			return errs.NewObjectNotFoundError(rackParam, id.String())
		}

		var err error
		found, err = rowToRack(id.String(), row)
		return err
	})
	return found, err
}

func (r *RackRepository) ListAllocatable(ctx context.Context) ([]*rack.Rack, error) {
	return r.list(ctx, func(row rackRow) bool {
		return row.status == rack.Available && row.occupancy < row.capacity
	})
}

func (r *RackRepository) ListBySection(ctx context.Context, section string) ([]*rack.Rack, error) {
	return r.list(ctx, func(row rackRow) bool {
		return row.section == section
	})
}

func (r *RackRepository) list(ctx context.Context, keep func(rackRow) bool) ([]*rack.Rack, error) {
	var result []*rack.Rack
	err := r.exec(ctx, func(s *state) error {
		ids := make([]string, 0, len(s.racks))
		for id, row := range s.racks {
			if keep(row) {
				ids = append(ids, id)
			}
		}
		slices.Sort(ids)

		result = make([]*rack.Rack, 0, len(ids))
		for _, id := range ids {
			restored, err := rowToRack(id, s.racks[id])
			if err != nil {
				return err
			}
			result = append(result, restored)
		}
		return nil
	})
	return result, err
}

func checkVersion(s *state, id string, version int64) error {
	row, ok := s.racks[id]
	if !ok {
		return errs.NewObjectNotFoundError(rackParam, id)
	}
	if row.version != version {
		return errs.NewVersionIsInvalidErrorWithCause(rackParam)
	}
	return nil
}

func rackToRow(r *rack.Rack) rackRow {
	return rackRow{
		section:     r.Section(),
		capacity:    r.Capacity(),
		occupancy:   r.Occupancy(),
		status:      r.Status(),
		description: r.Description(),
		version:     r.Version(),
		createdAt:   r.CreatedAt(),
		updatedAt:   r.UpdatedAt(),
	}
}

func rowToRack(id string, row rackRow) (*rack.Rack, error) {
	parsed, err := rack.ParseID(id)
	if err != nil {
		return nil, err
	}

	return rack.RestoreRack(
		parsed,
		row.section,
		row.capacity,
		row.occupancy,
		row.status,
		row.description,
		row.version,
		row.createdAt,
		row.updatedAt,
	)
}

// SectionRepository implements ports.SectionRepository on a Store.
type SectionRepository struct {
	exec executor
}

func (r *SectionRepository) Ensure(ctx context.Context, name string) error {
	return r.exec(ctx, func(s *state) error {
		if _, ok := s.sections[name]; !ok {
			s.sections[name] = nowUTC()
		}
		return nil
	})
}

func (r *SectionRepository) DeleteIfEmpty(ctx context.Context, name string) (bool, error) {
	var deleted bool
	err := r.exec(ctx, func(s *state) error {
		if _, ok := s.sections[name]; !ok {
			return nil
		}
		for _, row := range s.racks {
			if row.section == name {
				return nil
			}
		}
		delete(s.sections, name)
		deleted = true
		return nil
	})
	return deleted, err
}
