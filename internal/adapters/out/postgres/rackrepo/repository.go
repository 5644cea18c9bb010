package rackrepo

import (
	"context"

	"warehouse/internal/adapters/out/postgres/pgerr"
	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/pkg/errs"

	"gorm.io/gorm"
)

const param = "rack"

// GormRackRepository implements ports.RackRepository using GORM.
type GormRackRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormRackRepository creates a rack repository on db, which is either the
// pool or the transaction of a unit of work.
func NewGormRackRepository(db *gorm.DB, tracker aggregateTracker) *GormRackRepository {
	return &GormRackRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new rack. A duplicate ID is errs.ErrObjectAlreadyExists.
func (r *GormRackRepository) Add(ctx context.Context, aggregate *rack.Rack) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate("add rack", param, dto.ID, err)
	}

	r.tracker.TrackAggregate(dto.ID, aggregate)
	return nil
}

// Update writes the mutable columns if the stored version still equals the
// aggregate's version, then advances the aggregate to the new version.
//
//	UPDATE racks SET ..., version = version + 1 WHERE id = ? AND version = ?
func (r *GormRackRepository) Update(ctx context.Context, aggregate *rack.Rack) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RackDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"capacity":    dto.Capacity,
			"occupancy":   dto.Occupancy,
			"status":      dto.Status,
			"description": dto.Description,
			"updated_at":  dto.UpdatedAt,
			"version":     gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return pgerr.Translate("update rack", param, dto.ID, result.Error)
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, dto.ID)
	}

	aggregate.AdvanceVersion()
	r.tracker.TrackAggregate(dto.ID, aggregate)
	return nil
}

// Delete removes the rack under the same version check as Update.
func (r *GormRackRepository) Delete(ctx context.Context, aggregate *rack.Rack) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().String()
	result := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", id, aggregate.Version()).
		Delete(&RackDTO{})
	if result.Error != nil {
		return pgerr.Translate("delete rack", param, id, result.Error)
	}

	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, id)
	}

	r.tracker.TrackAggregate(id, aggregate)
	return nil
}

// Get loads a rack by ID.
func (r *GormRackRepository) Get(ctx context.Context, id rack.ID) (*rack.Rack, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RackDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		return nil, pgerr.Translate("get rack", param, id.String(), err)
	}

	return toDomain(dto)
}

// ListAllocatable returns enabled racks with a free slot ordered by ID.
// Such racks are exactly the ones stored as available.
func (r *GormRackRepository) ListAllocatable(ctx context.Context) ([]*rack.Rack, error) {
	var dtos []RackDTO
	if err := r.db.WithContext(ctx).
		Where("status = ? AND occupancy < capacity", rack.Available.String()).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Translate("list allocatable racks", param, "", err)
	}

	return toDomainList(dtos)
}

// ListBySection returns every rack of section ordered by ID.
func (r *GormRackRepository) ListBySection(ctx context.Context, section string) ([]*rack.Rack, error) {
	var dtos []RackDTO
	if err := r.db.WithContext(ctx).
		Where("section = ?", section).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Translate("list racks", "section", section, err)
	}

	return toDomainList(dtos)
}

func (r *GormRackRepository) missingOrStale(ctx context.Context, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&RackDTO{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return pgerr.Translate("check rack", param, id, err)
	}

	if count == 0 {
		return errs.NewObjectNotFoundError(param, id)
	}
	return errs.NewVersionIsInvalidErrorWithCause(param)
}
