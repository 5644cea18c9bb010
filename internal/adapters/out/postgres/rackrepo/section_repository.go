package rackrepo

import (
	"context"
	"time"

	"warehouse/internal/adapters/out/postgres/pgerr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSectionRepository implements ports.SectionRepository using GORM.
type GormSectionRepository struct {
	db *gorm.DB
}

func NewGormSectionRepository(db *gorm.DB) *GormSectionRepository {
	return &GormSectionRepository{db: db}
}

// Ensure inserts the section unless it already exists.
func (r *GormSectionRepository) Ensure(ctx context.Context, name string) error {
	dto := SectionDTO{Name: name, CreatedAt: time.Now().UTC()}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
	return pgerr.Translate("ensure section", "section", name, err)
}

// DeleteIfEmpty removes the section when no rack refers to it any more.
func (r *GormSectionRepository) DeleteIfEmpty(ctx context.Context, name string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("name = ? AND NOT EXISTS (SELECT 1 FROM racks WHERE racks.section = sections.name)", name).
		Delete(&SectionDTO{})
	if result.Error != nil {
		return false, pgerr.Translate("delete section", "section", name, result.Error)
	}

	return result.RowsAffected > 0, nil
}
