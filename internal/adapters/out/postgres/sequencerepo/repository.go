// Package sequencerepo hands out per-name counters used for barcode and
// invoice number suffixes. Every increment is a single upsert, so two
// transactions can never draw the same value.
package sequencerepo

import (
	"context"

	"warehouse/internal/adapters/out/postgres/pgerr"

	"gorm.io/gorm"
)

// SequenceDTO is the row layout of the sequences table.
type SequenceDTO struct {
	Name  string `gorm:"type:varchar(64);primaryKey"`
	Value int64  `gorm:"type:bigint;not null"`
}

func (SequenceDTO) TableName() string {
	return "sequences"
}

// GormSequenceRepository implements ports.SequenceRepository.
type GormSequenceRepository struct {
	db *gorm.DB
}

func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Next increments the named counter and returns the new value, starting at 1.
//
// Inside a unit of work the counter row stays locked until commit, and a
// rolled-back attempt gives its value back.
func (r *GormSequenceRepository) Next(ctx context.Context, name string) (int, error) {
	var value int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO sequences (name, value) VALUES (?, 1)
		ON CONFLICT (name) DO UPDATE SET value = sequences.value + 1
		RETURNING value
	`, name).Scan(&value).Error
	if err != nil {
		return 0, pgerr.Translate("next sequence value", "sequence", name, err)
	}

	return int(value), nil
}
