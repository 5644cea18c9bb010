package billingrepo

import (
	"context"

	"warehouse/internal/adapters/out/postgres/pgerr"
	"warehouse/internal/core/domain/model/billing"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPricingRepository implements ports.PricingRepository on a single row.
type GormPricingRepository struct {
	db *gorm.DB
}

func NewGormPricingRepository(db *gorm.DB) *GormPricingRepository {
	return &GormPricingRepository{db: db}
}

// Get returns errs.ErrObjectNotFound until the tariff was saved or seeded.
func (r *GormPricingRepository) Get(ctx context.Context) (billing.Pricing, error) {
	var dto PricingDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", pricingRowID).Error; err != nil {
		return billing.Pricing{}, pgerr.Translate("get pricing", "pricing", pricingRowID, err)
	}

	return pricingToDomain(dto)
}

// Save upserts the pricing row.
func (r *GormPricingRepository) Save(ctx context.Context, pricing billing.Pricing) error {
	if err := pricing.Validate(); err != nil {
		return err
	}

	dto := pricingFromDomain(pricing)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
	return pgerr.Translate("save pricing", "pricing", pricingRowID, err)
}
