package shipmentrepo

import (
	"context"

	"warehouse/internal/adapters/out/postgres/pgerr"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/pkg/errs"

	"gorm.io/gorm"
)

const param = "shipment"

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a stored shipment. A duplicate barcode is errs.ErrObjectAlreadyExists.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate("add shipment", "barcode", dto.Barcode, err)
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

// Update persists a release. The write only matches a row that is still in
// status In, so of two concurrent releases the second one fails with
// errs.ErrAlreadyReleased.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id = ? AND status = ?", dto.ID, shipment.In.String()).
		Updates(map[string]any{
			"status":      dto.Status,
			"released_at": dto.ReleasedAt,
		})
	if result.Error != nil {
		return pgerr.Translate("update shipment", param, aggregate.ID().String(), result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&ShipmentDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return pgerr.Translate("check shipment", param, aggregate.ID().String(), err)
		}
		if count == 0 {
			return errs.NewObjectNotFoundError(param, aggregate.ID().String())
		}
		return errs.NewAlreadyReleasedError(param, aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.Translate("get shipment", param, id.String(), err)
	}

	return toDomain(dto)
}

func (r *GormShipmentRepository) GetByBarcode(ctx context.Context, barcode shipment.Barcode) (*shipment.Shipment, error) {
	if err := barcode.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "barcode = ?", barcode.String()).Error; err != nil {
		return nil, pgerr.Translate("get shipment", "barcode", barcode.String(), err)
	}

	return toDomain(dto)
}

// ListReleasedWithoutInvoice returns up to limit released shipments that have
// no invoice row, oldest release first.
func (r *GormShipmentRepository) ListReleasedWithoutInvoice(ctx context.Context, limit int) ([]*shipment.Shipment, error) {
	var dtos []ShipmentDTO
	if err := r.db.WithContext(ctx).
		Table("shipments").
		Select("shipments.*").
		Joins("LEFT JOIN invoices ON invoices.shipment_id = shipments.id").
		Where("shipments.status = ? AND invoices.id IS NULL", shipment.Out.String()).
		Order("shipments.released_at, shipments.id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, pgerr.Translate("list unbilled shipments", param, "", err)
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}
	return shipments, nil
}
