// Package rackrepo persists racks and sections.
//
// Racks are written with optimistic concurrency: every update and delete is
// conditional on the version read by the caller, and a write that matches no
// row is reported as errs.ErrVersionIsInvalid so the command can re-read and retry.
package rackrepo

import (
	"time"

	"warehouse/internal/core/domain/model/rack"
)

// RackDTO is the row layout of the racks table.
type RackDTO struct {
	ID          string    `gorm:"type:varchar(64);primaryKey"`
	Section     string    `gorm:"type:varchar(64);not null;index"`
	Capacity    int       `gorm:"type:int;not null;check:capacity > 0"`
	Occupancy   int       `gorm:"type:int;not null;default:0;check:occupancy >= 0"`
	Status      string    `gorm:"type:varchar(16);not null;index"`
	Description string    `gorm:"type:text;not null;default:''"`
	Version     int64     `gorm:"type:bigint;not null;default:0"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (RackDTO) TableName() string {
	return "racks"
}

// SectionDTO is the row layout of the sections table. Racks refer to it by name.
type SectionDTO struct {
	Name      string    `gorm:"type:varchar(64);primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
}

func (SectionDTO) TableName() string {
	return "sections"
}

func fromDomain(r *rack.Rack) RackDTO {
	return RackDTO{
		ID:          r.ID().String(),
		Section:     r.Section(),
		Capacity:    r.Capacity(),
		Occupancy:   r.Occupancy(),
		Status:      r.Status().String(),
		Description: r.Description(),
		Version:     r.Version(),
		CreatedAt:   r.CreatedAt().UTC(),
		UpdatedAt:   r.UpdatedAt().UTC(),
	}
}

func toDomain(dto RackDTO) (*rack.Rack, error) {
	id, err := rack.ParseID(dto.ID)
	if err != nil {
		return nil, err
	}

	status, err := rack.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return rack.RestoreRack(
		id,
		dto.Section,
		dto.Capacity,
		dto.Occupancy,
		status,
		dto.Description,
		dto.Version,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func toDomainList(dtos []RackDTO) ([]*rack.Rack, error) {
	racks := make([]*rack.Rack, 0, len(dtos))
	for _, dto := range dtos {
		r, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		racks = append(racks, r)
	}
	return racks, nil
}
