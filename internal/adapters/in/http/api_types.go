package http

import (
	"time"

	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/rack"

	"github.com/shopspring/decimal"
)

// Request and response bodies of the /api/v1 endpoints. Field names follow
// api/openapi.yaml.

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewRackRange struct {
	Section         string  `json:"section"`
	Prefix          *string `json:"prefix,omitempty"`
	Start           int     `json:"start"`
	End             int     `json:"end"`
	Capacity        *int    `json:"capacity,omitempty"`
	Description     *string `json:"description,omitempty"`
	ReplaceExisting *bool   `json:"replaceExisting,omitempty"`
}

type RackRangeResult struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
	Updated []string `json:"updated"`
}

type CapacityUpdate struct {
	Capacity int `json:"capacity"`
}

type StatusUpdate struct {
	Enabled bool `json:"enabled"`
}

type NewShipment struct {
	Shipper       string          `json:"shipper"`
	Consignee     string          `json:"consignee"`
	Weight        decimal.Decimal `json:"weight"`
	PieceCount    int             `json:"pieceCount"`
	PreferredRack *string         `json:"preferredRack,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
}

type Invoice struct {
	queries.InvoiceView
	ArchiveError *string `json:"archiveError,omitempty"`
}

type ReleaseResult struct {
	Shipment     queries.ShipmentView `json:"shipment"`
	Invoice      *Invoice             `json:"invoice,omitempty"`
	InvoiceError *string              `json:"invoiceError,omitempty"`
	ArchiveError *string              `json:"archiveError,omitempty"`
}

type Pricing struct {
	PerKgDayRate    decimal.Decimal `json:"perKgDayRate"`
	HandlingFee     decimal.Decimal `json:"handlingFee"`
	FlatRate        decimal.Decimal `json:"flatRate"`
	FreeDays        int             `json:"freeDays"`
	PerKgDayEnabled bool            `json:"perKgDayEnabled"`
	HandlingEnabled bool            `json:"handlingEnabled"`
	FlatRateEnabled bool            `json:"flatRateEnabled"`
	UpdatedAt       *time.Time      `json:"updatedAt,omitempty"`
}

// ListRacksParams are the query parameters of ListRacks.
type ListRacksParams struct {
	Section *string `form:"section,omitempty" json:"section,omitempty"`
	Status  *string `form:"status,omitempty" json:"status,omitempty"`
}

// GetRackStatisticsParams are the query parameters of GetRackStatistics.
type GetRackStatisticsParams struct {
	Section *string `form:"section,omitempty" json:"section,omitempty"`
}

// ListShipmentsParams are the query parameters of ListShipments.
type ListShipmentsParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
	RackID *string `form:"rackId,omitempty" json:"rackId,omitempty"`
	Limit  *int    `form:"limit,omitempty" json:"limit,omitempty"`
	Offset *int    `form:"offset,omitempty" json:"offset,omitempty"`
}

func rackIDs(ids []rack.ID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func errorString(err error) *string {
	if err == nil {
		return nil
	}
	s := err.Error()
	return &s
}
