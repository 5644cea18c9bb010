package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"warehouse/internal/core/domain/model/billing"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/retry"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type GetInvoiceQueryHandler struct {
	reader reader
}

func NewGetInvoiceQueryHandler(db *sqlx.DB, policy retry.Policy) GetInvoiceQueryHandler {
	return GetInvoiceQueryHandler{reader: newReader(db, policy)}
}

type invoiceRow struct {
	ID             string          `db:"id"`
	Number         string          `db:"number"`
	ShipmentID     string          `db:"shipment_id"`
	Snapshot       string          `db:"snapshot"`
	Items          string          `db:"items"`
	StorageDays    int             `db:"storage_days"`
	ChargeableDays int             `db:"chargeable_days"`
	Storage        decimal.Decimal `db:"storage"`
	Flat           decimal.Decimal `db:"flat"`
	Handling       decimal.Decimal `db:"handling"`
	Total          decimal.Decimal `db:"total"`
	IssuedAt       time.Time       `db:"issued_at"`
}

// Handle returns errs.ErrObjectNotFound when no invoice matches.
func (h GetInvoiceQueryHandler) Handle(ctx context.Context, query GetInvoiceQuery) (InvoiceView, error) {
	if err := query.Validate(); err != nil {
		return InvoiceView{}, err
	}

	var (
		where string
		key   string
	)
	if query.ByNumber() {
		where, key = "number = ?", query.Number().String()
	} else {
		where, key = "shipment_id = ?::uuid", query.ShipmentID().String()
	}

	row, err := getOne[invoiceRow](ctx, h.reader, "get invoice", `
		SELECT
			id::text          AS id,
			number,
			shipment_id::text AS shipment_id,
			snapshot::text    AS snapshot,
			items::text       AS items,
			storage_days,
			chargeable_days,
			storage::text     AS storage,
			flat::text        AS flat,
			handling::text    AS handling,
			total::text       AS total,
			issued_at
		FROM invoices
		WHERE `+where, key)
	if errors.Is(err, sql.ErrNoRows) {
		return InvoiceView{}, errs.NewObjectNotFoundError("invoice", key)
	}
	if err != nil {
		return InvoiceView{}, err
	}

	return row.toView()
}

func (r invoiceRow) toView() (InvoiceView, error) {
	id, err := kernel.UUIDFromString(r.ID)
	if err != nil {
		return InvoiceView{}, err
	}

	shipmentID, err := kernel.UUIDFromString(r.ShipmentID)
	if err != nil {
		return InvoiceView{}, err
	}

	var snapshot billing.Snapshot
	if err = json.Unmarshal([]byte(r.Snapshot), &snapshot); err != nil {
		return InvoiceView{}, err
	}

	items := make([]billing.ChargeItem, 0)
	if err = json.Unmarshal([]byte(r.Items), &items); err != nil {
		return InvoiceView{}, err
	}

	return InvoiceView{
		ID:             id,
		Number:         r.Number,
		ShipmentID:     shipmentID,
		Snapshot:       snapshot,
		StorageDays:    r.StorageDays,
		ChargeableDays: r.ChargeableDays,
		Storage:        r.Storage,
		Flat:           r.Flat,
		Handling:       r.Handling,
		Total:          r.Total,
		Items:          items,
		IssuedAt:       r.IssuedAt,
	}, nil
}
