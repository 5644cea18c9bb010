package commands

import (
	"errors"

	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

// MaxBillingBatch bounds one reconciliation pass.
const MaxBillingBatch = 500

var ErrBillPendingShipmentsCommandIsNotConstructed = errors.New(
	"BillPendingShipmentsCommand must be created via NewBillPendingShipmentsCommand constructor",
)

// BillPendingShipmentsCommand bills released shipments that have no invoice.
type BillPendingShipmentsCommand struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewBillPendingShipmentsCommand creates a pass over at most limit shipments.
func NewBillPendingShipmentsCommand(limit int) (BillPendingShipmentsCommand, error) {
	if limit < 1 || limit > MaxBillingBatch {
		return BillPendingShipmentsCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxBillingBatch)
	}

	return BillPendingShipmentsCommand{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c BillPendingShipmentsCommand) Validate() error {
	return c.guard.Validate(ErrBillPendingShipmentsCommandIsNotConstructed)
}

func (c BillPendingShipmentsCommand) Limit() int {
	return c.limit
}
