package memory

import (
	"context"
	"errors"

	"warehouse/internal/core/ports"
)

// ErrNoTransaction is returned by Commit and Rollback without an active transaction.
var ErrNoTransaction = errors.New("no active transaction")

// UnitOfWork is one transaction on a Store.
type UnitOfWork struct {
	store *Store
	tx    *state
}

// Begin waits for the store and starts working on a copy of its state.
// Calling Begin twice does not nest transactions.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	if err := uow.store.acquire(ctx); err != nil {
		return err
	}

	uow.tx = uow.store.committed.clone()
	return nil
}

// Commit publishes the copy and releases the store.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}

	uow.store.committed = uow.tx
	uow.tx = nil
	uow.store.release()
	return nil
}

// Rollback drops the copy and releases the store.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}

	uow.tx = nil
	uow.store.release()
	return nil
}

func (uow *UnitOfWork) RackRepository() ports.RackRepository {
	return &RackRepository{exec: uow.exec}
}

func (uow *UnitOfWork) SectionRepository() ports.SectionRepository {
	return &SectionRepository{exec: uow.exec}
}

func (uow *UnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return &ShipmentRepository{exec: uow.exec}
}

func (uow *UnitOfWork) InvoiceRepository() ports.InvoiceRepository {
	return &InvoiceRepository{exec: uow.exec}
}

func (uow *UnitOfWork) PricingRepository() ports.PricingRepository {
	return &PricingRepository{exec: uow.exec}
}

func (uow *UnitOfWork) SequenceRepository() ports.SequenceRepository {
	return &SequenceRepository{exec: uow.exec}
}

// exec runs fn on the transaction copy, or on the committed state under the
// store token when no transaction is active.
func (uow *UnitOfWork) exec(ctx context.Context, fn func(s *state) error) error {
	if uow.tx != nil {
		return fn(uow.tx)
	}

	if err := uow.store.acquire(ctx); err != nil {
		return err
	}
	defer uow.store.release()

	// Work on a copy so a failing write leaves nothing behind.
	draft := uow.store.committed.clone()
	if err := fn(draft); err != nil {
		return err
	}
	uow.store.committed = draft
	return nil
}

type executor func(ctx context.Context, fn func(s *state) error) error
