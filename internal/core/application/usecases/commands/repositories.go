// Package commands contains the business operations that change warehouse state.
//
// Every handler follows the same shape: validate the command, open a unit of
// work, load aggregates, let the domain decide, persist, commit. Handlers run
// their unit of work inside retry.Do so optimistic concurrency conflicts and
// backend hiccups are retried with a fresh unit of work.
package commands

import (
	"context"

	"warehouse/internal/core/ports"
)

// Unit of Work interfaces narrow the transaction to the repositories a handler needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RackRepoFactory provides access to the rack repository within a transaction.
	RackRepoFactory interface {
		RackRepository() ports.RackRepository
	}

	// SectionRepoFactory provides access to the section repository within a transaction.
	SectionRepoFactory interface {
		SectionRepository() ports.SectionRepository
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// InvoiceRepoFactory provides access to the invoice repository within a transaction.
	InvoiceRepoFactory interface {
		InvoiceRepository() ports.InvoiceRepository
	}

	// PricingRepoFactory provides access to the pricing repository within a transaction.
	PricingRepoFactory interface {
		PricingRepository() ports.PricingRepository
	}

	// SequenceRepoFactory provides access to the shared counters within a transaction.
	SequenceRepoFactory interface {
		SequenceRepository() ports.SequenceRepository
	}

	// RackUoW manages transactions of the rack registry.
	RackUoW interface {
		TxManager
		RackRepoFactory
		SectionRepoFactory
	}

	// RackUoWFactory creates new rack unit of work instances.
	RackUoWFactory interface {
		Create() RackUoW
	}

	// ShipmentUoW manages intake and release, which move shipments and rack
	// occupancy together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   racks := uow.RackRepository()
	//   shipments := uow.ShipmentRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	ShipmentUoW interface {
		TxManager
		RackRepoFactory
		ShipmentRepoFactory
		SequenceRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// InvoiceUoW manages billing of released shipments.
	InvoiceUoW interface {
		TxManager
		ShipmentRepoFactory
		InvoiceRepoFactory
		SequenceRepoFactory
	}

	// InvoiceUoWFactory creates new invoice unit of work instances.
	InvoiceUoWFactory interface {
		Create() InvoiceUoW
	}

	// PricingUoW manages tariff updates.
	PricingUoW interface {
		TxManager
		PricingRepoFactory
	}

	// PricingUoWFactory creates new pricing unit of work instances.
	PricingUoWFactory interface {
		Create() PricingUoW
	}
)
