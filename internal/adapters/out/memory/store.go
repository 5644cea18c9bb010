// Package memory keeps the warehouse state in process memory. It implements
// the same unit of work contract as the PostgreSQL adapter and backs the
// handler and HTTP tests; the serve command always uses PostgreSQL.
//
// Transactions are serialized: Begin takes the store for the lifetime of the
// unit of work and works on a private copy of the state, which Commit swaps
// in. Repositories used outside a transaction apply each write on its own.
package memory

import (
	"context"
	"maps"
	"time"

	"warehouse/internal/core/domain/model/billing"
	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/ports"

	"github.com/shopspring/decimal"
)

type rackRow struct {
	section     string
	capacity    int
	occupancy   int
	status      rack.Status
	description string
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

type shipmentRow struct {
	barcode    string
	shipper    string
	consignee  string
	weight     decimal.Decimal
	pieceCount int
	pieceIDs   []string
	rackID     string
	status     shipment.Status
	intakeAt   time.Time
	releasedAt *time.Time
	notes      string
}

type state struct {
	racks     map[string]rackRow
	sections  map[string]time.Time
	shipments map[string]shipmentRow
	barcodes  map[string]string
	// Invoices are immutable, so the aggregates are shared between copies.
	invoices       map[string]*billing.Invoice
	invoiceNumbers map[string]string
	pricing        *billing.Pricing
	sequences      map[string]int
}

func newState() *state {
	return &state{
		racks:          make(map[string]rackRow),
		sections:       make(map[string]time.Time),
		shipments:      make(map[string]shipmentRow),
		barcodes:       make(map[string]string),
		invoices:       make(map[string]*billing.Invoice),
		invoiceNumbers: make(map[string]string),
		sequences:      make(map[string]int),
	}
}

func (s *state) clone() *state {
	c := &state{
		racks:          maps.Clone(s.racks),
		sections:       maps.Clone(s.sections),
		shipments:      maps.Clone(s.shipments),
		barcodes:       maps.Clone(s.barcodes),
		invoices:       maps.Clone(s.invoices),
		invoiceNumbers: maps.Clone(s.invoiceNumbers),
		sequences:      maps.Clone(s.sequences),
	}
	if s.pricing != nil {
		p := *s.pricing
		c.pricing = &p
	}
	return c
}

// Store is the shared warehouse state. It is safe for concurrent use.
type Store struct {
	// sem holds one token; whoever owns it may read or write committed.
	sem       chan struct{}
	committed *state
}

// NewStore creates an empty store. Pricing is unset until saved.
func NewStore() *Store {
	s := &Store{
		sem:       make(chan struct{}, 1),
		committed: newState(),
	}
	s.sem <- struct{}{}
	return s
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case <-s.sem:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	s.sem <- struct{}{}
}

// UnitOfWorkFactory creates units of work on one Store.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory creates a factory for store.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}
