package commands_test

import (
	"context"
	"time"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/billing"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/clock"

	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2025, 9, 28, 10, 15, 0, 0, time.UTC)

func testClock() *clock.Manual {
	return clock.NewManual(testNow)
}

type MockRackRepository struct{ mock.Mock }

func (m *MockRackRepository) Add(ctx context.Context, r *rack.Rack) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRackRepository) Update(ctx context.Context, r *rack.Rack) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRackRepository) Delete(ctx context.Context, r *rack.Rack) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRackRepository) Get(ctx context.Context, id rack.ID) (*rack.Rack, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rack.Rack), args.Error(1)
}

func (m *MockRackRepository) ListAllocatable(ctx context.Context) ([]*rack.Rack, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rack.Rack), args.Error(1)
}

func (m *MockRackRepository) ListBySection(ctx context.Context, section string) ([]*rack.Rack, error) {
	args := m.Called(ctx, section)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rack.Rack), args.Error(1)
}

type MockSectionRepository struct{ mock.Mock }

func (m *MockSectionRepository) Ensure(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockSectionRepository) DeleteIfEmpty(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByBarcode(ctx context.Context, barcode shipment.Barcode) (*shipment.Shipment, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) ListReleasedWithoutInvoice(ctx context.Context, limit int) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

type MockInvoiceRepository struct{ mock.Mock }

func (m *MockInvoiceRepository) Add(ctx context.Context, inv *billing.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) GetByNumber(ctx context.Context, number billing.InvoiceNumber) (*billing.Invoice, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetByShipment(ctx context.Context, shipmentID kernel.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

type MockPricingRepository struct{ mock.Mock }

func (m *MockPricingRepository) Get(ctx context.Context) (billing.Pricing, error) {
	args := m.Called(ctx)
	return args.Get(0).(billing.Pricing), args.Error(1)
}

func (m *MockPricingRepository) Save(ctx context.Context, p billing.Pricing) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockSequenceRepository struct{ mock.Mock }

func (m *MockSequenceRepository) Next(ctx context.Context, name string) (int, error) {
	args := m.Called(ctx, name)
	return args.Int(0), args.Error(1)
}

// MockUoW satisfies every narrow unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) RackRepository() ports.RackRepository {
	args := m.Called()
	return args.Get(0).(ports.RackRepository)
}

func (m *MockUoW) SectionRepository() ports.SectionRepository {
	args := m.Called()
	return args.Get(0).(ports.SectionRepository)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) InvoiceRepository() ports.InvoiceRepository {
	args := m.Called()
	return args.Get(0).(ports.InvoiceRepository)
}

func (m *MockUoW) PricingRepository() ports.PricingRepository {
	args := m.Called()
	return args.Get(0).(ports.PricingRepository)
}

func (m *MockUoW) SequenceRepository() ports.SequenceRepository {
	args := m.Called()
	return args.Get(0).(ports.SequenceRepository)
}

type MockRackUoWFactory struct{ mock.Mock }

func (m *MockRackUoWFactory) Create() commands.RackUoW {
	args := m.Called()
	return args.Get(0).(commands.RackUoW)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockInvoiceUoWFactory struct{ mock.Mock }

func (m *MockInvoiceUoWFactory) Create() commands.InvoiceUoW {
	args := m.Called()
	return args.Get(0).(commands.InvoiceUoW)
}

type MockPricingUoWFactory struct{ mock.Mock }

func (m *MockPricingUoWFactory) Create() commands.PricingUoW {
	args := m.Called()
	return args.Get(0).(commands.PricingUoW)
}

type MockPricingProvider struct{ mock.Mock }

func (m *MockPricingProvider) Get(ctx context.Context) (billing.Pricing, error) {
	args := m.Called(ctx)
	return args.Get(0).(billing.Pricing), args.Error(1)
}

func (m *MockPricingProvider) Invalidate() {
	m.Called()
}

type MockInvoiceArchive struct{ mock.Mock }

func (m *MockInvoiceArchive) Archive(ctx context.Context, inv *billing.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

type MockInvoiceIssuer struct{ mock.Mock }

func (m *MockInvoiceIssuer) Handle(ctx context.Context, cmd commands.IssueInvoiceCommand) (commands.IssueInvoiceResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.IssueInvoiceResult), args.Error(1)
}
