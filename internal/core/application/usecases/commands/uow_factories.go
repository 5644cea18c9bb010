package commands

import "warehouse/internal/core/ports"

// Func adapters turn a closure into a narrow unit of work factory, so a single
// ports.UnitOfWorkFactory can serve every handler.
//
// Example:
//
//	var f RackUoWFactory = FuncRackUoWFactory(func() RackUoW {
//	    return uowFactory.Create()
//	})
type (
	FuncRackUoWFactory     func() RackUoW
	FuncShipmentUoWFactory func() ShipmentUoW
	FuncInvoiceUoWFactory  func() InvoiceUoW
	FuncPricingUoWFactory  func() PricingUoW
)

func (f FuncRackUoWFactory) Create() RackUoW {
	return f()
}

func (f FuncShipmentUoWFactory) Create() ShipmentUoW {
	return f()
}

func (f FuncInvoiceUoWFactory) Create() InvoiceUoW {
	return f()
}

func (f FuncPricingUoWFactory) Create() PricingUoW {
	return f()
}

// Factories narrows one ports.UnitOfWorkFactory to every handler's factory type.
type Factories struct {
	Rack     RackUoWFactory
	Shipment ShipmentUoWFactory
	Invoice  InvoiceUoWFactory
	Pricing  PricingUoWFactory
}

// NewFactories adapts uowFactory for all command handlers.
func NewFactories(uowFactory ports.UnitOfWorkFactory) Factories {
	return Factories{
		Rack: FuncRackUoWFactory(func() RackUoW {
			return uowFactory.Create()
		}),
		Shipment: FuncShipmentUoWFactory(func() ShipmentUoW {
			return uowFactory.Create()
		}),
		Invoice: FuncInvoiceUoWFactory(func() InvoiceUoW {
			return uowFactory.Create()
		}),
		Pricing: FuncPricingUoWFactory(func() PricingUoW {
			return uowFactory.Create()
		}),
	}
}
