// Package services provides domain services that coordinate several aggregates
// of the warehouse model.
//
// The package includes:
//   - RackAllocator: picks the rack that receives a new shipment
//   - ChargeCalculator: turns a shipment and the tariff into a charge breakdown
package services
