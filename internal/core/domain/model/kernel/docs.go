// Package kernel provides the value objects shared by every warehouse aggregate.
//
// The package includes:
//   - UUID: identifier of shipments and invoices, wrapping github.com/google/uuid
//   - Amount helpers: decimal rounding rules for weights and money
//
// Values are immutable and safe for concurrent use.
package kernel
