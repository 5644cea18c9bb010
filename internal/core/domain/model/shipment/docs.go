// Package shipment models a physical intake: its barcode, its piece labels, the
// rack it occupies and the in -> out lifecycle that ends with a release.
//
// Shipments are never deleted; a released shipment is the audit trail billing
// reads from.
package shipment
