package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment bypassed its constructors.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")
)

// Shipment is the aggregate root for one physical intake.
//
// Shipment follows these invariants:
//   - weight > 0, 1 <= pieceCount <= MaxPieces, shipper and consignee are present
//   - piece labels are derived from the barcode and fixed at intake
//   - status Out implies releasedAt is set and not before intakeAt
//   - status In implies the assigned rack counts this shipment in its occupancy
type Shipment struct {
	id         kernel.UUID
	barcode    Barcode
	shipper    string
	consignee  string
	weight     decimal.Decimal
	pieceCount int
	pieceIDs   []string
	rackID     rack.ID
	intakeAt   time.Time
	releasedAt *time.Time
	status     Status
	notes      string

	isConstructed bool
}

// Details carries the operator supplied attributes of an intake.
type Details struct {
	Shipper    string
	Consignee  string
	Weight     decimal.Decimal
	PieceCount int
	Notes      string
}

// Validate checks the operator input before any rack is allocated.
func (d Details) Validate() error {
	return errors.Join(
		validateParty("shipper", d.Shipper),
		validateParty("consignee", d.Consignee),
		validateWeight(d.Weight),
		validatePieceCount(d.PieceCount),
	)
}

// NewShipment registers a stored shipment in rackID.
//
// Parameters:
//   - id: new shipment identifier
//   - barcode: barcode issued for the intake day
//   - details: shipper, consignee, weight, piece count, notes
//   - rackID: rack whose occupancy was incremented for this shipment
//   - intakeAt: intake timestamp
//
// Returns:
//   - *Shipment: shipment in In status with its piece labels generated
//   - error: joined validation errors
//
// Example:
//
//	barcode, _ := shipment.NewBarcode(now, 1234)
//	s, err := shipment.NewShipment(kernel.NewUUID(), barcode, shipment.Details{
//	    Shipper:    "Acme Freight",
//	    Consignee:  "Globex",
//	    Weight:     decimal.RequireFromString("5.5"),
//	    PieceCount: 2,
//	}, rackID, now)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(s.PieceIDs()) // [WH2509281234-001 WH2509281234-002]
func NewShipment(id kernel.UUID, barcode Barcode, details Details, rackID rack.ID, intakeAt time.Time) (*Shipment, error) {
	s := &Shipment{
		status:        In,
		intakeAt:      intakeAt,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setBarcode(barcode),
		s.setRackID(rackID),
		details.Validate(),
	); err != nil {
		return nil, err
	}

	pieceIDs, err := GeneratePieceIDs(barcode, details.PieceCount)
	if err != nil {
		return nil, err
	}

	s.shipper = strings.TrimSpace(details.Shipper)
	s.consignee = strings.TrimSpace(details.Consignee)
	s.weight = details.Weight
	s.pieceCount = details.PieceCount
	s.pieceIDs = pieceIDs
	s.notes = strings.TrimSpace(details.Notes)
	return s, nil
}

// RestoreShipment rebuilds a shipment from storage.
// Stored piece labels are kept as persisted; missing ones are regenerated.
func RestoreShipment(
	id kernel.UUID,
	barcode Barcode,
	details Details,
	pieceIDs []string,
	rackID rack.ID,
	intakeAt time.Time,
	releasedAt *time.Time,
	status Status,
) (*Shipment, error) {
	s := &Shipment{
		intakeAt:      intakeAt,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setBarcode(barcode),
		s.setRackID(rackID),
		details.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if status == Out && releasedAt == nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("releasedAt", errors.New("released shipment has no release time"))
	}
	if status == In && releasedAt != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("releasedAt", errors.New("stored shipment has a release time"))
	}
	if releasedAt != nil && releasedAt.Before(intakeAt) {
		return nil, errs.NewValueIsInvalidErrorWithCause("releasedAt",
			fmt.Errorf("%s is before intake %s", releasedAt.Format(time.RFC3339), intakeAt.Format(time.RFC3339)))
	}

	if len(pieceIDs) == 0 {
		generated, err := GeneratePieceIDs(barcode, details.PieceCount)
		if err != nil {
			return nil, err
		}
		pieceIDs = generated
	}

	s.shipper = details.Shipper
	s.consignee = details.Consignee
	s.weight = details.Weight
	s.pieceCount = details.PieceCount
	s.pieceIDs = append([]string(nil), pieceIDs...)
	s.notes = details.Notes
	s.status = status
	if releasedAt != nil {
		released := *releasedAt
		s.releasedAt = &released
	}
	return s, nil
}

// Validate ensures the shipment was built by a constructor.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// ID returns the shipment identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// Barcode returns the shipment barcode.
func (s *Shipment) Barcode() Barcode {
	return s.barcode
}

// Shipper returns the sending party.
func (s *Shipment) Shipper() string {
	return s.shipper
}

// Consignee returns the receiving party.
func (s *Shipment) Consignee() string {
	return s.consignee
}

// Weight returns the weight in kilograms.
func (s *Shipment) Weight() decimal.Decimal {
	return s.weight
}

// PieceCount returns the number of pieces.
func (s *Shipment) PieceCount() int {
	return s.pieceCount
}

// PieceIDs returns a copy of the piece labels.
func (s *Shipment) PieceIDs() []string {
	return append([]string(nil), s.pieceIDs...)
}

// RackID returns the rack the shipment occupies (or occupied, once released).
func (s *Shipment) RackID() rack.ID {
	return s.rackID
}

// IntakeAt returns the intake timestamp.
func (s *Shipment) IntakeAt() time.Time {
	return s.intakeAt
}

// ReleasedAt returns the release timestamp, nil while stored.
func (s *Shipment) ReleasedAt() *time.Time {
	if s.releasedAt == nil {
		return nil
	}
	released := *s.releasedAt
	return &released
}

// Status returns the lifecycle status.
func (s *Shipment) Status() Status {
	return s.status
}

// Notes returns the operator notes.
func (s *Shipment) Notes() string {
	return s.notes
}

// IsReleased reports whether the shipment left the warehouse.
func (s *Shipment) IsReleased() bool {
	return s.status == Out
}

// Release marks the shipment as gone at now.
// A second release fails with errs.ErrAlreadyReleased and changes nothing.
func (s *Shipment) Release(now time.Time) error {
	if s.status == Out {
		return errs.NewAlreadyReleasedError("shipment", s.id.String())
	}
	if s.status != In {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s shipment cannot be released", s.status))
	}

	releasedAt := now
	if releasedAt.Before(s.intakeAt) {
		releasedAt = s.intakeAt
	}

	s.status = Out
	s.releasedAt = &releasedAt
	return nil
}

// StorageDays returns the billable duration: up to the release for released
// shipments, up to now for stored ones.
func (s *Shipment) StorageDays(now time.Time) int {
	end := now
	if s.releasedAt != nil {
		end = *s.releasedAt
	}
	return StorageDays(s.intakeAt, end)
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setBarcode(barcode Barcode) error {
	if err := barcode.Validate(); err != nil {
		return err
	}
	s.barcode = barcode
	return nil
}

func (s *Shipment) setRackID(rackID rack.ID) error {
	if err := rackID.Validate(); err != nil {
		return err
	}
	s.rackID = rackID
	return nil
}

func validateParty(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

func validateWeight(weight decimal.Decimal) error {
	if !weight.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%s is not greater than 0", weight))
	}
	return nil
}

func validatePieceCount(pieceCount int) error {
	if pieceCount < MinPieces || pieceCount > MaxPieces {
		return errs.NewValueIsOutOfRangeError("pieceCount", pieceCount, MinPieces, MaxPieces)
	}
	return nil
}
