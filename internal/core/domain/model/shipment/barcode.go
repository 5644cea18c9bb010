package shipment

import (
	"fmt"
	"regexp"
	"time"

	"warehouse/internal/pkg/errs"
)

const (
	// MaxDailyBarcodes is the largest per-day counter a barcode can carry.
	MaxDailyBarcodes = 9999

	barcodePrefix = "WH"
)

var barcodePattern = regexp.MustCompile(`^WH\d{10}$`)

// Barcode identifies a shipment on labels: "WH" + YYMMDD + a 4-digit per-day counter.
type Barcode struct {
	value string
}

// NewBarcode formats the barcode of the counter-th intake on day.
// counter comes from an atomic per-day sequence; values above MaxDailyBarcodes
// would break the fixed width and are rejected.
//
// Example:
//
//	b, _ := shipment.NewBarcode(time.Date(2025, 9, 28, 0, 0, 0, 0, time.UTC), 1234)
//	b.String() // "WH2509281234"
func NewBarcode(day time.Time, counter int) (Barcode, error) {
	if counter < 1 || counter > MaxDailyBarcodes {
		return Barcode{}, errs.NewValueIsOutOfRangeErrorWithCause("barcode counter", counter, 1, MaxDailyBarcodes,
			fmt.Errorf("daily barcode sequence for %s is exhausted or invalid", day.Format(time.DateOnly)))
	}
	return Barcode{value: fmt.Sprintf("%s%s%04d", barcodePrefix, day.Format("060102"), counter)}, nil
}

// ParseBarcode validates a barcode typed or scanned by an operator.
func ParseBarcode(s string) (Barcode, error) {
	if s == "" {
		return Barcode{}, errs.NewValueIsRequiredError("barcode")
	}
	if !barcodePattern.MatchString(s) {
		return Barcode{}, errs.NewValueIsInvalidErrorWithCause("barcode", fmt.Errorf("%q does not match WH + 10 digits", s))
	}
	return Barcode{value: s}, nil
}

// SequenceName returns the name of the per-day counter used for barcodes issued on day.
func SequenceName(day time.Time) string {
	return "barcode:" + day.Format("060102")
}

// String returns the barcode text.
func (b Barcode) String() string {
	return b.value
}

// IsZero reports whether the barcode was never set.
func (b Barcode) IsZero() bool {
	return b.value == ""
}

// Validate rejects the zero barcode.
func (b Barcode) Validate() error {
	if b.IsZero() {
		return errs.NewValueIsRequiredError("barcode")
	}
	return nil
}
