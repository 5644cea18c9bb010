package billing

import (
	"fmt"
	"regexp"
	"time"

	"warehouse/internal/pkg/errs"
)

// MaxDailyInvoices is the largest per-day sequence an invoice number can carry.
const MaxDailyInvoices = 999999

var invoiceNumberPattern = regexp.MustCompile(`^INV\d{14}$`)

// InvoiceNumber is "INV" + YYYYMMDD + a 6-digit per-day sequence. The sequence
// comes from an atomic counter, so numbers are unique across terminals.
type InvoiceNumber struct {
	value string
}

// NewInvoiceNumber formats the number of the sequence-th invoice issued on day.
func NewInvoiceNumber(day time.Time, sequence int) (InvoiceNumber, error) {
	if sequence < 1 || sequence > MaxDailyInvoices {
		return InvoiceNumber{}, errs.NewValueIsOutOfRangeError("invoice sequence", sequence, 1, MaxDailyInvoices)
	}
	return InvoiceNumber{value: fmt.Sprintf("INV%s%06d", day.Format("20060102"), sequence)}, nil
}

// ParseInvoiceNumber validates a number received from a client or from storage.
func ParseInvoiceNumber(s string) (InvoiceNumber, error) {
	if s == "" {
		return InvoiceNumber{}, errs.NewValueIsRequiredError("invoiceNumber")
	}
	if !invoiceNumberPattern.MatchString(s) {
		return InvoiceNumber{}, errs.NewValueIsInvalidErrorWithCause("invoiceNumber",
			fmt.Errorf("%q does not match INV + 14 digits", s))
	}
	return InvoiceNumber{value: s}, nil
}

// InvoiceSequenceName returns the per-day counter name for invoices issued on day.
func InvoiceSequenceName(day time.Time) string {
	return "invoice:" + day.Format("20060102")
}

// String returns the invoice number text.
func (n InvoiceNumber) String() string {
	return n.value
}

// Validate rejects the zero number.
func (n InvoiceNumber) Validate() error {
	if n.value == "" {
		return errs.NewValueIsRequiredError("invoiceNumber")
	}
	return nil
}
