package rack

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"warehouse/internal/pkg/errs"
)

const (
	// MinNumber and MaxNumber bound the numeric part of a rack identifier.
	MinNumber = 1
	MaxNumber = 999
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ID is the globally unique, immutable rack identifier `{section}[-{prefix}]-{NNN}`.
type ID struct {
	value string
}

// NewID builds the identifier of rack number within section.
//
// Example:
//
//	id, _ := rack.NewID("A", "", 7)     // "A-007"
//	id, _ = rack.NewID("COLD", "R", 12) // "COLD-R-012"
func NewID(section, prefix string, number int) (ID, error) {
	if err := errors.Join(
		validateSectionName(section),
		validatePrefix(prefix),
		validateNumber(number),
	); err != nil {
		return ID{}, err
	}

	if prefix == "" {
		return ID{value: fmt.Sprintf("%s-%03d", section, number)}, nil
	}
	return ID{value: fmt.Sprintf("%s-%s-%03d", section, prefix, number)}, nil
}

// ParseID accepts an identifier received from a client or from storage.
// Only the overall shape is checked; the owning section comes from the rack itself.
func ParseID(s string) (ID, error) {
	if strings.TrimSpace(s) == "" {
		return ID{}, errs.NewValueIsRequiredError("rackId")
	}
	if strings.ContainsAny(s, " \t\r\n/") {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("rackId", fmt.Errorf("%q contains separators", s))
	}
	return ID{value: s}, nil
}

// String returns the identifier text.
func (id ID) String() string {
	return id.value
}

// IsZero reports whether the identifier was never set.
func (id ID) IsZero() bool {
	return id.value == ""
}

// Less orders identifiers lexically, which is the allocation tie-break.
func (id ID) Less(other ID) bool {
	return id.value < other.value
}

// Validate rejects the zero identifier.
func (id ID) Validate() error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("rackId")
	}
	return nil
}

func validateSectionName(section string) error {
	if section == "" {
		return errs.NewValueIsRequiredError("section")
	}
	if !namePattern.MatchString(section) {
		return errs.NewValueIsInvalidErrorWithCause("section", fmt.Errorf("%q must be letters, digits or underscores", section))
	}
	return nil
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	if !namePattern.MatchString(prefix) {
		return errs.NewValueIsInvalidErrorWithCause("prefix", fmt.Errorf("%q must be letters, digits or underscores", prefix))
	}
	return nil
}

func validateNumber(number int) error {
	if number < MinNumber || number > MaxNumber {
		return errs.NewValueIsOutOfRangeError("rack number", number, MinNumber, MaxNumber)
	}
	return nil
}
