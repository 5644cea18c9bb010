package rack

import (
	"fmt"
	"strings"

	"warehouse/internal/pkg/errs"
)

// Status is the allocation state of a rack.
//
//	Available <──> Full        (derived from occupancy)
//	    │           │
//	    └─> Disabled <┘        (operator decision, sticky until enabled)
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Available racks have spare capacity and accept allocations.
	Available

	// Full racks hold as many shipments as their capacity allows.
	Full

	// Disabled racks are excluded from allocation regardless of occupancy.
	Disabled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Available: "available",
		Full:      "full",
		Disabled:  "disabled",
	}
}

// ParseStatus converts the persisted or transported name back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a rack status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid rack status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid rack status", s))
	}
	return nil
}

// String returns the lowercase name used in storage and in the API.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// statusFor derives the status of an enabled rack from its load.
func statusFor(capacity, occupancy int) Status {
	if occupancy >= capacity {
		return Full
	}
	return Available
}
