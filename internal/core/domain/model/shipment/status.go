package shipment

import (
	"fmt"
	"strings"

	"warehouse/internal/pkg/errs"
)

// Status is the lifecycle state of a shipment.
//
//	In ──release──> Out
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// In means the shipment is stored and counted in its rack's occupancy.
	In

	// Out means the shipment was released. Final.
	Out
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown: "unknown",
		In:      "in",
		Out:     "out",
	}
}

// ParseStatus converts the persisted or transported name back into a Status.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(s) {
	case "in":
		return In, nil
	case "out":
		return Out, nil
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a shipment status", s))
	}
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s != In && s != Out {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid shipment status", s))
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
