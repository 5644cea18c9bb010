package rack

import (
	"errors"
	"fmt"

	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

// ErrRangeIsNotConstructed is returned by Range.Validate for zero values.
var ErrRangeIsNotConstructed = errors.New("Range must be created via NewRange constructor")

// Range is a validated run of rack numbers inside one section.
type Range struct {
	section string
	prefix  string
	start   int
	end     int

	guard guard.ConstructorGuard
}

// NewRange validates the bounds of a rack range.
// Fails with errs.ErrRangeIsInvalid when start > end or either bound is not positive.
func NewRange(section, prefix string, start, end int) (Range, error) {
	if err := errors.Join(validateSectionName(section), validatePrefix(prefix)); err != nil {
		return Range{}, err
	}

	if start <= 0 || end <= 0 {
		return Range{}, errs.NewRangeIsInvalidErrorWithCause("rack numbers", start, end,
			errors.New("bounds must be positive"))
	}
	if start > end {
		return Range{}, errs.NewRangeIsInvalidErrorWithCause("rack numbers", start, end,
			fmt.Errorf("start %d is greater than end %d", start, end))
	}
	if end > MaxNumber {
		return Range{}, errs.NewRangeIsInvalidErrorWithCause("rack numbers", start, end,
			fmt.Errorf("end %d exceeds %d", end, MaxNumber))
	}

	return Range{
		section: section,
		prefix:  prefix,
		start:   start,
		end:     end,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the range was built through NewRange.
func (r Range) Validate() error {
	return r.guard.Validate(ErrRangeIsNotConstructed)
}

// Section returns the section every rack of the range belongs to.
func (r Range) Section() string {
	return r.section
}

// Prefix returns the optional identifier prefix.
func (r Range) Prefix() string {
	return r.prefix
}

// Start returns the first rack number.
func (r Range) Start() int {
	return r.start
}

// End returns the last rack number, inclusive.
func (r Range) End() int {
	return r.end
}

// Len returns how many racks the range spans.
func (r Range) Len() int {
	return r.end - r.start + 1
}

// IDs lists the identifiers of the range in ascending order.
func (r Range) IDs() []ID {
	ids := make([]ID, 0, r.Len())
	for n := r.start; n <= r.end; n++ {
		// bounds were validated by NewRange
		id, _ := NewID(r.section, r.prefix, n)
		ids = append(ids, id)
	}
	return ids
}
