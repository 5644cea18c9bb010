package rack

import "sort"

// Section groups racks created from one or more ranges. It exists while it
// owns at least one rack.
type Section struct {
	name    string
	rackIDs []ID
}

// NewSection builds a section view from its racks, ordering them by identifier.
func NewSection(name string, rackIDs []ID) (Section, error) {
	if err := validateSectionName(name); err != nil {
		return Section{}, err
	}

	ids := append([]ID(nil), rackIDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })

	return Section{name: name, rackIDs: ids}, nil
}

// Name returns the section name.
func (s Section) Name() string {
	return s.name
}

// RackIDs returns the ordered rack identifiers.
func (s Section) RackIDs() []ID {
	return append([]ID(nil), s.rackIDs...)
}

// IsEmpty reports whether the section lost its last rack.
func (s Section) IsEmpty() bool {
	return len(s.rackIDs) == 0
}
