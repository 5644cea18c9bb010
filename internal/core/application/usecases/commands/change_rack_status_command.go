package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/pkg/guard"
)

var ErrChangeRackStatusCommandIsNotConstructed = errors.New(
	"ChangeRackStatusCommand must be created via NewChangeRackStatusCommand constructor",
)

// ChangeRackStatusCommand takes a rack out of allocation or returns it.
type ChangeRackStatusCommand struct { //nolint:recvcheck //using for validation
	rackID  rack.ID
	enabled bool

	guard guard.ConstructorGuard
}

// NewChangeRackStatusCommand parses the rack identifier.
func NewChangeRackStatusCommand(rackID string, enabled bool) (ChangeRackStatusCommand, error) {
	id, err := rack.ParseID(rackID)
	if err != nil {
		return ChangeRackStatusCommand{}, err
	}

	return ChangeRackStatusCommand{
		rackID:  id,
		enabled: enabled,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeRackStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeRackStatusCommandIsNotConstructed)
}

func (c ChangeRackStatusCommand) RackID() rack.ID {
	return c.rackID
}

func (c ChangeRackStatusCommand) Enabled() bool {
	return c.enabled
}
