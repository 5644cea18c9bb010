package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/pkg/guard"
)

var ErrDeleteRackCommandIsNotConstructed = errors.New(
	"DeleteRackCommand must be created via NewDeleteRackCommand constructor",
)

// DeleteRackCommand removes an empty rack.
type DeleteRackCommand struct { //nolint:recvcheck //using for validation
	rackID rack.ID

	guard guard.ConstructorGuard
}

// NewDeleteRackCommand parses the rack identifier.
func NewDeleteRackCommand(rackID string) (DeleteRackCommand, error) {
	id, err := rack.ParseID(rackID)
	if err != nil {
		return DeleteRackCommand{}, err
	}

	return DeleteRackCommand{
		rackID: id,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteRackCommand) Validate() error {
	return c.guard.Validate(ErrDeleteRackCommandIsNotConstructed)
}

func (c DeleteRackCommand) RackID() rack.ID {
	return c.rackID
}
