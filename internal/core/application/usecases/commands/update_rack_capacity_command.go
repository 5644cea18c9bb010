package commands

import (
	"errors"
	"fmt"

	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrUpdateRackCapacityCommandIsNotConstructed = errors.New(
	"UpdateRackCapacityCommand must be created via NewUpdateRackCapacityCommand constructor",
)

// UpdateRackCapacityCommand changes how many shipments a rack can hold.
type UpdateRackCapacityCommand struct { //nolint:recvcheck //using for validation
	rackID   rack.ID
	capacity int

	guard guard.ConstructorGuard
}

// NewUpdateRackCapacityCommand validates the identifier and the new capacity.
func NewUpdateRackCapacityCommand(rackID string, capacity int) (UpdateRackCapacityCommand, error) {
	cmd := UpdateRackCapacityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRackID(rackID),
		cmd.setCapacity(capacity),
	); err != nil {
		return UpdateRackCapacityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateRackCapacityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRackCapacityCommandIsNotConstructed)
}

func (c UpdateRackCapacityCommand) RackID() rack.ID {
	return c.rackID
}

func (c UpdateRackCapacityCommand) Capacity() int {
	return c.capacity
}

func (c *UpdateRackCapacityCommand) setRackID(rackID string) error {
	id, err := rack.ParseID(rackID)
	if err != nil {
		return err
	}

	c.rackID = id
	return nil
}

func (c *UpdateRackCapacityCommand) setCapacity(capacity int) error {
	if capacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity", fmt.Errorf("%d is not greater than 0", capacity))
	}

	c.capacity = capacity
	return nil
}
