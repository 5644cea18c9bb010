package commands

import (
	"errors"
	"fmt"
	"strings"

	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrCreateRackRangeCommandIsNotConstructed = errors.New(
	"CreateRackRangeCommand must be created via NewCreateRackRangeCommand constructor",
)

// CreateRackRangeCommand registers racks {section}[-{prefix}]-{start..end}.
//
// Example:
//
//	cmd, err := NewCreateRackRangeCommand("A", "", 1, 20, 0, "ground floor", false)
//	if err != nil {
//	    return fmt.Errorf("invalid range: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
//	fmt.Printf("created %d, skipped %d\n", len(result.Created), len(result.Skipped))
type CreateRackRangeCommand struct { //nolint:recvcheck //using for validation
	rng             rack.Range
	capacity        int
	description     string
	replaceExisting bool

	guard guard.ConstructorGuard
}

// NewCreateRackRangeCommand validates the range and the rack settings.
// A zero capacity means rack.DefaultCapacity. With replaceExisting set, empty
// racks that already exist are re-initialised instead of skipped.
func NewCreateRackRangeCommand(
	section, prefix string,
	start, end int,
	capacity int,
	description string,
	replaceExisting bool,
) (CreateRackRangeCommand, error) {
	cmd := CreateRackRangeCommand{
		description:     strings.TrimSpace(description),
		replaceExisting: replaceExisting,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRange(section, prefix, start, end),
		cmd.setCapacity(capacity),
	); err != nil {
		return CreateRackRangeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRackRangeCommand) Validate() error {
	return c.guard.Validate(ErrCreateRackRangeCommandIsNotConstructed)
}

func (c CreateRackRangeCommand) Range() rack.Range {
	return c.rng
}

func (c CreateRackRangeCommand) Capacity() int {
	return c.capacity
}

func (c CreateRackRangeCommand) Description() string {
	return c.description
}

func (c CreateRackRangeCommand) ReplaceExisting() bool {
	return c.replaceExisting
}

func (c *CreateRackRangeCommand) setRange(section, prefix string, start, end int) error {
	rng, err := rack.NewRange(section, prefix, start, end)
	if err != nil {
		return err
	}

	c.rng = rng
	return nil
}

func (c *CreateRackRangeCommand) setCapacity(capacity int) error {
	if capacity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity", fmt.Errorf("%d is negative", capacity))
	}
	if capacity == 0 {
		capacity = rack.DefaultCapacity
	}

	c.capacity = capacity
	return nil
}
