package commands

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/retry"
)

// CreateRackRangeResult reports what happened to every identifier of the range.
type CreateRackRangeResult struct {
	Created []rack.ID
	Skipped []rack.ID
	Updated []rack.ID
}

// CreateRackRangeCommandHandler creates a section and its racks in one transaction.
//
// Existing identifiers are skipped and reported. When the command allows
// replacing, an existing empty rack is reset to the new capacity and
// description; occupied racks are always skipped.
type CreateRackRangeCommandHandler struct {
	uowFactory RackUoWFactory
	clock      ports.Clock
	policy     retry.Policy
}

// NewCreateRackRangeCommandHandler creates a handler for rack range creation.
func NewCreateRackRangeCommandHandler(
	uowFactory RackUoWFactory,
	clock ports.Clock,
	policy retry.Policy,
) CreateRackRangeCommandHandler {
	return CreateRackRangeCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		policy:     policy,
	}
}

// Handle creates the range. A rack inserted concurrently by another terminal
// turns into a retry, and the retry reports it as skipped.
func (h CreateRackRangeCommandHandler) Handle(ctx context.Context, cmd CreateRackRangeCommand) (CreateRackRangeResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateRackRangeResult{}, err
	}

	var result CreateRackRangeResult
	err := retry.Do(ctx, h.policy, func(ctx context.Context) error {
		var err error
		result, err = h.handle(ctx, cmd)
		return err
	})
	if err != nil {
		return CreateRackRangeResult{}, err
	}

	return result, nil
}

func (h CreateRackRangeCommandHandler) handle(ctx context.Context, cmd CreateRackRangeCommand) (CreateRackRangeResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateRackRangeResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	rackRepo := uow.RackRepository()
	sectionRepo := uow.SectionRepository()

	section := cmd.Range().Section()
	if err := sectionRepo.Ensure(ctx, section); err != nil {
		return CreateRackRangeResult{}, err
	}

	now := h.clock.Now()
	result := CreateRackRangeResult{
		Created: make([]rack.ID, 0, cmd.Range().Len()),
		Skipped: make([]rack.ID, 0),
		Updated: make([]rack.ID, 0),
	}

	for _, id := range cmd.Range().IDs() {
		existing, err := rackRepo.Get(ctx, id)
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			created, newErr := rack.NewRack(id, section, cmd.Capacity(), cmd.Description(), now)
			if newErr != nil {
				return CreateRackRangeResult{}, newErr
			}
			if addErr := rackRepo.Add(ctx, created); addErr != nil {
				if errors.Is(addErr, errs.ErrObjectAlreadyExists) {
					return CreateRackRangeResult{}, errs.NewVersionIsInvalidError("rack", addErr)
				}
				return CreateRackRangeResult{}, addErr
			}
			result.Created = append(result.Created, id)

		case err != nil:
			return CreateRackRangeResult{}, err

		case cmd.ReplaceExisting() && existing.Occupancy() == 0:
			if resetErr := existing.Reset(cmd.Capacity(), cmd.Description(), now); resetErr != nil {
				return CreateRackRangeResult{}, resetErr
			}
			if updateErr := rackRepo.Update(ctx, existing); updateErr != nil {
				return CreateRackRangeResult{}, updateErr
			}
			result.Updated = append(result.Updated, id)

		default:
			result.Skipped = append(result.Skipped, id)
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return CreateRackRangeResult{}, err
	}

	return result, nil
}
