package commands

import (
	"context"

	"warehouse/internal/pkg/retry"
)

// DeleteRackCommandHandler removes a rack and, with it, a section left empty.
//
// Example:
//
//	cmd, _ := NewDeleteRackCommand("A-001")
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrRackIsOccupied) {
//	    // shipments are still stored in the rack
//	}
type DeleteRackCommandHandler struct {
	uowFactory RackUoWFactory
	policy     retry.Policy
}

// NewDeleteRackCommandHandler creates a handler for rack deletion.
func NewDeleteRackCommandHandler(uowFactory RackUoWFactory, policy retry.Policy) DeleteRackCommandHandler {
	return DeleteRackCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle deletes the rack. Missing racks fail with errs.ErrObjectNotFound and
// occupied ones with errs.ErrRackIsOccupied.
func (h DeleteRackCommandHandler) Handle(ctx context.Context, cmd DeleteRackCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retry.Do(ctx, h.policy, func(ctx context.Context) error {
		return h.handle(ctx, cmd)
	})
}

func (h DeleteRackCommandHandler) handle(ctx context.Context, cmd DeleteRackCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	rackRepo := uow.RackRepository()
	sectionRepo := uow.SectionRepository()

	r, err := rackRepo.Get(ctx, cmd.RackID())
	if err != nil {
		return err
	}

	if err = r.CanDelete(); err != nil {
		return err
	}

	if err = rackRepo.Delete(ctx, r); err != nil {
		return err
	}

	if _, err = sectionRepo.DeleteIfEmpty(ctx, r.Section()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
