package commands_test

import (
	"errors"
	"testing"
	"time"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateRackRangeCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateRackRangeCommand("A", "", 1, 3, 6, "aisle", true)
	require.NoError(t, err)

	empty := existingRack(t, "A", 2, 4, 0)
	occupied := existingRack(t, "A", 3, 4, 1)

	racks := new(MockRackRepository)
	sections := new(MockSectionRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RackRepository").Return(racks).Once(),
		uow.On("SectionRepository").Return(sections).Once(),
		sections.On("Ensure", ctx, "A").Return(nil).Once(),
		racks.On("Get", ctx, rackID(t, "A", 1)).Return(nil, errs.NewObjectNotFoundError("rack", "A-001")).Once(),
		racks.On("Add", ctx, mock.AnythingOfType("*rack.Rack")).Return(nil).Once(),
		racks.On("Get", ctx, rackID(t, "A", 2)).Return(empty, nil).Once(),
		racks.On("Update", ctx, empty).Return(nil).Once(),
		racks.On("Get", ctx, rackID(t, "A", 3)).Return(occupied, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockRackUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateRackRangeCommandHandler(factory, testClock(), retry.Once())
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, []rack.ID{rackID(t, "A", 1)}, result.Created)
	assert.Equal(t, []rack.ID{rackID(t, "A", 2)}, result.Updated)
	assert.Equal(t, []rack.ID{rackID(t, "A", 3)}, result.Skipped)
	assert.Equal(t, 6, empty.Capacity())
	assert.Equal(t, "aisle", empty.Description())
	assert.Equal(t, 4, occupied.Capacity(), "occupied racks are never reset")
	racks.AssertExpectations(t)
	sections.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateRackRangeCommandHandler_Handle_ConcurrentInsertIsRetried(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateRackRangeCommand("B", "", 1, 1, 0, "", false)
	require.NoError(t, err)
	id := rackID(t, "B", 1)

	firstRacks := new(MockRackRepository)
	firstSections := new(MockSectionRepository)
	first := new(MockUoW)
	first.On("Begin", ctx).Return(nil).Once()
	first.On("RackRepository").Return(firstRacks).Once()
	first.On("SectionRepository").Return(firstSections).Once()
	first.On("Rollback", ctx).Return(nil).Once()
	firstSections.On("Ensure", ctx, "B").Return(nil).Once()
	firstRacks.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("rack", id)).Once()
	firstRacks.On("Add", ctx, mock.AnythingOfType("*rack.Rack")).
		Return(errs.NewObjectAlreadyExistsError("rack", id)).Once()

	secondRacks := new(MockRackRepository)
	secondSections := new(MockSectionRepository)
	second := new(MockUoW)
	second.On("Begin", ctx).Return(nil).Once()
	second.On("RackRepository").Return(secondRacks).Once()
	second.On("SectionRepository").Return(secondSections).Once()
	second.On("Commit", ctx).Return(nil).Once()
	second.On("Rollback", ctx).Return(nil).Once()
	secondSections.On("Ensure", ctx, "B").Return(nil).Once()
	secondRacks.On("Get", ctx, id).Return(existingRack(t, "B", 1, 4, 0), nil).Once()

	factory := new(MockRackUoWFactory)
	factory.On("Create").Return(first).Once()
	factory.On("Create").Return(second).Once()

	policy := retry.Policy{MaxAttempts: 3, InitialInterval: time.Millisecond}
	handler := commands.NewCreateRackRangeCommandHandler(factory, testClock(), policy)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Empty(t, result.Created)
	assert.Equal(t, []rack.ID{id}, result.Skipped)
	first.AssertExpectations(t)
	second.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateRackRangeCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockRackUoWFactory)
	handler := commands.NewCreateRackRangeCommandHandler(factory, testClock(), retry.Once())

	_, err := handler.Handle(t.Context(), commands.CreateRackRangeCommand{})

	require.ErrorIs(t, err, commands.ErrCreateRackRangeCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateRackRangeCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateRackRangeCommand("A", "", 1, 2, 0, "", false)

	uow := new(MockUoW)
	factory := new(MockRackUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewCreateRackRangeCommandHandler(factory, testClock(), retry.Once())
	_, err := handler.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
}
