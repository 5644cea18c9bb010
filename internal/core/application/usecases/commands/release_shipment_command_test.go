package commands_test

import (
	"testing"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReleaseShipmentCommand(t *testing.T) {
	id := kernel.NewUUID()

	cmd, err := commands.NewReleaseShipmentCommand(id)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.ShipmentID())
}

func TestNewReleaseShipmentCommand_RequiresID(t *testing.T) {
	_, err := commands.NewReleaseShipmentCommand(kernel.UUID{})

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	require.ErrorIs(t, commands.ReleaseShipmentCommand{}.Validate(), commands.ErrReleaseShipmentCommandIsNotConstructed)
}
