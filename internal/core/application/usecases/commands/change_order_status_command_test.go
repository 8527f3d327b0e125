package commands_test

import (
	"testing"

	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChangeOrderStatusCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewChangeOrderStatusCommand("O1", "picked_up")

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "O1", cmd.OrderID())
	assert.Equal(t, "picked_up", cmd.Status())
}

func TestNewChangeOrderStatusCommand_MissingFields(t *testing.T) {
	_, err := commands.NewChangeOrderStatusCommand("", "")

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "orderId")
	assert.Contains(t, err.Error(), "status")
}

func TestNewChangeOrderStatusCommand_KeepsUnrecognizedStatus(t *testing.T) {
	cmd, err := commands.NewChangeOrderStatusCommand("O1", "teleported")

	require.NoError(t, err)
	assert.Equal(t, "teleported", cmd.Status())
}

func TestChangeOrderStatusCommand_NotConstructedViaConstructor(t *testing.T) {
	cmd := commands.ChangeOrderStatusCommand{}

	require.ErrorIs(t, cmd.Validate(), commands.ErrChangeOrderStatusCommandIsNotConstructed)
}
