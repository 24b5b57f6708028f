package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robofleet/robofleet/pkg/domain"
)

func TestDecodeArgs_WeaklyTypedNumbers(t *testing.T) {
	// JSON numbers arrive as float64 over the wire.
	args := map[string]any{
		"robot_id": "r1",
		"page":     float64(2),
		"size":     float64(10),
	}

	in := actionsArgs{Page: 1, Size: 5}
	require.NoError(t, decodeArgs(args, &in))

	assert.Equal(t, "r1", in.RobotID)
	assert.Equal(t, 2, in.Page)
	assert.Equal(t, 10, in.Size)
}

func TestDecodeArgs_DefaultsSurviveMissingKeys(t *testing.T) {
	in := actionsArgs{Page: 1, Size: 5}
	require.NoError(t, decodeArgs(map[string]any{"robot_id": "r1"}, &in))

	assert.Equal(t, 1, in.Page)
	assert.Equal(t, 5, in.Size)
}

func TestProvisionArgs_Request(t *testing.T) {
	x, y, energy := 3, -1, 42
	args := provisionArgs{RobotID: "scout", X: &x, Y: &y, Energy: &energy}

	req := args.request()
	assert.Equal(t, "scout", req.ID)
	require.NotNil(t, req.Position)
	assert.Equal(t, domain.Position{X: 3, Y: -1}, *req.Position)
	require.NotNil(t, req.Energy)
	assert.Equal(t, 42, *req.Energy)

	// No coordinates means no position override.
	bare := provisionArgs{}
	assert.Nil(t, bare.request().Position)
}

func TestPatchArgs_Patch(t *testing.T) {
	energy := 50
	p, err := patchArgs{RobotID: "r1", Energy: &energy}.patch()
	require.NoError(t, err)
	require.NotNil(t, p.Energy)
	assert.Nil(t, p.Position)

	x, y := 1, 2
	p, err = patchArgs{RobotID: "r1", X: &x, Y: &y}.patch()
	require.NoError(t, err)
	require.NotNil(t, p.Position)
	assert.Equal(t, domain.Position{X: 1, Y: 2}, *p.Position)

	// A lone coordinate is rejected: positions are replaced whole.
	_, err = patchArgs{RobotID: "r1", X: &x}.patch()
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
