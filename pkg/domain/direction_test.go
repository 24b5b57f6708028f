package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robofleet/robofleet/pkg/domain"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input  string
		dx, dy int
	}{
		{"up", 0, 1},
		{"down", 0, -1},
		{"left", -1, 0},
		{"right", 1, 0},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			dir, err := domain.ParseDirection(tc.input)
			require.NoError(t, err)

			dx, dy, err := dir.Vector()
			require.NoError(t, err)
			assert.Equal(t, tc.dx, dx)
			assert.Equal(t, tc.dy, dy)
		})
	}
}

func TestParseDirection_Invalid(t *testing.T) {
	for _, input := range []string{"", "north", "UP", "diagonal"} {
		t.Run("invalid_"+input, func(t *testing.T) {
			_, err := domain.ParseDirection(input)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
}
