package robofleet_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robofleet/robofleet"
	"github.com/robofleet/robofleet/pkg/domain"
)

func TestSeed(t *testing.T) {
	fleet := robofleet.New()
	ctx := context.Background()

	pos := domain.Position{X: 1, Y: 0}
	energy := 100
	err := robofleet.Seed(ctx, fleet, []domain.ProvisionRequest{
		{ID: "r1"},
		{ID: "r2", Position: &pos, Energy: &energy},
	})
	require.NoError(t, err)

	snaps, err := fleet.List(ctx)
	require.NoError(t, err)
	assert.Len(t, snaps, 2)
}

func TestSeed_ConflictFails(t *testing.T) {
	fleet := robofleet.New()

	err := robofleet.Seed(context.Background(), fleet, []domain.ProvisionRequest{
		{ID: "dupe"},
		{ID: "dupe"},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
