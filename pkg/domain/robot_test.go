package domain_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robofleet/robofleet/pkg/domain"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestNewRobot_ClampsEnergy(t *testing.T) {
	tests := []struct {
		name   string
		energy int
		want   int
	}{
		{"negative", -10, 0},
		{"zero", 0, 0},
		{"in_range", 42, 42},
		{"max", 100, 100},
		{"above_max", 250, 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := domain.NewRobot("r1", domain.Position{}, tc.energy)
			assert.Equal(t, tc.want, r.Snapshot().Energy)
		})
	}
}

func TestRobot_Move(t *testing.T) {
	r := domain.NewRobot("r1", domain.Position{X: 0, Y: 0}, 100)

	err := r.Move(domain.DirectionUp, 5, t0)
	require.NoError(t, err)

	snap := r.Snapshot()
	assert.Equal(t, domain.Position{X: 0, Y: 1}, snap.Position)
	assert.Equal(t, 95, snap.Energy)
	assert.Equal(t, 1, snap.TotalActions)
}

func TestRobot_Move_InvalidDirection(t *testing.T) {
	r := domain.NewRobot("r1", domain.Position{}, 100)

	err := r.Move(domain.Direction("sideways"), 5, t0)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	// Failed moves leave state untouched.
	snap := r.Snapshot()
	assert.Equal(t, 100, snap.Energy)
	assert.Zero(t, snap.TotalActions)
}

func TestRobot_Move_InsufficientEnergy(t *testing.T) {
	r := domain.NewRobot("r1", domain.Position{}, 3)

	err := r.Move(domain.DirectionUp, 5, t0)
	assert.ErrorIs(t, err, domain.ErrInsufficientEnergy)
	assert.Equal(t, 3, r.Snapshot().Energy)
}

func TestRobot_Move_Incapacitated(t *testing.T) {
	r := domain.NewRobot("r1", domain.Position{}, 0)

	err := r.Move(domain.DirectionUp, 5, t0)
	assert.ErrorIs(t, err, domain.ErrIncapacitated)
}

func TestRobot_ApplyPatch_LogsOnlyChangedFields(t *testing.T) {
	r := domain.NewRobot("r1", domain.Position{X: 1, Y: 1}, 80)

	energy := 50
	r.ApplyPatch(domain.Patch{Energy: &energy}, t0)

	page, err := r.Actions(1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	record := page.Items[0]
	assert.Equal(t, domain.ActionPatch, record.Kind)
	require.NotNil(t, record.Details.Energy)
	assert.Equal(t, 50, *record.Details.Energy)
	assert.Nil(t, record.Details.Position, "unchanged position must not be logged")
}

func TestRobot_ApplyPatch_NoOpNotLogged(t *testing.T) {
	r := domain.NewRobot("r1", domain.Position{X: 1, Y: 1}, 80)

	energy := 80
	pos := domain.Position{X: 1, Y: 1}
	r.ApplyPatch(domain.Patch{Energy: &energy, Position: &pos}, t0)

	assert.Zero(t, r.Snapshot().TotalActions, "a patch that changes nothing appends no record")
}

func TestRobot_ApplyPatch_ClampsEnergy(t *testing.T) {
	r := domain.NewRobot("r1", domain.Position{}, 50)

	high := 500
	r.ApplyPatch(domain.Patch{Energy: &high}, t0)
	assert.Equal(t, 100, r.Snapshot().Energy)

	low := -70
	r.ApplyPatch(domain.Patch{Energy: &low}, t0)
	assert.Equal(t, 0, r.Snapshot().Energy)
}

func TestRobot_Inventory(t *testing.T) {
	r := domain.NewRobot("r1", domain.Position{}, 100)

	require.NoError(t, r.AddItem("item42", t0))
	assert.True(t, r.Holds("item42"))

	require.NoError(t, r.RemoveItem("item42", t0))
	assert.False(t, r.Holds("item42"))

	err := r.RemoveItem("item42", t0)
	assert.ErrorIs(t, err, domain.ErrNotHeld)
}

func TestRobot_TakeDamage_ClampsAtZero(t *testing.T) {
	r := domain.NewRobot("r1", domain.Position{}, 5)

	r.TakeDamage("r2", 10, t0)
	snap := r.Snapshot()
	assert.Equal(t, 0, snap.Energy)
	assert.True(t, snap.Incapacitated)

	// Hitting an incapacitated robot is legal and stays at zero.
	r.TakeDamage("r2", 10, t0)
	assert.Equal(t, 0, r.Snapshot().Energy)
}

func TestRobot_Snapshot_IsDeepCopy(t *testing.T) {
	r := domain.NewRobot("r1", domain.Position{}, 100)
	require.NoError(t, r.AddItem("item1", t0))

	snap := r.Snapshot()
	snap.Inventory[0] = "tampered"

	assert.True(t, r.Holds("item1"))
	assert.False(t, r.Holds("tampered"))
}

func TestRobot_Actions_Pagination(t *testing.T) {
	r := domain.NewRobot("r1", domain.Position{}, 100)
	for i := 0; i < 3; i++ {
		require.NoError(t, r.Move(domain.DirectionRight, 5, t0.Add(time.Duration(i)*time.Second)))
	}

	first, err := r.Actions(1, 2)
	require.NoError(t, err)
	assert.Len(t, first.Items, 2)
	assert.Equal(t, uint64(1), first.Items[0].Sequence)
	assert.Equal(t, uint64(2), first.Items[1].Sequence)
	assert.Equal(t, 3, first.TotalActions)
	assert.Equal(t, 2, first.TotalPages)
	assert.True(t, first.HasNext())

	second, err := r.Actions(2, 2)
	require.NoError(t, err)
	assert.Len(t, second.Items, 1)
	assert.Equal(t, uint64(3), second.Items[0].Sequence)
	assert.False(t, second.HasNext())

	// Beyond the log's end is an empty page, not an error.
	third, err := r.Actions(3, 2)
	require.NoError(t, err)
	assert.Empty(t, third.Items)
	assert.Equal(t, 3, third.TotalActions)
}

func TestRobot_Actions_HugePaginationValues(t *testing.T) {
	r := domain.NewRobot("r1", domain.Position{}, 100)
	for i := 0; i < 3; i++ {
		require.NoError(t, r.Move(domain.DirectionRight, 5, t0.Add(time.Duration(i)*time.Second)))
	}

	// Extreme values whose product overflows int must still yield an
	// empty page, not wrap into a bogus allocation.
	page, err := r.Actions(math.MaxInt, math.MaxInt)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.TotalActions)
	assert.Equal(t, 1, page.TotalPages)

	page, err = r.Actions(math.MaxInt, 2)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 2, page.TotalPages)

	// A huge size on the first page returns the whole log.
	page, err = r.Actions(1, math.MaxInt)
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
}

func TestRobot_Actions_InvalidPagination(t *testing.T) {
	r := domain.NewRobot("r1", domain.Position{}, 100)

	for _, tc := range []struct{ page, size int }{{0, 5}, {1, 0}, {-1, -1}} {
		_, err := r.Actions(tc.page, tc.size)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	}
}

func TestRobot_Log_TimestampsNeverRegress(t *testing.T) {
	r := domain.NewRobot("r1", domain.Position{}, 100)

	require.NoError(t, r.Move(domain.DirectionUp, 5, t0))
	require.NoError(t, r.Move(domain.DirectionUp, 5, t0.Add(-time.Hour)))

	page, err := r.Actions(1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.False(t, page.Items[1].Timestamp.Before(page.Items[0].Timestamp))
}

func TestTuning_Damage(t *testing.T) {
	tuning := domain.DefaultTuning()

	a := domain.NewRobot("a", domain.Position{X: 2, Y: 2}, 100)
	b := domain.NewRobot("b", domain.Position{X: 2, Y: 2}, 100)
	c := domain.NewRobot("c", domain.Position{X: 9, Y: 9}, 100)

	assert.Equal(t, 10, tuning.Damage(a, b), "same tile deals base damage")
	assert.Equal(t, 0, tuning.Damage(a, c), "different tiles deal nothing")
}

func TestTuning_Validate(t *testing.T) {
	assert.NoError(t, domain.DefaultTuning().Validate())

	bad := domain.Tuning{MoveCost: 0, AttackCost: 5, BaseDamage: 10}
	assert.ErrorIs(t, bad.Validate(), domain.ErrInvalidArgument)
}
