package registry_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robofleet/robofleet/pkg/domain"
	"github.com/robofleet/robofleet/pkg/registry"
)

func TestRegistry_ConcurrentPickup_SingleWinner(t *testing.T) {
	reg := registry.New()
	ctx := context.Background()

	const robots = 16
	ids := make([]string, robots)
	for i := range ids {
		snap, err := reg.Provision(ctx, domain.ProvisionRequest{})
		require.NoError(t, err)
		ids[i] = snap.ID
	}

	var wg sync.WaitGroup
	results := make(chan error, robots)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := reg.Pickup(ctx, id, "contested-item")
			results <- err
		}(id)
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "exactly one pickup of a contested item may succeed")
	assert.Equal(t, robots-1, conflicts)

	// The item ended up in exactly one inventory.
	holders := 0
	snaps, err := reg.List(ctx)
	require.NoError(t, err)
	for _, snap := range snaps {
		for _, item := range snap.Inventory {
			if item == "contested-item" {
				holders++
			}
		}
	}
	assert.Equal(t, 1, holders)
}

func TestRegistry_OpposingAttacks_NoDeadlock(t *testing.T) {
	reg := newTestFleet(t)
	ctx := context.Background()

	// Put both robots on one tile so attacks land.
	pos := domain.Position{X: 5, Y: 5}
	for _, id := range []string{"r1", "r2"} {
		p := pos
		_, err := reg.PatchState(ctx, id, domain.Patch{Position: &p})
		require.NoError(t, err)
	}

	const rounds = 50
	var wg sync.WaitGroup
	wg.Add(2)

	attack := func(attacker, target string) {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			_, err := reg.Attack(ctx, attacker, target)
			if err != nil && !errors.Is(err, domain.ErrIncapacitated) {
				t.Errorf("attack %s->%s: %v", attacker, target, err)
				return
			}
		}
	}
	go attack("r1", "r2")
	go attack("r2", "r1")

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("opposing attacks deadlocked")
	}
}

func TestRegistry_EnergyStaysBounded_UnderConcurrentMutation(t *testing.T) {
	reg := newTestFleet(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	patchTo := func(energy int) {
		_, _ = reg.PatchState(ctx, "r1", domain.Patch{Energy: &energy})
	}
	ops := []func(){
		func() { _, _ = reg.Move(ctx, "r1", domain.DirectionUp) },
		func() { _, _ = reg.Attack(ctx, "r2", "r1") },
		func() { patchTo(150) },
		func() { patchTo(-50) },
	}

	for i := 0; i < 200; i++ {
		op := ops[i%len(ops)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			op()
		}()
	}
	wg.Wait()

	snap, err := reg.Get(ctx, "r1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, snap.Energy, 0)
	assert.LessOrEqual(t, snap.Energy, 100)
}

func TestRegistry_ConcurrentMoves_LogStaysOrdered(t *testing.T) {
	reg := registry.New()
	ctx := context.Background()

	full := 100
	_, err := reg.Provision(ctx, domain.ProvisionRequest{ID: "r1", Energy: &full})
	require.NoError(t, err)

	const movers = 10
	var wg sync.WaitGroup
	for i := 0; i < movers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = reg.Move(ctx, "r1", domain.DirectionUp)
		}()
	}
	wg.Wait()

	page, err := reg.ListActions(ctx, "r1", 1, movers*2)
	require.NoError(t, err)
	for i, record := range page.Items {
		assert.Equal(t, uint64(i+1), record.Sequence, "sequence numbers must be dense and ascending")
		if i > 0 {
			assert.False(t, record.Timestamp.Before(page.Items[i-1].Timestamp))
		}
	}
}
