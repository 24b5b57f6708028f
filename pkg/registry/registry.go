// Package registry implements the fleet's lookup and concurrency boundary.
// It owns the set of robots, serializes every mutation behind per-robot
// locks, and keeps the fleet-wide item ledger that guarantees an item is
// held by at most one robot at a time.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robofleet/robofleet/internal/logging"
	"github.com/robofleet/robofleet/pkg/domain"
	"github.com/robofleet/robofleet/pkg/ports"
)

// Registry is the sole entry point for all fleet operations. Robots live for
// the life of the process; there is no deletion.
type Registry struct {
	mu     sync.RWMutex
	robots map[string]*domain.Robot

	locks *lockTable

	// itemsMu serializes every check-and-claim and release on the ledger.
	// This is the one registry-wide exclusion: without it two robots could
	// claim the same item concurrently.
	itemsMu sync.Mutex
	items   map[string]string // item ID -> holder robot ID

	locker  ports.DistributedLocker
	lockTTL time.Duration

	tuning domain.Tuning
	logger *slog.Logger
	now    func() time.Time
}

// Option configures the Registry.
type Option func(*Registry)

// WithLogger configures a logger for registry events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithLocker fences item claims with a distributed lock, for deployments
// where several replicas share one item namespace.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(r *Registry) {
		r.locker = locker
	}
}

// WithTuning overrides the movement and combat constants.
func WithTuning(t domain.Tuning) Option {
	return func(r *Registry) {
		r.tuning = t
	}
}

// WithClock overrides the timestamp source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		robots:  make(map[string]*domain.Robot),
		locks:   newLockTable(),
		items:   make(map[string]string),
		lockTTL: 30 * time.Second,
		tuning:  domain.DefaultTuning(),
		logger:  logging.NewNop(),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.Fleet = (*Registry)(nil)

// resolve looks a robot up by ID.
func (r *Registry) resolve(id string) (*domain.Robot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	robot, ok := r.robots[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrNotFound, id)
	}
	return robot, nil
}

// Provision creates a robot. An empty ID is filled with a generated UUID;
// reusing an existing ID fails with a conflict.
func (r *Registry) Provision(ctx context.Context, req domain.ProvisionRequest) (domain.Snapshot, error) {
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	pos := domain.Position{}
	if req.Position != nil {
		pos = *req.Position
	}
	energy := domain.MaxEnergy
	if req.Energy != nil {
		energy = *req.Energy
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.robots[id]; exists {
		return domain.Snapshot{}, fmt.Errorf("%w: robot %q already exists", domain.ErrConflict, id)
	}

	robot := domain.NewRobot(id, pos, energy)
	r.robots[id] = robot

	snap := robot.Snapshot()
	r.logger.Info("robot provisioned", "robot_id", id, "position", snap.Position, "energy", snap.Energy)
	return snap, nil
}

// Get returns a consistent snapshot of one robot.
func (r *Registry) Get(ctx context.Context, id string) (domain.Snapshot, error) {
	robot, err := r.resolve(id)
	if err != nil {
		return domain.Snapshot{}, err
	}

	var snap domain.Snapshot
	r.locks.withLock(id, func() {
		snap = robot.Snapshot()
	})
	return snap, nil
}

// List returns snapshots of every robot, sorted by ID.
func (r *Registry) List(ctx context.Context) ([]domain.Snapshot, error) {
	r.mu.RLock()
	ids := make([]string, 0, len(r.robots))
	for id := range r.robots {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Strings(ids)

	snaps := make([]domain.Snapshot, 0, len(ids))
	for _, id := range ids {
		snap, err := r.Get(ctx, id)
		if err != nil {
			continue
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// Move applies a unit step in the given direction, deducting the move cost.
func (r *Registry) Move(ctx context.Context, id string, dir domain.Direction) (domain.Snapshot, error) {
	robot, err := r.resolve(id)
	if err != nil {
		return domain.Snapshot{}, err
	}

	var snap domain.Snapshot
	var opErr error
	r.locks.withLock(id, func() {
		if opErr = robot.Move(dir, r.tuning.MoveCost, r.now()); opErr != nil {
			return
		}
		snap = robot.Snapshot()
	})
	if opErr != nil {
		return domain.Snapshot{}, opErr
	}

	r.logger.Debug("robot moved", "robot_id", id, "direction", dir, "position", snap.Position, "energy", snap.Energy)
	return snap, nil
}

// PatchState applies the supplied fields only, clamping energy to its legal
// range. Fields that do not change the current value are not logged.
func (r *Registry) PatchState(ctx context.Context, id string, patch domain.Patch) (domain.Snapshot, error) {
	robot, err := r.resolve(id)
	if err != nil {
		return domain.Snapshot{}, err
	}

	var snap domain.Snapshot
	r.locks.withLock(id, func() {
		robot.ApplyPatch(patch, r.now())
		snap = robot.Snapshot()
	})

	r.logger.Debug("robot patched", "robot_id", id, "position", snap.Position, "energy", snap.Energy)
	return snap, nil
}

// Pickup claims an item for a robot. The check across the whole fleet and
// the claim are one atomic step under the item ledger; of N concurrent
// pickups of the same item exactly one succeeds.
func (r *Registry) Pickup(ctx context.Context, id, itemID string) (domain.Snapshot, error) {
	robot, err := r.resolve(id)
	if err != nil {
		return domain.Snapshot{}, err
	}

	if r.locker != nil {
		unlock, lockErr := r.locker.Lock(ctx, "item:"+itemID, r.lockTTL)
		if lockErr != nil {
			return domain.Snapshot{}, fmt.Errorf("acquiring item lock for %q: %w", itemID, lockErr)
		}
		defer func() {
			if unlockErr := unlock(ctx); unlockErr != nil {
				r.logger.Warn("failed to release item lock (will expire via TTL)", "item_id", itemID, "err", unlockErr)
			}
		}()
	}

	var snap domain.Snapshot
	var opErr error
	r.locks.withLock(id, func() {
		r.itemsMu.Lock()
		defer r.itemsMu.Unlock()

		if holder, held := r.items[itemID]; held {
			opErr = fmt.Errorf("%w: item %q already held by %s", domain.ErrConflict, itemID, holder)
			return
		}
		if opErr = robot.AddItem(itemID, r.now()); opErr != nil {
			return
		}
		r.items[itemID] = id
		snap = robot.Snapshot()
	})
	if opErr != nil {
		return domain.Snapshot{}, opErr
	}

	r.logger.Debug("item picked up", "robot_id", id, "item_id", itemID)
	return snap, nil
}

// Putdown releases an item from a robot's inventory, making it available
// for pickup by any robot.
func (r *Registry) Putdown(ctx context.Context, id, itemID string) (domain.Snapshot, error) {
	robot, err := r.resolve(id)
	if err != nil {
		return domain.Snapshot{}, err
	}

	var snap domain.Snapshot
	var opErr error
	r.locks.withLock(id, func() {
		r.itemsMu.Lock()
		defer r.itemsMu.Unlock()

		if opErr = robot.RemoveItem(itemID, r.now()); opErr != nil {
			return
		}
		delete(r.items, itemID)
		snap = robot.Snapshot()
	})
	if opErr != nil {
		return domain.Snapshot{}, opErr
	}

	r.logger.Debug("item put down", "robot_id", id, "item_id", itemID)
	return snap, nil
}

// Attack resolves one attack. Both robots' locks are held for the whole
// resolution, acquired in lexicographic ID order, so the two energy
// mutations and the two log appends commit as one atomic step.
func (r *Registry) Attack(ctx context.Context, attackerID, targetID string) (domain.AttackResult, error) {
	attacker, err := r.resolve(attackerID)
	if err != nil {
		return domain.AttackResult{}, err
	}
	target, err := r.resolve(targetID)
	if err != nil {
		return domain.AttackResult{}, err
	}
	if attackerID == targetID {
		return domain.AttackResult{}, fmt.Errorf("%w: robot %q cannot attack itself", domain.ErrInvalidArgument, attackerID)
	}

	var res domain.AttackResult
	var opErr error
	r.locks.withPairLock(attackerID, targetID, func() {
		if attacker.Incapacitated() {
			opErr = fmt.Errorf("%w: %s cannot attack", domain.ErrIncapacitated, attackerID)
			return
		}

		damage := r.tuning.Damage(attacker, target)
		now := r.now()
		attacker.SpendAttack(targetID, r.tuning.AttackCost, damage, now)
		target.TakeDamage(attackerID, damage, now)

		res = domain.AttackResult{
			Attacker: attacker.Snapshot(),
			Target:   target.Snapshot(),
			Damage:   damage,
		}
	})
	if opErr != nil {
		return domain.AttackResult{}, opErr
	}

	r.logger.Debug("attack resolved",
		"attacker_id", attackerID,
		"target_id", targetID,
		"damage", res.Damage,
		"attacker_energy", res.Attacker.Energy,
		"target_energy", res.Target.Energy,
	)
	return res, nil
}

// ListActions pages through a robot's history in ascending sequence order.
// A page past the end of the log is empty, not an error.
func (r *Registry) ListActions(ctx context.Context, id string, page, size int) (domain.ActionPage, error) {
	robot, err := r.resolve(id)
	if err != nil {
		return domain.ActionPage{}, err
	}

	var result domain.ActionPage
	var opErr error
	r.locks.withLock(id, func() {
		result, opErr = robot.Actions(page, size)
	})
	return result, opErr
}
