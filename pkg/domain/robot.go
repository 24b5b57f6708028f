package domain

import (
	"fmt"
	"time"
)

// Energy bounds. Every mutation clamps into this range.
const (
	MinEnergy = 0
	MaxEnergy = 100
)

// Position is a robot's location on the unbounded integer grid.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Patch is a partial update of a robot's mutable fields. Nil fields are left
// untouched; supplied fields that match the current value are not logged.
type Patch struct {
	Energy   *int      `json:"energy,omitempty"`
	Position *Position `json:"position,omitempty"`
}

// Snapshot is a consistent, point-in-time view of a robot. It is a deep copy:
// callers can hold it without observing later mutations.
type Snapshot struct {
	ID            string   `json:"id"`
	Position      Position `json:"position"`
	Energy        int      `json:"energy"`
	Inventory     []string `json:"inventory"`
	Incapacitated bool     `json:"incapacitated"`
	TotalActions  int      `json:"total_actions"`
}

// AttackResult is the outcome of one resolved attack: both updated snapshots
// and the damage actually dealt.
type AttackResult struct {
	Attacker Snapshot `json:"attacker"`
	Target   Snapshot `json:"target"`
	Damage   int      `json:"damage"`
}

// Robot is the mutable fleet entity. It is not safe for concurrent use on
// its own; the registry serializes all access behind per-robot locks.
type Robot struct {
	id        string
	position  Position
	energy    int
	inventory []string
	log       []ActionRecord
}

// NewRobot creates a robot with the given identity and initial state.
// Energy is clamped into [MinEnergy, MaxEnergy].
func NewRobot(id string, pos Position, energy int) *Robot {
	return &Robot{
		id:       id,
		position: pos,
		energy:   ClampEnergy(energy),
	}
}

// ClampEnergy bounds an energy value into the legal range.
func ClampEnergy(e int) int {
	if e < MinEnergy {
		return MinEnergy
	}
	if e > MaxEnergy {
		return MaxEnergy
	}
	return e
}

// ID returns the robot's immutable identifier.
func (r *Robot) ID() string {
	return r.id
}

// Incapacitated reports whether the robot is at zero energy. Incapacitated
// robots cannot initiate actions but remain valid targets.
func (r *Robot) Incapacitated() bool {
	return r.energy == MinEnergy
}

// Holds reports whether the item is in this robot's inventory.
func (r *Robot) Holds(itemID string) bool {
	for _, held := range r.inventory {
		if held == itemID {
			return true
		}
	}
	return false
}

// Snapshot returns a deep copy of the externally visible state.
func (r *Robot) Snapshot() Snapshot {
	inv := make([]string, len(r.inventory))
	copy(inv, r.inventory)
	return Snapshot{
		ID:            r.id,
		Position:      r.position,
		Energy:        r.energy,
		Inventory:     inv,
		Incapacitated: r.Incapacitated(),
		TotalActions:  len(r.log),
	}
}

// Move applies a unit step in the given direction, deducting cost energy.
// It fails without mutating state if the direction is unknown, the robot is
// incapacitated, or energy is below the cost.
func (r *Robot) Move(dir Direction, cost int, now time.Time) error {
	dx, dy, err := dir.Vector()
	if err != nil {
		return err
	}
	if r.Incapacitated() {
		return fmt.Errorf("%w: %s cannot move", ErrIncapacitated, r.id)
	}
	if r.energy < cost {
		return fmt.Errorf("%w: move costs %d, %s has %d", ErrInsufficientEnergy, cost, r.id, r.energy)
	}

	r.energy = ClampEnergy(r.energy - cost)
	r.position = Position{X: r.position.X + dx, Y: r.position.Y + dy}
	pos := r.position
	r.append(ActionMove, ActionDetails{Direction: dir, Position: &pos}, now)
	return nil
}

// ApplyPatch applies the supplied fields, clamping energy. It records only
// the fields whose value actually changed; a patch that changes nothing
// appends no log entry.
func (r *Robot) ApplyPatch(p Patch, now time.Time) {
	var details ActionDetails
	changed := false

	if p.Energy != nil {
		next := ClampEnergy(*p.Energy)
		if next != r.energy {
			r.energy = next
			details.Energy = &next
			changed = true
		}
	}
	if p.Position != nil && *p.Position != r.position {
		r.position = *p.Position
		pos := r.position
		details.Position = &pos
		changed = true
	}

	if changed {
		r.append(ActionPatch, details, now)
	}
}

// AddItem places an item into the inventory. The caller is responsible for
// fleet-wide exclusivity; the robot only enforces that it can act.
func (r *Robot) AddItem(itemID string, now time.Time) error {
	if r.Incapacitated() {
		return fmt.Errorf("%w: %s cannot pick up items", ErrIncapacitated, r.id)
	}
	r.inventory = append(r.inventory, itemID)
	r.append(ActionPickup, ActionDetails{ItemID: itemID}, now)
	return nil
}

// RemoveItem takes an item out of the inventory, failing with ErrNotHeld if
// the robot does not hold it.
func (r *Robot) RemoveItem(itemID string, now time.Time) error {
	if r.Incapacitated() {
		return fmt.Errorf("%w: %s cannot put down items", ErrIncapacitated, r.id)
	}
	for i, held := range r.inventory {
		if held == itemID {
			r.inventory = append(r.inventory[:i], r.inventory[i+1:]...)
			r.append(ActionPutdown, ActionDetails{ItemID: itemID}, now)
			return nil
		}
	}
	return fmt.Errorf("%w: %s does not hold %q", ErrNotHeld, r.id, itemID)
}

// SpendAttack deducts the attacker-side energy cost and logs the outgoing
// record. Energy clamps at zero.
func (r *Robot) SpendAttack(targetID string, cost, damage int, now time.Time) {
	r.energy = ClampEnergy(r.energy - cost)
	after := r.energy
	r.append(ActionAttack, ActionDetails{
		TargetID:    targetID,
		Damage:      &damage,
		EnergyAfter: &after,
	}, now)
}

// TakeDamage deducts damage from the target's energy and logs the incoming
// record. Energy clamps at zero; hitting an incapacitated robot is legal.
func (r *Robot) TakeDamage(attackerID string, damage int, now time.Time) {
	r.energy = ClampEnergy(r.energy - damage)
	after := r.energy
	r.append(ActionAttacked, ActionDetails{
		AttackerID:  attackerID,
		Damage:      &damage,
		EnergyAfter: &after,
	}, now)
}

// Actions returns the log slice [(page-1)*size, page*size) in ascending
// sequence order. A slice past the end of the log is an empty page, not an
// error.
func (r *Robot) Actions(page, size int) (ActionPage, error) {
	if page < 1 || size < 1 {
		return ActionPage{}, fmt.Errorf("%w: page and size must be >= 1 (got page=%d size=%d)", ErrInvalidArgument, page, size)
	}

	total := len(r.log)
	totalPages := total / size
	if total%size != 0 {
		totalPages++
	}

	// Bounds are computed only for in-range pages, so page*size cannot
	// overflow for arbitrarily large valid inputs.
	items := []ActionRecord{}
	if page <= totalPages {
		start := (page - 1) * size
		end := start + size
		if end > total {
			end = total
		}
		items = make([]ActionRecord, end-start)
		copy(items, r.log[start:end])
	}

	return ActionPage{
		Items:        items,
		Page:         page,
		Size:         size,
		TotalActions: total,
		TotalPages:   totalPages,
	}, nil
}

// append adds an immutable record to the history. Sequence numbers start at
// 1 and only grow; timestamps never run backwards within the log.
func (r *Robot) append(kind ActionKind, details ActionDetails, now time.Time) {
	if n := len(r.log); n > 0 && now.Before(r.log[n-1].Timestamp) {
		now = r.log[n-1].Timestamp
	}
	r.log = append(r.log, ActionRecord{
		Sequence:  uint64(len(r.log) + 1),
		Kind:      kind,
		Details:   details,
		Timestamp: now,
	})
}
