package domain

import "time"

// ActionKind identifies the transition an ActionRecord describes.
type ActionKind string

const (
	// ActionMove records a completed unit move.
	ActionMove ActionKind = "move"

	// ActionPatch records a state patch; its details carry only the fields
	// that actually changed.
	ActionPatch ActionKind = "patch"

	// ActionPickup records an item entering the robot's inventory.
	ActionPickup ActionKind = "pickup"

	// ActionPutdown records an item leaving the robot's inventory.
	ActionPutdown ActionKind = "putdown"

	// ActionAttack is the outgoing side of an attack, logged on the attacker.
	ActionAttack ActionKind = "attack"

	// ActionAttacked is the incoming side of an attack, logged on the target.
	ActionAttacked ActionKind = "attacked"
)

// ActionDetails carries the parameters and results relevant to one record.
// Only the fields meaningful for the record's kind are set.
type ActionDetails struct {
	Direction   Direction `json:"direction,omitempty"`
	Position    *Position `json:"position,omitempty"`
	Energy      *int      `json:"energy,omitempty"`
	ItemID      string    `json:"itemId,omitempty"`
	TargetID    string    `json:"targetId,omitempty"`
	AttackerID  string    `json:"attackerId,omitempty"`
	Damage      *int      `json:"damage,omitempty"`
	EnergyAfter *int      `json:"energyAfter,omitempty"`
}

// ActionRecord is an immutable entry in a robot's append-only history.
// Sequence numbers start at 1 and are unique per robot; timestamps are
// non-decreasing within a single robot's log.
type ActionRecord struct {
	Sequence  uint64        `json:"sequence"`
	Kind      ActionKind    `json:"kind"`
	Details   ActionDetails `json:"details"`
	Timestamp time.Time     `json:"timestamp"`
}

// ActionPage is one slice of a robot's action log in ascending sequence
// order. Totals let callers derive whether further pages exist.
type ActionPage struct {
	Items        []ActionRecord `json:"items"`
	Page         int            `json:"page"`
	Size         int            `json:"size"`
	TotalActions int            `json:"total_actions"`
	TotalPages   int            `json:"total_pages"`
}

// HasNext reports whether a page after this one holds records.
func (p ActionPage) HasNext() bool {
	return p.Page < p.TotalPages
}
