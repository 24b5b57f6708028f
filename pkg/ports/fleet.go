package ports

import (
	"context"

	"github.com/robofleet/robofleet/pkg/domain"
)

// Fleet is the operation surface the registry exposes and transport
// adapters consume. Every call is synchronous and non-blocking; failures
// come from the domain error taxonomy and leave state unchanged.
type Fleet interface {
	// Get returns a consistent snapshot of one robot.
	Get(ctx context.Context, id string) (domain.Snapshot, error)

	// List returns snapshots of every robot, sorted by ID.
	List(ctx context.Context) ([]domain.Snapshot, error)

	// Provision creates a robot, generating an ID when none is given.
	Provision(ctx context.Context, req domain.ProvisionRequest) (domain.Snapshot, error)

	// Move applies a unit step and deducts the move cost.
	Move(ctx context.Context, id string, dir domain.Direction) (domain.Snapshot, error)

	// PatchState applies the supplied fields, clamping energy.
	PatchState(ctx context.Context, id string, patch domain.Patch) (domain.Snapshot, error)

	// Pickup claims an item fleet-wide and adds it to the robot's inventory.
	Pickup(ctx context.Context, id, itemID string) (domain.Snapshot, error)

	// Putdown releases an item from the robot's inventory.
	Putdown(ctx context.Context, id, itemID string) (domain.Snapshot, error)

	// Attack resolves one attack between two distinct robots atomically.
	Attack(ctx context.Context, attackerID, targetID string) (domain.AttackResult, error)

	// ListActions pages through a robot's append-only history.
	ListActions(ctx context.Context, id string, page, size int) (domain.ActionPage, error)
}
