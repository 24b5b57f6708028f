/*
Package robofleet models a small population of stateful robots behind a
request/response interface. Each robot carries a position on an unbounded
integer grid, energy bounded to [0, 100], an inventory of items, and an
append-only history of every transition it went through.

The registry is the single entry point: it resolves identifiers, serializes
mutation behind per-robot locks, and enforces the fleet-wide invariant that
an item is held by at most one robot at a time. Transports (REST, MCP) are
thin adapters over the same operation surface.

State is volatile: it lives in process memory for the service's lifetime and
is not persisted across restarts.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/robofleet/robofleet"
		"github.com/robofleet/robofleet/pkg/domain"
	)

	func main() {
		fleet := robofleet.New()
		ctx := context.Background()

		scout, err := fleet.Provision(ctx, domain.ProvisionRequest{ID: "scout"})
		if err != nil {
			log.Fatal(err)
		}

		snap, err := fleet.Move(ctx, scout.ID, domain.DirectionUp)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("scout is now at (%d,%d) with %d energy",
			snap.Position.X, snap.Position.Y, snap.Energy)
	}

Failures use a closed taxonomy of sentinel errors (domain.ErrNotFound,
domain.ErrInvalidArgument, domain.ErrInsufficientEnergy,
domain.ErrIncapacitated, domain.ErrConflict, domain.ErrNotHeld). Every
failure is detected before any mutation: a rejected operation never leaves a
robot half-updated.
*/
package robofleet
