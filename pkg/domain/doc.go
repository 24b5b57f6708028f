/*
Package domain contains the core domain models and transition logic for the
Robofleet service.

It defines the fundamental entities of the fleet (Robots with position,
bounded energy, an inventory, and an append-only action log) and the rules
that govern their state transitions. This package is kept pure and free of
external dependencies like I/O or transport, following Hexagonal Architecture
principles.

# Key Entities

  - Robot: a stateful entity with position, energy, inventory, and history.
  - ActionRecord: an immutable log entry describing one completed transition.
  - Snapshot: a consistent, point-in-time view of a robot returned to callers.
  - Direction: the closed set of unit moves a robot can make.

A robot is Active while its energy is above zero and Incapacitated at zero.
Incapacitated robots cannot initiate actions but remain valid targets and
stay queryable. The only way back to Active is a state patch that raises
energy above zero.
*/
package domain
