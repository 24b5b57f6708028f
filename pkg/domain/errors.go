package domain

import "errors"

// ErrNotFound is returned when a robot ID cannot be resolved in the fleet.
var ErrNotFound = errors.New("robot not found")

// ErrInvalidArgument is returned for malformed inputs: unknown directions,
// non-positive pagination parameters, or a self-targeted attack.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrInsufficientEnergy is returned when a move would cost more energy than
// the robot currently has.
var ErrInsufficientEnergy = errors.New("insufficient energy")

// ErrIncapacitated is returned when a robot at zero energy attempts to
// initiate an action. Incapacitated robots can still be queried and targeted.
var ErrIncapacitated = errors.New("robot is incapacitated")

// ErrConflict is returned when an item is already held somewhere in the
// fleet, or when provisioning reuses an existing robot ID.
var ErrConflict = errors.New("conflict")

// ErrNotHeld is returned when a robot puts down an item that is not in its
// inventory.
var ErrNotHeld = errors.New("item not held")
