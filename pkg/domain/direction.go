package domain

import "fmt"

// Direction is the closed set of unit moves a robot can make.
type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// ParseDirection validates a raw direction string from the boundary.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if _, _, err := d.Vector(); err != nil {
		return "", err
	}
	return d, nil
}

// Vector returns the unit step for the direction, or ErrInvalidArgument for
// anything outside the closed set.
func (d Direction) Vector() (dx, dy int, err error) {
	switch d {
	case DirectionUp:
		return 0, 1, nil
	case DirectionDown:
		return 0, -1, nil
	case DirectionLeft:
		return -1, 0, nil
	case DirectionRight:
		return 1, 0, nil
	default:
		return 0, 0, fmt.Errorf("%w: direction %q (must be one of up, down, left, right)", ErrInvalidArgument, string(d))
	}
}
