package mcp

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/robofleet/robofleet/pkg/domain"
)

// decodeArgs maps a raw MCP argument map onto a typed struct. JSON numbers
// arrive as float64, so decoding is weakly typed.
func decodeArgs(args map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("building argument decoder: %w", err)
	}
	if err := decoder.Decode(args); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	return nil
}

type statusArgs struct {
	RobotID string `mapstructure:"robot_id"`
}

type moveArgs struct {
	RobotID   string `mapstructure:"robot_id"`
	Direction string `mapstructure:"direction"`
}

type itemArgs struct {
	RobotID string `mapstructure:"robot_id"`
	ItemID  string `mapstructure:"item_id"`
}

type attackArgs struct {
	AttackerID string `mapstructure:"attacker_id"`
	TargetID   string `mapstructure:"target_id"`
}

type actionsArgs struct {
	RobotID string `mapstructure:"robot_id"`
	Page    int    `mapstructure:"page"`
	Size    int    `mapstructure:"size"`
}

type provisionArgs struct {
	RobotID string `mapstructure:"robot_id"`
	X       *int   `mapstructure:"x"`
	Y       *int   `mapstructure:"y"`
	Energy  *int   `mapstructure:"energy"`
}

func (a provisionArgs) request() domain.ProvisionRequest {
	req := domain.ProvisionRequest{ID: a.RobotID, Energy: a.Energy}
	if a.X != nil || a.Y != nil {
		pos := domain.Position{}
		if a.X != nil {
			pos.X = *a.X
		}
		if a.Y != nil {
			pos.Y = *a.Y
		}
		req.Position = &pos
	}
	return req
}

type patchArgs struct {
	RobotID string `mapstructure:"robot_id"`
	Energy  *int   `mapstructure:"energy"`
	X       *int   `mapstructure:"x"`
	Y       *int   `mapstructure:"y"`
}

// patch builds the partial update, requiring x and y together since a
// position is replaced whole.
func (a patchArgs) patch() (domain.Patch, error) {
	p := domain.Patch{Energy: a.Energy}
	switch {
	case a.X != nil && a.Y != nil:
		p.Position = &domain.Position{X: *a.X, Y: *a.Y}
	case a.X != nil || a.Y != nil:
		return domain.Patch{}, fmt.Errorf("%w: x and y must be supplied together", domain.ErrInvalidArgument)
	}
	return p, nil
}
