package robofleet

import (
	"context"
	"fmt"

	"github.com/robofleet/robofleet/pkg/domain"
	"github.com/robofleet/robofleet/pkg/registry"
)

// Version is the service version reported by the CLI, /info, and the MCP
// server handshake.
var Version = "1.0.0"

// New creates an empty fleet registry. See registry.Option for tuning,
// logging and distributed locking hooks.
func New(opts ...registry.Option) *registry.Registry {
	return registry.New(opts...)
}

// Seed provisions a set of robots, failing on the first conflict. It is
// meant for startup wiring, before the registry serves requests.
func Seed(ctx context.Context, reg *registry.Registry, robots []domain.ProvisionRequest) error {
	for _, req := range robots {
		if _, err := reg.Provision(ctx, req); err != nil {
			return fmt.Errorf("seeding robot %q: %w", req.ID, err)
		}
	}
	return nil
}
