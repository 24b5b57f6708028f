// Package ports defines the interfaces that connect the fleet core to its
// adapters. Transport adapters (HTTP, MCP) consume the Fleet surface; the
// registry optionally drives a DistributedLocker to fence item claims across
// replicas.
package ports
