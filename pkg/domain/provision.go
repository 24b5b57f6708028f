package domain

// ProvisionRequest describes a robot to create. A zero-value request is
// valid: the registry generates an identifier, places the robot at the
// origin, and fills its energy.
type ProvisionRequest struct {
	// ID is the desired identifier; empty means "generate one".
	ID string `json:"id,omitempty"`

	// Position defaults to the origin when nil.
	Position *Position `json:"position,omitempty"`

	// Energy defaults to MaxEnergy when nil and is clamped otherwise.
	Energy *int `json:"energy,omitempty"`
}
