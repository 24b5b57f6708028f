package domain

import "fmt"

// Tuning holds the combat and movement constants. The exact numbers are
// deployment policy, so they are configuration with fixed defaults: moves
// and attacks cost 5 energy, and an attack lands 10 damage only when both
// robots share a tile.
type Tuning struct {
	// MoveCost is the energy deducted per unit move. Must be positive.
	MoveCost int `yaml:"move_cost" env:"MOVE_COST"`

	// AttackCost is the energy the attacker spends per attack, clamped at 0.
	AttackCost int `yaml:"attack_cost" env:"ATTACK_COST"`

	// BaseDamage is dealt to a target on the attacker's tile.
	BaseDamage int `yaml:"base_damage" env:"BASE_DAMAGE"`
}

// DefaultTuning returns the stock constants.
func DefaultTuning() Tuning {
	return Tuning{
		MoveCost:   5,
		AttackCost: 5,
		BaseDamage: 10,
	}
}

// Validate rejects tunings that would break the movement contract.
func (t Tuning) Validate() error {
	if t.MoveCost <= 0 {
		return fmt.Errorf("%w: move cost must be positive (got %d)", ErrInvalidArgument, t.MoveCost)
	}
	if t.AttackCost < 0 {
		return fmt.Errorf("%w: attack cost must not be negative (got %d)", ErrInvalidArgument, t.AttackCost)
	}
	if t.BaseDamage < 0 {
		return fmt.Errorf("%w: base damage must not be negative (got %d)", ErrInvalidArgument, t.BaseDamage)
	}
	return nil
}

// Damage computes the deterministic damage an attacker deals to a target:
// BaseDamage when they share a tile, zero otherwise.
func (t Tuning) Damage(attacker, target *Robot) int {
	if attacker.position == target.position {
		return t.BaseDamage
	}
	return 0
}
