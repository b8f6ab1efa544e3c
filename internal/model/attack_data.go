package model

import "math"

// DamageType classifies one bucket of an attack.
type DamageType int8

const (
	// DamagePhysical - weapon damage, boosted by attacker strength
	DamagePhysical DamageType = iota
	// DamageFire - burn effects
	DamageFire
	// DamagePoison - poison effects
	DamagePoison

	damageTypeCount
)

// String returns human-readable damage type name
func (t DamageType) String() string {
	switch t {
	case DamagePhysical:
		return "PHYSICAL"
	case DamageFire:
		return "FIRE"
	case DamagePoison:
		return "POISON"
	default:
		return "UNKNOWN"
	}
}

// AttackData accumulates the damage of one attack against one target.
//
// Source may be nil for environmental damage (elemental effects, traps):
// such damage gets no strength boost.
type AttackData struct {
	target *Character
	source *Character

	damages [damageTypeCount]float64
}

// NewAttackData creates an empty attack on target from source (nil allowed).
func NewAttackData(target, source *Character) *AttackData {
	return &AttackData{target: target, source: source}
}

// Target returns attacked character.
func (a *AttackData) Target() *Character {
	return a.target
}

// Source returns attacker or nil.
func (a *AttackData) Source() *Character {
	return a.source
}

// AddDamage adds amount of the given type and returns what was actually added.
//
// Physical damage from a character source is increased by 1% per point of the
// source's effective strength, floored: amount + floor(amount * strength * 0.01).
// Other types are added as is. Defense is not applied.
func (a *AttackData) AddDamage(t DamageType, amount float64) float64 {
	if t < 0 || t >= damageTypeCount {
		return 0
	}

	added := amount
	if t == DamagePhysical && a.source != nil {
		added += math.Floor(amount * a.source.Stats().Stats().Strength * 0.01)
	}

	a.damages[t] += added
	return added
}

// Damage returns the accumulated damage of one type.
func (a *AttackData) Damage(t DamageType) float64 {
	if t < 0 || t >= damageTypeCount {
		return 0
	}
	return a.damages[t]
}

// TotalDamage returns the sum over all types.
func (a *AttackData) TotalDamage() float64 {
	var total float64
	for _, d := range a.damages {
		total += d
	}
	return total
}
