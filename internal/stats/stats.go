package stats

import "math"

// Stats is the tunable attribute block of a character.
// Value type: copy it, never share it.
type Stats struct {
	Health                  float64 `yaml:"health"`
	Strength                float64 `yaml:"strength"`
	MoveSpeed               float64 `yaml:"move_speed"`
	AttackCooldown          float64 `yaml:"attack_cooldown"` // seconds
	Range                   float64 `yaml:"range"`
	SpecialHitAttack        int     `yaml:"special_hit_attack"`
	MultiplierSpecialAttack float64 `yaml:"multiplier_special_attack"`
}

// Copy overwrites s with other.
func (s *Stats) Copy(other Stats) {
	*s = other
}

// Add returns the field-wise sum of s and other.
func (s Stats) Add(other Stats) Stats {
	return Stats{
		Health:                  s.Health + other.Health,
		Strength:                s.Strength + other.Strength,
		MoveSpeed:               s.MoveSpeed + other.MoveSpeed,
		AttackCooldown:          s.AttackCooldown + other.AttackCooldown,
		Range:                   s.Range + other.Range,
		SpecialHitAttack:        s.SpecialHitAttack + other.SpecialHitAttack,
		MultiplierSpecialAttack: s.MultiplierSpecialAttack + other.MultiplierSpecialAttack,
	}
}

// Modify folds a single modifier into s.
//
// Percentage deltas are taken against the current (partially folded) value,
// so stacked percentage modifiers compound in stack order.
func (s *Stats) Modify(m *Modifier) {
	d := m.Stats
	if m.Mode == Percentage {
		s.Health += s.Health * (d.Health / 100.0)
		s.Strength += s.Strength * (d.Strength / 100.0)
		s.MoveSpeed += s.MoveSpeed * (d.MoveSpeed / 100.0)
		s.AttackCooldown += s.AttackCooldown * (d.AttackCooldown / 100.0)
		s.Range += s.Range * (d.Range / 100.0)
		s.SpecialHitAttack += int(math.Floor(float64(s.SpecialHitAttack) * (float64(d.SpecialHitAttack) / 100.0)))
		s.MultiplierSpecialAttack += s.MultiplierSpecialAttack * (d.MultiplierSpecialAttack / 100.0)
		return
	}

	*s = s.Add(d)
}
