package ai

import (
	"fmt"
	"strings"
)

// Kind selects what a combatant does when an attack or skill fires.
type Kind int8

const (
	// KindSoldier - normal attacks only
	KindSoldier Kind = iota
	// KindMelee - lumberjacks and wood sawyers: skill is a special melee hit
	KindMelee
	// KindDoctor - skill heals the weakest ally in range
	KindDoctor
	// KindHunter - attacks fire a projectile
	KindHunter
	// KindPassive - never acts, only dies (tree root)
	KindPassive
)

// String returns kind name as used in archetype data
func (k Kind) String() string {
	switch k {
	case KindSoldier:
		return "soldier"
	case KindMelee:
		return "melee"
	case KindDoctor:
		return "doctor"
	case KindHunter:
		return "hunter"
	case KindPassive:
		return "passive"
	default:
		return "unknown"
	}
}

// ParseKind parses kind name (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "soldier":
		return KindSoldier, nil
	case "melee":
		return KindMelee, nil
	case "doctor":
		return KindDoctor, nil
	case "hunter":
		return KindHunter, nil
	case "passive":
		return KindPassive, nil
	default:
		return 0, fmt.Errorf("unknown combatant kind %q", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler (used by YAML decoding).
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Passive reports whether the kind never acts.
func (k Kind) Passive() bool {
	return k == KindPassive
}

// UsesSkill reports whether the special-hit counter triggers a skill.
// Soldiers never use one.
func (k Kind) UsesSkill() bool {
	switch k {
	case KindMelee, KindDoctor, KindHunter:
		return true
	default:
		return false
	}
}

// attackAnimation returns the clip played for a normal attack.
func (k Kind) attackAnimation() string {
	if k == KindSoldier {
		return AnimSoldierAttack
	}
	return AnimEnemyAttack
}
