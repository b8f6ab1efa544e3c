package model

import (
	"fmt"
	"strings"
)

// Faction is the side a character fights for.
type Faction int8

const (
	// FactionPlayer - soldiers and the tree root defending the lane
	FactionPlayer Faction = iota
	// FactionEnemy - lumberjacks, wood sawyers, hunters, doctors
	FactionEnemy
)

// String returns human-readable faction name
func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Opponent returns the faction this one attacks.
func (f Faction) Opponent() Faction {
	if f == FactionPlayer {
		return FactionEnemy
	}
	return FactionPlayer
}

// ParseFaction parses "player" / "enemy" (case-insensitive).
func ParseFaction(s string) (Faction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "player":
		return FactionPlayer, nil
	case "enemy":
		return FactionEnemy, nil
	default:
		return 0, fmt.Errorf("unknown faction %q", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler (used by YAML decoding).
func (f *Faction) UnmarshalText(text []byte) error {
	parsed, err := ParseFaction(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (f Faction) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
