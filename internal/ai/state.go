package ai

// State represents combat FSM state
type State int8

const (
	// StateNone - uninitialized, never re-entered after Start
	StateNone State = iota
	// StateIdle - waiting for a pending action or the attack cooldown
	StateIdle
	// StateWalking - no target, advancing along the lane
	StateWalking
	// StateAttacking - target in reach, waiting for the cooldown to fire
	StateAttacking
)

// String returns human-readable state name
func (s State) String() string {
	switch s {
	case StateNone:
		return "NONE"
	case StateIdle:
		return "IDLE"
	case StateWalking:
		return "WALKING"
	case StateAttacking:
		return "ATTACKING"
	default:
		return "UNKNOWN"
	}
}
