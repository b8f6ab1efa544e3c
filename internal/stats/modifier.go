package stats

// Mode defines how a Modifier is folded into Stats.
type Mode int8

const (
	Absolute   Mode = iota // values are added as is
	Percentage             // values are percents of the current value (50 = +50%)
)

// String returns human-readable mode name.
func (m Mode) String() string {
	switch m {
	case Absolute:
		return "ABSOLUTE"
	case Percentage:
		return "PERCENTAGE"
	default:
		return "UNKNOWN"
	}
}

// Modifier is a Stats delta applied on top of the baseline.
//
// Modifiers are identified by pointer: two modifiers with the same values
// are still removed independently, so keep the *Modifier returned to you.
type Modifier struct {
	Mode  Mode
	Stats Stats
}

// NewAbsolute creates an absolute modifier.
func NewAbsolute(delta Stats) *Modifier {
	return &Modifier{Mode: Absolute, Stats: delta}
}

// NewPercentage creates a percentage modifier.
func NewPercentage(delta Stats) *Modifier {
	return &Modifier{Mode: Percentage, Stats: delta}
}
