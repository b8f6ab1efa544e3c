package effect

import (
	"log/slog"

	"github.com/udisondev/forestguard/internal/stats"
)

// ChillID is the identity shared by every chill instance.
const ChillID = "chill"

// statHolder is an owner exposing its StatSystem (model.Character does).
type statHolder interface {
	Stats() *stats.System
}

// Chill slows the owner: moveSpeed is reduced and attackCooldown increased
// by "slow" percent for "duration" seconds (defaults 30 and 2).
//
// The slow is a permanent modifier pushed on Applied and removed on Removed,
// so replacing a chill swaps the modifier instead of stacking it.
type Chill struct {
	duration float64
	slow     float64
	elapsed  float64

	system   *stats.System
	modifier *stats.Modifier
}

func NewChill(params map[string]string) stats.Effect {
	return &Chill{
		duration: floatParam(params, "duration", 2),
		slow:     floatParam(params, "slow", 30),
	}
}

func (c *Chill) ID() string { return ChillID }

func (c *Chill) Applied(owner stats.Owner) {
	h, ok := owner.(statHolder)
	if !ok {
		return
	}
	c.system = h.Stats()
	c.modifier = stats.NewPercentage(stats.Stats{
		MoveSpeed:      -c.slow,
		AttackCooldown: c.slow,
	})
	c.system.AddModifier(c.modifier)

	slog.Debug("chill started", "target", owner.Name(), "slow", c.slow)
}

func (c *Chill) Update(_ *stats.System, dt float64) {
	c.elapsed += dt
}

func (c *Chill) Removed() {
	if c.system != nil {
		c.system.RemoveModifier(c.modifier)
		c.system = nil
	}
	slog.Debug("chill ended", "elapsed", c.elapsed)
}

func (c *Chill) Done() bool {
	return c.elapsed >= c.duration
}
