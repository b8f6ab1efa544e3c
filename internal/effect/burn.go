package effect

import (
	"log/slog"

	"github.com/udisondev/forestguard/internal/model"
	"github.com/udisondev/forestguard/internal/stats"
)

// BurnID is the identity shared by every burn instance.
const BurnID = "burn"

// Burn deals fire damage every tick for a fixed duration.
// Params: "duration" (seconds, default 3), "dps" (damage per second, default 5).
type Burn struct {
	duration float64
	dps      float64
	elapsed  float64

	target *model.Character
}

func NewBurn(params map[string]string) stats.Effect {
	return &Burn{
		duration: floatParam(params, "duration", 3),
		dps:      floatParam(params, "dps", 5),
	}
}

func (b *Burn) ID() string { return BurnID }

func (b *Burn) Applied(owner stats.Owner) {
	b.target, _ = owner.(*model.Character)
	slog.Debug("burn started", "target", owner.Name(), "dps", b.dps, "duration", b.duration)
}

func (b *Burn) Update(s *stats.System, dt float64) {
	step := min(dt, b.duration-b.elapsed)
	if step <= 0 {
		return
	}
	b.elapsed += step

	data := model.NewAttackData(b.target, nil)
	data.AddDamage(model.DamageFire, b.dps*step)
	applyDamage(s, b.target, data)
}

func (b *Burn) Removed() {
	slog.Debug("burn ended", "elapsed", b.elapsed)
}

func (b *Burn) Done() bool {
	return b.elapsed >= b.duration
}

// applyDamage routes effect damage through the character (so OnDamage fires)
// when the owner is one, and straight into the System otherwise.
func applyDamage(s *stats.System, target *model.Character, data *model.AttackData) {
	if target != nil {
		target.Damage(data)
		return
	}
	s.Damage(data)
}
