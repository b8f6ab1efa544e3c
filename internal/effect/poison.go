package effect

import (
	"log/slog"

	"github.com/udisondev/forestguard/internal/model"
	"github.com/udisondev/forestguard/internal/stats"
)

// PoisonID is the identity shared by every poison instance.
const PoisonID = "poison"

// Poison deals periodic poison damage. It cannot kill: damage never takes
// health below 1.
// Params: "duration" (default 5), "interval" (default 1), "damage" per pulse (default 4).
type Poison struct {
	duration float64
	interval float64
	damage   float64

	elapsed float64
	pulse   float64

	target *model.Character
}

func NewPoison(params map[string]string) stats.Effect {
	p := &Poison{
		duration: floatParam(params, "duration", 5),
		interval: floatParam(params, "interval", 1),
		damage:   floatParam(params, "damage", 4),
	}
	if p.interval <= 0 {
		p.interval = 1
	}
	return p
}

func (p *Poison) ID() string { return PoisonID }

func (p *Poison) Applied(owner stats.Owner) {
	p.target, _ = owner.(*model.Character)
	slog.Debug("poison started", "target", owner.Name(), "damage", p.damage, "interval", p.interval)
}

func (p *Poison) Update(s *stats.System, dt float64) {
	if p.Done() {
		return
	}
	p.elapsed += dt
	p.pulse += dt

	for p.pulse >= p.interval {
		p.pulse -= p.interval

		// Kill protection: leave at least 1 HP.
		amount := min(p.damage, s.CurrentHealth()-1)
		if amount <= 0 {
			continue
		}

		data := model.NewAttackData(p.target, nil)
		data.AddDamage(model.DamagePoison, amount)
		applyDamage(s, p.target, data)
	}
}

func (p *Poison) Removed() {
	slog.Debug("poison ended", "elapsed", p.elapsed)
}

func (p *Poison) Done() bool {
	return p.elapsed >= p.duration
}
