package stats

import (
	"log/slog"
	"math"
	"slices"
)

// DamageSource is anything that carries a total damage amount (see model.AttackData).
type DamageSource interface {
	TotalDamage() float64
}

// System owns the stats of one character: baseline, effective stats, current
// health, the permanent modifier stack, timed modifiers and elemental effects.
//
// Effective stats are always baseline folded through the permanent stack
// (stack order) and then the timed modifiers (registry order).
//
// Not safe for concurrent use: a System is mutated only from the simulation tick.
type System struct {
	owner Owner

	baseStats Stats
	stats     Stats

	currentHealth float64

	modifiers []*Modifier
	timed     timedRegistry
	effects   effectSet
}

// NewSystem creates an empty System for owner. Call Init before use.
func NewSystem(owner Owner) *System {
	return &System{
		owner:   owner,
		effects: newEffectSet(),
	}
}

// Init sets the baseline stats and restores health to the effective maximum.
//
// Modifier collections are left untouched: Init may run again on a live
// character (data reload, pool reuse) and equipment modifiers stay applied.
func (s *System) Init(baseline Stats) {
	s.baseStats = baseline
	s.fold()
	s.currentHealth = s.stats.Health
}

// Owner returns the entity this System belongs to.
func (s *System) Owner() Owner {
	return s.owner
}

// Stats returns the effective stats.
func (s *System) Stats() Stats {
	return s.stats
}

// BaseStats returns the baseline stats.
func (s *System) BaseStats() Stats {
	return s.baseStats
}

// CurrentHealth returns current health.
func (s *System) CurrentHealth() float64 {
	return s.currentHealth
}

// HealthPercentage returns current/max health in [0, 1], or 0 when max health is 0.
func (s *System) HealthPercentage() float64 {
	if s.stats.Health <= 0 {
		return 0
	}
	return s.currentHealth / s.stats.Health
}

// AddModifier pushes a permanent modifier on the stack and recomputes stats.
func (s *System) AddModifier(m *Modifier) {
	s.modifiers = append(s.modifiers, m)
	s.UpdateEffectiveStats()
}

// RemoveModifier removes m (by identity) from the stack and recomputes stats.
// Removing a modifier that is not on the stack is a no-op.
func (s *System) RemoveModifier(m *Modifier) {
	if i := slices.Index(s.modifiers, m); i >= 0 {
		s.modifiers = slices.Delete(s.modifiers, i, i+1)
	}
	s.UpdateEffectiveStats()
}

// Modifiers returns a copy of the permanent modifier stack.
func (s *System) Modifiers() []*Modifier {
	return slices.Clone(s.modifiers)
}

// AddTimedModifier adds a modifier that expires after duration seconds.
//
// Timed modifiers do not stack: adding an id that already exists overwrites
// its modifier, duration and icon and restarts its timer. Pass Permanent as
// duration for an entry that never expires.
func (s *System) AddTimedModifier(m *Modifier, duration float64, id, icon string) {
	s.timed.upsert(m, duration, id, icon)
	s.UpdateEffectiveStats()
}

// TimedModifier returns the timed modifier registered under id.
func (s *System) TimedModifier(id string) (*TimedModifier, bool) {
	return s.timed.get(id)
}

// TimedModifiers returns a copy of the timed modifiers in registry order.
func (s *System) TimedModifiers() []*TimedModifier {
	return slices.Clone(s.timed.entries)
}

// AddElementalEffect attaches e to the System.
//
// If an effect with the same ID is active, the old one is torn down first
// (Removed) and e takes its position; otherwise e is appended.
func (s *System) AddElementalEffect(e Effect) {
	if old, ok := s.effects.get(e.ID()); ok {
		old.Removed()
		slog.Debug("elemental effect replaced",
			"owner", s.ownerName(),
			"effect", e.ID())
	}

	e.Applied(s.owner)
	s.effects.put(e)
}

// Effect returns the active effect with the given id.
func (s *System) Effect(id string) (Effect, bool) {
	return s.effects.get(id)
}

// Effects returns the active effects in update order.
func (s *System) Effects() []Effect {
	return slices.Clone(s.effects.order)
}

// Tick advances timed modifiers and elemental effects by dt seconds.
func (s *System) Tick(dt float64) {
	if s.timed.tick(dt) {
		s.UpdateEffectiveStats()
	}

	if s.effects.count() == 0 {
		return
	}

	// Effects are visited by position: a finished effect is removed before the
	// next one updates, and effects added during Update are updated this tick.
	for i := 0; i < s.effects.count(); {
		e := s.effects.order[i]
		e.Update(s, dt)

		if i >= s.effects.count() || s.effects.order[i] != e {
			// e was replaced or the set was cleared during Update
			i++
			continue
		}
		if e.Done() {
			e.Removed()
			s.effects.removeAt(i)
			continue
		}
		i++
	}
}

// ChangeHealth adds amount to current health (negative damages, positive heals),
// clamped to [0, max health].
func (s *System) ChangeHealth(amount float64) {
	s.currentHealth = clamp(s.currentHealth+amount, 0, s.stats.Health)
}

// Damage applies the total damage of src. A negative total heals.
func (s *System) Damage(src DamageSource) {
	s.ChangeHealth(-src.TotalDamage())
}

// Death tears down every elemental effect and drops the timed modifiers.
// The permanent stack is kept.
func (s *System) Death() {
	for _, e := range s.effects.order {
		e.Removed()
	}
	s.effects.reset()
	s.timed.reset()

	s.UpdateEffectiveStats()
}

// UpdateEffectiveStats recomputes effective stats from the baseline and all modifiers.
//
// When max health changes, current health is rescaled so the health fraction
// is preserved.
func (s *System) UpdateEffectiveStats() {
	previousMax := s.stats.Health

	s.fold()
	if s.stats.Health == previousMax {
		return
	}

	if previousMax <= 0 {
		s.currentHealth = clamp(s.currentHealth, 0, s.stats.Health)
		return
	}

	fraction := s.currentHealth / previousMax
	s.currentHealth = clamp(math.RoundToEven(fraction*s.stats.Health), 0, s.stats.Health)
}

// fold rebuilds s.stats from the baseline, the permanent stack and the timed modifiers.
func (s *System) fold() {
	s.stats.Copy(s.baseStats)

	for _, m := range s.modifiers {
		s.stats.Modify(m)
	}

	for _, tm := range s.timed.entries {
		if tm.Modifier == nil {
			continue
		}
		s.stats.Modify(tm.Modifier)
	}
}

func (s *System) ownerName() string {
	if s.owner == nil {
		return ""
	}
	return s.owner.Name()
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return max(lo, min(v, hi))
}
