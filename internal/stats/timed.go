package stats

// Permanent is the Timer sentinel of a timed modifier that never expires.
const Permanent = -1.0

// TimedModifier is a keyed modifier removed when its timer runs out.
// Re-adding the same ID refreshes the entry instead of stacking.
type TimedModifier struct {
	ID       string
	Modifier *Modifier
	Icon     string

	Duration float64
	Timer    float64
}

// Reset restarts the countdown.
func (tm *TimedModifier) Reset() {
	tm.Timer = tm.Duration
}

// IsPermanent reports whether the modifier carries the Permanent sentinel.
func (tm *TimedModifier) IsPermanent() bool {
	return tm.Timer == Permanent
}

// timedRegistry keeps timed modifiers in insertion order.
type timedRegistry struct {
	entries []*TimedModifier
}

// upsert adds or refreshes the entry with the given id.
func (r *timedRegistry) upsert(mod *Modifier, duration float64, id, icon string) *TimedModifier {
	var entry *TimedModifier
	for _, e := range r.entries {
		if e.ID == id {
			entry = e
			break
		}
	}

	if entry == nil {
		entry = &TimedModifier{ID: id}
		r.entries = append(r.entries, entry)
	}

	entry.Icon = icon
	entry.Duration = duration
	entry.Modifier = mod
	entry.Reset()
	return entry
}

// tick decrements every non-permanent timer and drops the expired entries.
// Returns true if anything was removed.
func (r *timedRegistry) tick(dt float64) bool {
	removed := false
	n := 0
	for _, e := range r.entries {
		if !e.IsPermanent() {
			e.Timer -= dt
			if e.Timer <= 0 {
				removed = true
				continue
			}
		}
		r.entries[n] = e
		n++
	}
	clear(r.entries[n:])
	r.entries = r.entries[:n]
	return removed
}

func (r *timedRegistry) get(id string) (*TimedModifier, bool) {
	for _, e := range r.entries {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

func (r *timedRegistry) reset() {
	r.entries = nil
}
