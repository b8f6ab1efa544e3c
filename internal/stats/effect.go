package stats

import "slices"

// Owner is the entity a System belongs to.
type Owner interface {
	Name() string
}

// Effect is an ongoing elemental effect (burn, poison, chill...).
//
// At most one effect per ID is active on a System. Adding an effect whose ID
// is already present tears the old instance down (Removed) and puts the new
// one in its slot.
type Effect interface {
	// ID identifies the effect kind for replace-on-add.
	ID() string
	// Applied is called once when the effect is attached to owner.
	Applied(owner Owner)
	// Update advances the effect by dt seconds.
	Update(s *System, dt float64)
	// Removed is called once when the effect leaves the System.
	Removed()
	// Done reports whether the effect has finished and should be removed.
	Done() bool
}

// effectSet keeps one effect per ID, in insertion order.
type effectSet struct {
	order []Effect
	index map[string]int
}

func newEffectSet() effectSet {
	return effectSet{index: make(map[string]int)}
}

// put stores e, returning the instance it replaced (nil if none).
// A replaced effect keeps its position.
func (es *effectSet) put(e Effect) Effect {
	if i, ok := es.index[e.ID()]; ok {
		old := es.order[i]
		es.order[i] = e
		return old
	}
	es.index[e.ID()] = len(es.order)
	es.order = append(es.order, e)
	return nil
}

// removeAt drops the effect at position i, preserving order.
func (es *effectSet) removeAt(i int) {
	delete(es.index, es.order[i].ID())
	es.order = slices.Delete(es.order, i, i+1)
	for j := i; j < len(es.order); j++ {
		es.index[es.order[j].ID()] = j
	}
}

func (es *effectSet) get(id string) (Effect, bool) {
	i, ok := es.index[id]
	if !ok {
		return nil, false
	}
	return es.order[i], true
}

func (es *effectSet) reset() {
	es.order = nil
	clear(es.index)
}

func (es *effectSet) count() int {
	return len(es.order)
}
