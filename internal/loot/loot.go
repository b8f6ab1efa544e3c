package loot

import (
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/udisondev/forestguard/internal/model"
)

// Entry is one weighted candidate of a SpawnEvent.
type Entry struct {
	Item     string `yaml:"item"`
	Weight   int    `yaml:"weight"`
	Quantity int    `yaml:"quantity"`
}

// SpawnEvent drops at most one of its entries, picked by weight.
type SpawnEvent struct {
	Entries []Entry `yaml:"entries"`
}

// Drop is a rolled item placed in the world.
type Drop struct {
	Item     string
	Quantity int
	At       model.Vec2
}

// Rand is the random source used for rolls; *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// Roll picks one item per event.
//
// Algorithm (per event):
//  1. Sum the weights; an event with zero total weight drops nothing
//  2. Build cumulative fractions in entry order
//  3. Roll r in [0,1) and take the first entry with r <= cumulative
//     that names an item (entries without an item fall through)
func Roll(rng Rand, events []SpawnEvent) []Drop {
	if rng == nil {
		rng = globalRand{}
	}

	var drops []Drop
	for _, event := range events {
		total := 0
		for _, e := range event.Entries {
			if e.Weight > 0 {
				total += e.Weight
			}
		}
		if total == 0 {
			continue
		}

		r := rng.Float64()
		cumulative := 0.0
		for _, e := range event.Entries {
			if e.Weight > 0 {
				cumulative += float64(e.Weight) / float64(total)
			}
			if r <= cumulative && e.Item != "" {
				qty := e.Quantity
				if qty <= 0 {
					qty = 1
				}
				drops = append(drops, Drop{Item: e.Item, Quantity: qty})
				break
			}
		}
	}
	return drops
}

// Sink receives rolled drops (inventory, UI, a log).
type Sink interface {
	Drop(d Drop)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(d Drop)

// Drop calls f(d).
func (f SinkFunc) Drop(d Drop) { f(d) }

// Spawner rolls the drop table of one character when it dies.
type Spawner struct {
	events []SpawnEvent
	rng    Rand
	sink   Sink
}

// NewSpawner creates a spawner; nil rng uses the global source.
func NewSpawner(events []SpawnEvent, rng Rand, sink Sink) *Spawner {
	if rng == nil {
		rng = globalRand{}
	}
	return &Spawner{events: events, rng: rng, sink: sink}
}

// SpawnLoot rolls the table and places every drop at position at.
func (s *Spawner) SpawnLoot(at model.Vec2) {
	for _, d := range Roll(s.rng, s.events) {
		d.At = at
		if s.sink != nil {
			s.sink.Drop(d)
		}
		slog.Debug("loot dropped", "item", d.Item, "quantity", d.Quantity, "x", d.At.X, "y", d.At.Y)
	}
}

// Ledger is a Sink that keeps every drop; safe for concurrent use.
type Ledger struct {
	mu    sync.Mutex
	drops []Drop
}

// Drop records d.
func (l *Ledger) Drop(d Drop) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.drops = append(l.drops, d)
}

// Drops returns a copy of recorded drops in order.
func (l *Ledger) Drops() []Drop {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Drop, len(l.drops))
	copy(out, l.drops)
	return out
}

// Totals returns dropped quantity per item.
func (l *Ledger) Totals() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	totals := make(map[string]int, len(l.drops))
	for _, d := range l.drops {
		totals[d.Item] += d.Quantity
	}
	return totals
}
