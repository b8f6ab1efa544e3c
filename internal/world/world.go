package world

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/udisondev/forestguard/internal/model"
)

// World — реестр персонажей сцены (одна линия боя).
// Порядок вставки сохраняется: Tick и FindLiveWithinRadius обходят персонажей
// в нём, поэтому результат детерминирован.
//
// Мьютекс защищает только реестр; сами персонажи мутируются из тика симуляции.
type World struct {
	mu         sync.RWMutex
	characters []*model.Character
	index      map[uuid.UUID]int
}

// New создаёт пустой мир.
func New() *World {
	return &World{
		index: make(map[uuid.UUID]int),
	}
}

// Add добавляет персонажа. Повторное добавление того же ID — ошибка.
func (w *World) Add(c *model.Character) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.index[c.ID()]; ok {
		return fmt.Errorf("character %s (%s) already in world", c.Name(), c.ID())
	}

	w.index[c.ID()] = len(w.characters)
	w.characters = append(w.characters, c)
	return nil
}

// Remove удаляет персонажа по ID. Возвращает false если его не было.
func (w *World) Remove(id uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	i, ok := w.index[id]
	if !ok {
		return false
	}

	w.characters = slices.Delete(w.characters, i, i+1)
	delete(w.index, id)
	for j := i; j < len(w.characters); j++ {
		w.index[w.characters[j].ID()] = j
	}
	return true
}

// Get возвращает персонажа по ID.
func (w *World) Get(id uuid.UUID) (*model.Character, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	i, ok := w.index[id]
	if !ok {
		return nil, false
	}
	return w.characters[i], true
}

// Count возвращает число персонажей (включая погибших, ещё не убранных).
func (w *World) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.characters)
}

// CountLive возвращает число живых персонажей фракции.
func (w *World) CountLive(faction model.Faction) int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	n := 0
	for _, c := range w.characters {
		if c.Faction() == faction && !c.IsDeath() {
			n++
		}
	}
	return n
}

// Characters возвращает snapshot всех персонажей в порядке вставки.
func (w *World) Characters() []*model.Character {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.characters)
}

// FindLiveWithinRadius возвращает живых персонажей фракции на расстоянии
// не больше radius от center, в порядке вставки.
func (w *World) FindLiveWithinRadius(center model.Vec2, radius float64, faction model.Faction) []*model.Character {
	w.mu.RLock()
	defer w.mu.RUnlock()

	r2 := radius * radius
	var found []*model.Character
	for _, c := range w.characters {
		if c.Faction() != faction || c.IsDeath() {
			continue
		}
		if center.DistanceSquared(c.Position()) <= r2 {
			found = append(found, c)
		}
	}
	return found
}

// Tick продвигает StatSystem и откат атаки всех живых персонажей.
// Обходит snapshot: эффекты могут добавлять/удалять персонажей.
func (w *World) Tick(dt float64) {
	for _, c := range w.Characters() {
		if c.IsDeath() {
			continue
		}
		c.Tick(dt)
	}
}
