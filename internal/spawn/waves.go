package spawn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/forestguard/internal/ai"
	"github.com/udisondev/forestguard/internal/model"
)

// Wave — серия спавнов одного архетипа на линии.
type Wave struct {
	Archetype string
	Count     int
	// Delay — секунды от старта до первого спавна.
	Delay float64
	// Interval — секунды между спавнами внутри волны.
	Interval  float64
	Position  model.Vec2
	Direction float64
}

// Spawner — то, что умеет спавнить по архетипу (Manager).
type Spawner interface {
	Spawn(ctx context.Context, archetypeID string, pos model.Vec2, direction float64) (*ai.Combatant, error)
}

type waveTask struct {
	wave   Wave
	next   float64
	issued int
}

// WaveScheduler спавнит волны по игровому времени (тикается симуляцией).
type WaveScheduler struct {
	spawner Spawner
	tasks   []*waveTask
	elapsed float64
}

// NewWaveScheduler создаёт планировщик волн.
func NewWaveScheduler(spawner Spawner, waves []Wave) *WaveScheduler {
	s := &WaveScheduler{spawner: spawner}
	for _, w := range waves {
		if w.Count <= 0 {
			continue
		}
		s.tasks = append(s.tasks, &waveTask{wave: w, next: w.Delay})
	}
	return s
}

// Tick продвигает время на dt и выполняет все наступившие спавны.
// Ошибки спавна не останавливают остальные волны.
func (s *WaveScheduler) Tick(ctx context.Context, dt float64) error {
	s.elapsed += dt

	var errs []error
	for _, task := range s.tasks {
		for task.issued < task.wave.Count && task.next <= s.elapsed {
			task.issued++
			task.next += task.wave.Interval

			if _, err := s.spawner.Spawn(ctx, task.wave.Archetype, task.wave.Position, task.wave.Direction); err != nil {
				errs = append(errs, fmt.Errorf("wave %s #%d: %w", task.wave.Archetype, task.issued, err))
				continue
			}

			slog.Debug("wave spawn",
				"archetype", task.wave.Archetype,
				"n", task.issued,
				"of", task.wave.Count,
				"elapsed", s.elapsed)
		}
	}

	return errors.Join(errs...)
}

// Pending возвращает число ещё не выполненных спавнов.
func (s *WaveScheduler) Pending() int {
	n := 0
	for _, task := range s.tasks {
		n += task.wave.Count - task.issued
	}
	return n
}

// Done сообщает, что все волны выпущены.
func (s *WaveScheduler) Done() bool {
	return s.Pending() == 0
}
