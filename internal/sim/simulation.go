package sim

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/udisondev/forestguard/internal/ai"
	"github.com/udisondev/forestguard/internal/model"
	"github.com/udisondev/forestguard/internal/spawn"
	"github.com/udisondev/forestguard/internal/world"
)

// Outcome is the state of a battle.
type Outcome int8

const (
	// OutcomeRunning - both sides still fighting or waves pending
	OutcomeRunning Outcome = iota
	// OutcomeVictory - every wave spawned and no enemy left alive
	OutcomeVictory
	// OutcomeDefeat - no player character left alive
	OutcomeDefeat
)

// String returns human-readable outcome name
func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time summary of the simulation.
type Snapshot struct {
	Steps       int64
	Elapsed     float64
	Players     int
	Enemies     int
	Projectiles int
	Spawned     int64
	Despawned   int64
	Outcome     Outcome
}

// Simulation steps one battle lane: waves, characters, animation, combat.
type Simulation struct {
	world    *world.World
	ticks    *ai.TickManager
	timeline *Timeline
	manager  *spawn.Manager
	waves    *spawn.WaveScheduler
	shots    *spawn.ProjectilePool
	tracer   trace.Tracer

	steps   int64
	elapsed float64
}

// Deps are the parts a Simulation steps. Waves and Projectiles may be nil.
type Deps struct {
	World       *world.World
	Ticks       *ai.TickManager
	Timeline    *Timeline
	Manager     *spawn.Manager
	Waves       *spawn.WaveScheduler
	Projectiles *spawn.ProjectilePool
	Tracer      trace.Tracer
}

// New creates a simulation.
func New(d Deps) *Simulation {
	if d.Tracer == nil {
		d.Tracer = noop.NewTracerProvider().Tracer("sim")
	}
	return &Simulation{
		world:    d.World,
		ticks:    d.Ticks,
		timeline: d.Timeline,
		manager:  d.Manager,
		waves:    d.Waves,
		shots:    d.Projectiles,
		tracer:   d.Tracer,
	}
}

// Step advances the battle by dt seconds:
//  1. due waves spawn
//  2. characters tick (timed modifiers, effects, attack cooldown)
//  3. animation clips advance (death completion)
//  4. combat controllers tick
func (s *Simulation) Step(ctx context.Context, dt float64) {
	ctx, span := s.tracer.Start(ctx, "sim.tick")
	defer span.End()

	if s.waves != nil {
		if err := s.waves.Tick(ctx, dt); err != nil {
			span.RecordError(err)
			slog.Warn("wave spawn failed", "err", err)
		}
	}

	s.world.Tick(dt)
	if s.timeline != nil {
		s.timeline.Advance(dt)
	}
	s.ticks.Step(dt)

	s.steps++
	s.elapsed += dt

	span.SetAttributes(
		attribute.Int64("step", s.steps),
		attribute.Int("characters", s.world.Count()),
	)
}

// Outcome reports whether the battle is decided.
func (s *Simulation) Outcome() Outcome {
	if s.world.CountLive(model.FactionPlayer) == 0 {
		return OutcomeDefeat
	}
	if (s.waves == nil || s.waves.Done()) && s.world.CountLive(model.FactionEnemy) == 0 {
		return OutcomeVictory
	}
	return OutcomeRunning
}

// Stats returns a snapshot of counters.
func (s *Simulation) Stats() Snapshot {
	snap := Snapshot{
		Steps:   s.steps,
		Elapsed: s.elapsed,
		Players: s.world.CountLive(model.FactionPlayer),
		Enemies: s.world.CountLive(model.FactionEnemy),
		Outcome: s.Outcome(),
	}
	if s.shots != nil {
		snap.Projectiles = len(s.shots.Active())
	}
	if s.manager != nil {
		snap.Spawned = s.manager.Spawned()
		snap.Despawned = s.manager.Despawned()
	}
	return snap
}

// Run steps the simulation every interval of wall time until the battle is
// decided (returns nil) or ctx is done.
func (s *Simulation) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = ai.DefaultTickInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("simulation started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation stopping", "steps", s.steps)
			return ctx.Err()

		case <-ticker.C:
			s.Step(ctx, interval.Seconds())
			if o := s.Outcome(); o != OutcomeRunning {
				s.logFinished(o)
				return nil
			}
		}
	}
}

// ErrStepLimit is returned by RunSteps when the battle is still running.
var ErrStepLimit = errors.New("step limit reached")

// RunSteps steps the simulation by dt without waiting on wall time, until the
// battle is decided or maxSteps is reached.
func (s *Simulation) RunSteps(ctx context.Context, dt float64, maxSteps int) (Outcome, error) {
	for range maxSteps {
		if err := ctx.Err(); err != nil {
			return OutcomeRunning, err
		}
		s.Step(ctx, dt)
		if o := s.Outcome(); o != OutcomeRunning {
			s.logFinished(o)
			return o, nil
		}
	}
	return OutcomeRunning, ErrStepLimit
}

func (s *Simulation) logFinished(o Outcome) {
	snap := s.Stats()
	slog.Info("simulation finished",
		"outcome", o,
		"steps", snap.Steps,
		"elapsed", snap.Elapsed,
		"spawned", snap.Spawned,
		"despawned", snap.Despawned)
}
