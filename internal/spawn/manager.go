package spawn

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/udisondev/forestguard/internal/ai"
	"github.com/udisondev/forestguard/internal/data"
	"github.com/udisondev/forestguard/internal/loot"
	"github.com/udisondev/forestguard/internal/model"
	"github.com/udisondev/forestguard/internal/world"
)

// Catalog выдаёт архетипы по ID (реализует data.Catalog).
type Catalog interface {
	Get(id string) (*data.Archetype, error)
}

// Animators создаёт аниматор для нового персонажа и забывает его при despawn.
type Animators interface {
	Animator(c *model.Character) ai.Animator
	Release(c *model.Character)
}

// Options — необязательные зависимости Manager.
type Options struct {
	Projectiles *ProjectilePool
	Animators   Animators
	// Loot получает выпавшие предметы; nil — лут не роллится.
	Loot loot.Sink
	Rand loot.Rand
	// Tracer — nil означает no-op.
	Tracer trace.Tracer
}

// Manager создаёт и убирает персонажей: персонаж + контроллер боя,
// регистрация в World и TickManager. Персонажи и контроллеры переиспользуются через пулы.
type Manager struct {
	catalog Catalog
	world   *world.World
	ticks   *ai.TickManager
	opts    Options

	characters *Pool[model.Character]
	combatants *Pool[ai.Combatant]

	mu   sync.Mutex
	live map[uuid.UUID]*ai.Combatant

	spawned   atomic.Int64
	despawned atomic.Int64
}

// NewManager создаёт spawn manager.
func NewManager(catalog Catalog, w *world.World, ticks *ai.TickManager, opts Options) *Manager {
	if opts.Tracer == nil {
		opts.Tracer = noop.NewTracerProvider().Tracer("spawn")
	}
	return &Manager{
		catalog:    catalog,
		world:      w,
		ticks:      ticks,
		opts:       opts,
		characters: NewPool[model.Character](nil),
		combatants: NewPool[ai.Combatant](nil),
		live:       make(map[uuid.UUID]*ai.Combatant),
	}
}

// Spawn создаёт персонажа архетипа archetypeID в позиции pos.
// direction — направление движения по линии (-1/+1); 0 — игроки идут вправо, враги влево.
func (m *Manager) Spawn(ctx context.Context, archetypeID string, pos model.Vec2, direction float64) (*ai.Combatant, error) {
	_, span := m.opts.Tracer.Start(ctx, "spawn.spawn",
		trace.WithAttributes(attribute.String("archetype", archetypeID)))
	defer span.End()

	a, err := m.catalog.Get(archetypeID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unknown archetype")
		return nil, fmt.Errorf("spawning %s: %w", archetypeID, err)
	}

	if direction == 0 {
		direction = 1
		if a.Faction == model.FactionEnemy {
			direction = -1
		}
	}

	ch, _ := m.characters.Get()
	ch.Reset(a.Name, a.Faction, a, a.Level)
	ch.Init()
	ch.SetPosition(pos)
	for _, e := range a.AttackEffects() {
		ch.AddAttackEffect(e)
	}

	if err := m.world.Add(ch); err != nil {
		m.characters.Put(ch)
		span.RecordError(err)
		span.SetStatus(codes.Error, "world add failed")
		return nil, fmt.Errorf("adding %s to world: %w", archetypeID, err)
	}

	deps := ai.Deps{
		Spatial:   m.world,
		Despawner: m,
	}
	if m.opts.Animators != nil {
		deps.Animator = m.opts.Animators.Animator(ch)
	}
	if m.opts.Projectiles != nil {
		deps.Projectiles = m.opts.Projectiles
	}
	if m.opts.Loot != nil && len(a.Drops) > 0 {
		deps.Loot = loot.NewSpawner(a.Drops, m.opts.Rand, m.opts.Loot)
	}

	c, _ := m.combatants.Get()
	c.Reset(ch, ai.Options{Kind: a.Kind, Direction: direction, Projectile: a.Projectile}, deps)

	m.mu.Lock()
	m.live[ch.ID()] = c
	m.mu.Unlock()

	m.ticks.Register(ch.ID(), c)
	m.spawned.Add(1)

	span.SetAttributes(
		attribute.String("character.id", ch.ID().String()),
		attribute.String("faction", a.Faction.String()),
	)

	slog.Info("character spawned",
		"id", ch.ID(),
		"archetype", archetypeID,
		"name", ch.Name(),
		"faction", ch.Faction(),
		"level", ch.Level(),
		"x", pos.X,
		"y", pos.Y)

	return c, nil
}

// Despawn убирает персонажа из мира и тиков и возвращает его в пул (реализует ai.Despawner).
// Повторный вызов игнорируется.
func (m *Manager) Despawn(ch *model.Character) {
	m.mu.Lock()
	c, ok := m.live[ch.ID()]
	if ok {
		delete(m.live, ch.ID())
	}
	m.mu.Unlock()

	if !ok {
		slog.Warn("despawning unknown character", "id", ch.ID(), "name", ch.Name())
		return
	}

	_, span := m.opts.Tracer.Start(context.Background(), "spawn.despawn",
		trace.WithAttributes(attribute.String("character.id", ch.ID().String())))
	defer span.End()

	id := ch.ID()
	m.ticks.Unregister(id)
	m.world.Remove(id)
	if m.opts.Animators != nil {
		m.opts.Animators.Release(ch)
	}

	m.combatants.Put(c)
	m.characters.Put(ch)
	m.despawned.Add(1)

	slog.Info("character despawned",
		"id", id,
		"name", ch.Name(),
		"faction", ch.Faction())
}

// Combatant возвращает живой контроллер персонажа.
func (m *Manager) Combatant(id uuid.UUID) (*ai.Combatant, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.live[id]
	return c, ok
}

// LiveCount возвращает число заспавненных и ещё не убранных персонажей.
func (m *Manager) LiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.live)
}

// Spawned возвращает общее число спавнов.
func (m *Manager) Spawned() int64 {
	return m.spawned.Load()
}

// Despawned возвращает общее число despawn.
func (m *Manager) Despawned() int64 {
	return m.despawned.Load()
}

// PoolStats возвращает (created, free) для пула персонажей.
func (m *Manager) PoolStats() (created, free int) {
	return m.characters.Created(), m.characters.Free()
}
