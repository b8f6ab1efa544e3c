package spawn

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/udisondev/forestguard/internal/ai"
	"github.com/udisondev/forestguard/internal/data"
	"github.com/udisondev/forestguard/internal/loot"
	"github.com/udisondev/forestguard/internal/model"
	"github.com/udisondev/forestguard/internal/stats"
	"github.com/udisondev/forestguard/internal/world"
)

func testCatalog(t *testing.T) *data.Catalog {
	t.Helper()
	c, err := data.NewCatalog([]data.Archetype{
		{
			ID: "soldier", Name: "Soldier", Kind: ai.KindSoldier, Faction: model.FactionPlayer,
			Base: stats.Stats{Health: 100, Strength: 10, MoveSpeed: 1, AttackCooldown: 2, Range: 1, SpecialHitAttack: 3, MultiplierSpecialAttack: 2},
		},
		{
			ID: "lumberjack", Name: "Lumberjack", Kind: ai.KindMelee, Faction: model.FactionEnemy, Level: 1,
			Base:    stats.Stats{Health: 50, Strength: 5, MoveSpeed: 1, AttackCooldown: 2, Range: 1, SpecialHitAttack: 3, MultiplierSpecialAttack: 2},
			LevelUp: stats.Stats{Health: 10},
			OnHit:   []data.OnHitDef{{Effect: "burn"}},
			Drops:   []loot.SpawnEvent{{Entries: []loot.Entry{{Item: "coin", Weight: 1, Quantity: 5}}}},
		},
	})
	require.NoError(t, err)
	return c
}

type fixture struct {
	world   *world.World
	ticks   *ai.TickManager
	manager *Manager
	ledger  *loot.Ledger
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	f := &fixture{
		world:  world.New(),
		ticks:  ai.NewTickManager(),
		ledger: &loot.Ledger{},
	}
	if opts.Loot == nil {
		opts.Loot = f.ledger
	}
	f.manager = NewManager(testCatalog(t), f.world, f.ticks, opts)
	return f
}

func TestManager_Spawn(t *testing.T) {
	f := newFixture(t, Options{})

	c, err := f.manager.Spawn(context.Background(), "lumberjack", model.NewVec2(10, 0), 0)
	require.NoError(t, err)

	ch := c.Character()
	assert.Equal(t, "Lumberjack", ch.Name())
	assert.Equal(t, model.FactionEnemy, ch.Faction())
	assert.Equal(t, 60.0, ch.Stats().CurrentHealth(), "level 1 scaling")
	assert.Equal(t, model.NewVec2(10, 0), ch.Position())
	assert.Len(t, ch.AttackEffects(), 1)
	assert.Equal(t, ai.KindMelee, c.Kind())
	assert.Equal(t, ai.StateWalking, c.State())

	got, ok := f.world.Get(ch.ID())
	assert.True(t, ok)
	assert.Same(t, ch, got)
	assert.Equal(t, 1, f.ticks.Count())
	assert.Equal(t, 1, f.manager.LiveCount())

	// enemies walk left by default
	f.world.Tick(0.5)
	f.ticks.Step(0.5)
	assert.Equal(t, 9.5, ch.Position().X)
}

func TestManager_SpawnUnknown(t *testing.T) {
	f := newFixture(t, Options{})

	_, err := f.manager.Spawn(context.Background(), "dragon", model.Vec2{}, 0)

	require.Error(t, err)
	assert.True(t, errors.Is(err, data.ErrNotFound))
	assert.Zero(t, f.world.Count())
	assert.Zero(t, f.ticks.Count())
}

func TestManager_DeathDespawnsAndDropsLoot(t *testing.T) {
	f := newFixture(t, Options{})

	c, err := f.manager.Spawn(context.Background(), "lumberjack", model.NewVec2(4, 2), 0)
	require.NoError(t, err)
	ch := c.Character()

	ch.Stats().ChangeHealth(-1000)
	// no animator: the die clip completes at once
	f.ticks.Step(0.05)

	assert.Zero(t, f.world.Count())
	assert.Zero(t, f.ticks.Count())
	assert.Zero(t, f.manager.LiveCount())
	assert.Equal(t, int64(1), f.manager.Despawned())
	assert.Equal(t, []loot.Drop{{Item: "coin", Quantity: 5, At: model.NewVec2(4, 2)}}, f.ledger.Drops())

	// second despawn is ignored
	f.manager.Despawn(ch)
	assert.Equal(t, int64(1), f.manager.Despawned())
}

func TestManager_ReusesPooledCharacters(t *testing.T) {
	f := newFixture(t, Options{})
	ctx := context.Background()

	first, err := f.manager.Spawn(ctx, "lumberjack", model.NewVec2(4, 0), 0)
	require.NoError(t, err)
	firstChar := first.Character()
	firstID := firstChar.ID()
	firstChar.Stats().AddModifier(stats.NewAbsolute(stats.Stats{Strength: 100}))

	f.manager.Despawn(firstChar)

	second, err := f.manager.Spawn(ctx, "soldier", model.NewVec2(0, 0), 0)
	require.NoError(t, err)

	assert.Same(t, firstChar, second.Character(), "character comes from the pool")
	assert.Same(t, first, second, "combatant comes from the pool")
	assert.NotEqual(t, firstID, second.Character().ID())
	assert.Equal(t, "Soldier", second.Character().Name())
	assert.Equal(t, 10.0, second.Character().Stats().Stats().Strength, "modifiers do not survive reuse")
	assert.Empty(t, second.Character().AttackEffects())
	assert.Equal(t, ai.KindSoldier, second.Kind())

	created, free := f.manager.PoolStats()
	assert.Equal(t, 1, created)
	assert.Zero(t, free)
}

func TestManager_Tracing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	f := newFixture(t, Options{Tracer: tp.Tracer("spawn")})

	c, err := f.manager.Spawn(context.Background(), "soldier", model.Vec2{}, 0)
	require.NoError(t, err)
	f.manager.Despawn(c.Character())
	_, err = f.manager.Spawn(context.Background(), "dragon", model.Vec2{}, 0)
	require.Error(t, err)

	ended := recorder.Ended()
	require.Len(t, ended, 3)
	assert.Equal(t, "spawn.spawn", ended[0].Name())
	assert.Equal(t, "spawn.despawn", ended[1].Name())
	assert.Equal(t, "spawn.spawn", ended[2].Name())
	assert.Len(t, ended[2].Events(), 1, "error recorded")
}

func TestPool(t *testing.T) {
	p := NewPool[int](nil)

	a, reused := p.Get()
	assert.False(t, reused)
	*a = 7
	p.Put(a)
	p.Put(nil)
	assert.Equal(t, 1, p.Free())

	b, reused := p.Get()
	assert.True(t, reused)
	assert.Same(t, a, b)
	assert.Equal(t, 1, p.Created())
	assert.Zero(t, p.Free())
}

func TestProjectilePool(t *testing.T) {
	p := NewProjectilePool(1)

	_, ok := p.Acquire("", model.Vec2{}, model.Vec2{})
	assert.False(t, ok, "no prefab")

	arrow, ok := p.Acquire("arrow", model.NewVec2(1, 0), model.NewVec2(5, 0))
	require.True(t, ok)
	assert.Equal(t, "arrow", arrow.Prefab)

	_, ok = p.Acquire("arrow", model.Vec2{}, model.Vec2{})
	assert.False(t, ok, "capacity reached")
	assert.Len(t, p.Active(), 1)

	p.Release(arrow)
	p.Release(arrow)
	assert.Empty(t, p.Active())

	again, ok := p.Acquire("bolt", model.Vec2{}, model.NewVec2(2, 0))
	require.True(t, ok)
	assert.Same(t, arrow, again)
	assert.Equal(t, "bolt", again.Prefab)
	assert.Zero(t, again.Elapsed)
}

type recordingSpawner struct {
	calls []string
	fail  string
}

func (r *recordingSpawner) Spawn(_ context.Context, id string, _ model.Vec2, _ float64) (*ai.Combatant, error) {
	r.calls = append(r.calls, id)
	if id == r.fail {
		return nil, errors.New("boom")
	}
	return nil, nil
}

func TestWaveScheduler(t *testing.T) {
	s := &recordingSpawner{fail: "broken"}
	w := NewWaveScheduler(s, []Wave{
		{Archetype: "a", Count: 3, Delay: 0, Interval: 1},
		{Archetype: "b", Count: 1, Delay: 1.5},
		{Archetype: "broken", Count: 1, Delay: 2},
		{Archetype: "empty", Count: 0},
	})
	ctx := context.Background()
	assert.Equal(t, 5, w.Pending())

	require.NoError(t, w.Tick(ctx, 0.5))
	assert.Equal(t, []string{"a"}, s.calls)

	require.NoError(t, w.Tick(ctx, 0.5))
	assert.Equal(t, []string{"a", "a"}, s.calls)

	require.NoError(t, w.Tick(ctx, 0.5))
	assert.Equal(t, []string{"a", "a", "b"}, s.calls)

	err := w.Tick(ctx, 0.5)
	assert.ErrorContains(t, err, "wave broken #1")
	assert.Equal(t, []string{"a", "a", "b", "a", "broken"}, s.calls)

	assert.True(t, w.Done())
	require.NoError(t, w.Tick(ctx, 10))
	assert.Len(t, s.calls, 5)
}

func TestProjectilePool_ImplementsProjectiles(t *testing.T) {
	var _ ai.Projectiles = NewProjectilePool(0)
	var _ ai.Despawner = (*Manager)(nil)
	var _ Spawner = (*Manager)(nil)
}
