package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mockai "github.com/udisondev/forestguard/internal/ai/mock"
	"github.com/udisondev/forestguard/internal/model"
	"github.com/udisondev/forestguard/internal/stats"
)

const dt = 0.5

type fixedStats stats.Stats

func (f fixedStats) StatsAtLevel(int) stats.Stats { return stats.Stats(f) }

func combatStats() stats.Stats {
	return stats.Stats{
		Health:                  100,
		Strength:                10,
		MoveSpeed:               1,
		AttackCooldown:          2,
		Range:                   5,
		SpecialHitAttack:        100,
		MultiplierSpecialAttack: 2,
	}
}

func newCharacter(name string, faction model.Faction, s stats.Stats, pos model.Vec2) *model.Character {
	c := model.NewCharacter(name, faction, fixedStats(s), 0)
	c.Init()
	c.SetPosition(pos)
	return c
}

// looseAnimator accepts any animation call.
func looseAnimator(ctrl *gomock.Controller) *mockai.MockAnimator {
	anim := mockai.NewMockAnimator(ctrl)
	anim.EXPECT().PlayAnimation(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	anim.EXPECT().SetPlaybackRate(gomock.Any()).AnyTimes()
	return anim
}

// spatialReturning answers every opponent query with targets and every ally query with allies.
func spatialReturning(ctrl *gomock.Controller, self model.Faction, targets, allies []*model.Character) *mockai.MockSpatial {
	spatial := mockai.NewMockSpatial(ctrl)
	spatial.EXPECT().FindLiveWithinRadius(gomock.Any(), gomock.Any(), self.Opponent()).Return(targets).AnyTimes()
	spatial.EXPECT().FindLiveWithinRadius(gomock.Any(), gomock.Any(), self).Return(allies).AnyTimes()
	return spatial
}

// stepAll ticks characters first, then the combatant, like the simulation does.
func stepAll(c *Combatant, chars ...*model.Character) {
	for _, ch := range chars {
		ch.Tick(dt)
	}
	c.Tick(dt)
}

func TestCombatant_AttackCycle(t *testing.T) {
	ctrl := gomock.NewController(t)

	attacker := newCharacter("Lumberjack", model.FactionEnemy, combatStats(), model.NewVec2(4, 0))
	target := newCharacter("Soldier", model.FactionPlayer, combatStats(), model.NewVec2(0, 0))

	c := NewCombatant(attacker, Options{Kind: KindMelee, Direction: -1}, Deps{
		Animator: looseAnimator(ctrl),
		Spatial:  spatialReturning(ctrl, model.FactionEnemy, []*model.Character{target}, nil),
	})
	c.Start()
	require.Equal(t, StateWalking, c.State())

	// cooldown still running from a previous swing
	attacker.AttackTriggered()

	want := []State{
		StateAttacking, // target spotted, no movement
		StateAttacking, // cooldown 1.0
		StateAttacking, // cooldown 0.5
		StateIdle,      // cooldown elapsed: swing
		StateIdle,      // waiting for the clip
		StateIdle,
		StateIdle,      // hit lands, cooldown 0.5
		StateAttacking, // cooldown elapsed
		StateIdle,      // second swing
	}

	var got []State
	var health []float64
	for range want {
		stepAll(c, attacker, target)
		got = append(got, c.State())
		health = append(health, target.Stats().CurrentHealth())
	}

	assert.Equal(t, want, got)
	assert.Equal(t, model.NewVec2(4, 0), attacker.Position(), "no movement while a target is held")
	assert.Same(t, target, c.Target())
	assert.Equal(t, 2, c.Hits())

	// damage is deferred to the end of the clip: 10 + floor(10*10*0.01) = 11
	assert.Equal(t, []float64{100, 100, 100, 100, 100, 100, 89, 89, 89}, health)
}

func TestCombatant_WalksWithoutTarget(t *testing.T) {
	ctrl := gomock.NewController(t)

	anim := mockai.NewMockAnimator(ctrl)
	anim.EXPECT().PlayAnimation(AnimWalk, true, gomock.Nil()).Times(1)
	anim.EXPECT().SetPlaybackRate(gomock.Any()).AnyTimes()

	ch := newCharacter("Lumberjack", model.FactionEnemy, combatStats(), model.NewVec2(10, 2))
	c := NewCombatant(ch, Options{Kind: KindMelee, Direction: -1}, Deps{
		Animator: anim,
		Spatial:  spatialReturning(ctrl, model.FactionEnemy, nil, nil),
	})
	c.Start()

	for range 4 {
		stepAll(c, ch)
	}

	assert.Equal(t, StateWalking, c.State())
	assert.InDelta(t, 8.0, ch.Position().X, 1e-9)
	assert.Equal(t, 2.0, ch.Position().Y)
}

func TestCombatant_ClosestTarget(t *testing.T) {
	ctrl := gomock.NewController(t)

	ch := newCharacter("Soldier", model.FactionPlayer, combatStats(), model.NewVec2(0, 0))
	far := newCharacter("far", model.FactionEnemy, combatStats(), model.NewVec2(4, 0))
	tieA := newCharacter("tieA", model.FactionEnemy, combatStats(), model.NewVec2(2, 0))
	tieB := newCharacter("tieB", model.FactionEnemy, combatStats(), model.NewVec2(-2, 0))
	dead := newCharacter("dead", model.FactionEnemy, combatStats(), model.NewVec2(1, 0))
	dead.Stats().ChangeHealth(-1000)

	spatial := mockai.NewMockSpatial(ctrl)
	spatial.EXPECT().
		FindLiveWithinRadius(model.NewVec2(0, 0), 5.0, model.FactionEnemy).
		Return([]*model.Character{far, dead, tieA, tieB})

	c := NewCombatant(ch, Options{Kind: KindSoldier}, Deps{Spatial: spatial})

	assert.Same(t, tieA, c.closestTarget())
}

func TestCombatant_TargetOutOfReach(t *testing.T) {
	ctrl := gomock.NewController(t)

	attacker := newCharacter("Soldier", model.FactionPlayer, combatStats(), model.NewVec2(0, 0))
	target := newCharacter("Lumberjack", model.FactionEnemy, combatStats(), model.NewVec2(3, 0))
	attacker.AttackTriggered()

	spatial := mockai.NewMockSpatial(ctrl)
	first := spatial.EXPECT().FindLiveWithinRadius(gomock.Any(), gomock.Any(), model.FactionEnemy).
		Return([]*model.Character{target}).Times(1)
	spatial.EXPECT().FindLiveWithinRadius(gomock.Any(), gomock.Any(), model.FactionEnemy).
		Return(nil).After(first).AnyTimes()

	c := NewCombatant(attacker, Options{Kind: KindSoldier, Direction: 1}, Deps{
		Animator: looseAnimator(ctrl),
		Spatial:  spatial,
	})
	c.Start()

	stepAll(c, attacker, target)
	require.Equal(t, StateAttacking, c.State())

	target.SetPosition(model.NewVec2(20, 0))
	stepAll(c, attacker, target)

	assert.Equal(t, StateWalking, c.State())
	assert.Nil(t, c.Target())
}

func TestCombatant_SpecialAttackResetsHits(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := combatStats()
	s.SpecialHitAttack = 1
	attacker := newCharacter("Lumberjack", model.FactionEnemy, s, model.NewVec2(3, 0))
	targetStats := combatStats()
	targetStats.Health = 1000
	target := newCharacter("Soldier", model.FactionPlayer, targetStats, model.NewVec2(0, 0))

	c := NewCombatant(attacker, Options{Kind: KindMelee, Direction: -1}, Deps{
		Animator: looseAnimator(ctrl),
		Spatial:  spatialReturning(ctrl, model.FactionEnemy, []*model.Character{target}, nil),
	})
	c.Start()

	for range 5 {
		stepAll(c, attacker, target)
	}
	require.Equal(t, 1, c.Hits())
	require.Equal(t, 989.0, target.Stats().CurrentHealth(), "normal hit")

	// hits == specialHitAttack: next swing is the skill
	stepAll(c, attacker, target)
	stepAll(c, attacker, target)
	assert.Equal(t, 0, c.Hits())
	assert.True(t, c.Busy())

	for range 3 {
		stepAll(c, attacker, target)
	}
	// 20 + floor(20*10*0.01) = 22
	assert.Equal(t, 967.0, target.Stats().CurrentHealth(), "special hit")
}

func TestCombatant_SoldierNeverUsesSkill(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := combatStats()
	s.SpecialHitAttack = 0
	attacker := newCharacter("Soldier", model.FactionPlayer, s, model.NewVec2(0, 0))
	targetStats := combatStats()
	targetStats.Health = 1000
	target := newCharacter("Lumberjack", model.FactionEnemy, targetStats, model.NewVec2(3, 0))

	c := NewCombatant(attacker, Options{Kind: KindSoldier, Direction: 1}, Deps{
		Animator: looseAnimator(ctrl),
		Spatial:  spatialReturning(ctrl, model.FactionPlayer, []*model.Character{target}, nil),
	})
	c.Start()

	for range 5 {
		stepAll(c, attacker, target)
	}

	assert.Equal(t, 1, c.Hits())
	assert.Equal(t, 989.0, target.Stats().CurrentHealth())
}

func TestCombatant_DoctorHealsLowestAlly(t *testing.T) {
	ctrl := gomock.NewController(t)

	s := combatStats()
	s.SpecialHitAttack = 0
	doctor := newCharacter("Doctor", model.FactionEnemy, s, model.NewVec2(3, 0))
	target := newCharacter("Soldier", model.FactionPlayer, combatStats(), model.NewVec2(0, 0))
	healthy := newCharacter("Lumberjack", model.FactionEnemy, combatStats(), model.NewVec2(4, 0))
	wounded := newCharacter("WoodSawyer", model.FactionEnemy, combatStats(), model.NewVec2(5, 0))
	wounded.Stats().ChangeHealth(-50)

	c := NewCombatant(doctor, Options{Kind: KindDoctor, Direction: -1}, Deps{
		Animator: looseAnimator(ctrl),
		Spatial: spatialReturning(ctrl, model.FactionEnemy,
			[]*model.Character{target},
			[]*model.Character{doctor, healthy, wounded}),
	})
	c.Start()

	stepAll(c, doctor, target)
	stepAll(c, doctor, target) // skill dispatched (hits == 0 == specialHitAttack)
	require.True(t, c.Busy())
	assert.Equal(t, 0, c.Hits())
	assert.Equal(t, 50.0, wounded.Stats().CurrentHealth(), "heal is deferred")

	for range 3 {
		stepAll(c, doctor, target)
	}

	assert.False(t, c.Busy())
	assert.Equal(t, 70.0, wounded.Stats().CurrentHealth())
	assert.Equal(t, 100.0, target.Stats().CurrentHealth(), "heal does not damage the target")
	assert.Equal(t, 0, c.Hits())
}

func TestCombatant_HunterProjectile(t *testing.T) {
	ctrl := gomock.NewController(t)

	hunter := newCharacter("Hunter", model.FactionEnemy, combatStats(), model.NewVec2(4, 1))
	target := newCharacter("Soldier", model.FactionPlayer, combatStats(), model.NewVec2(0, 0))

	arrow := &model.Projectile{}
	projectiles := mockai.NewMockProjectiles(ctrl)
	projectiles.EXPECT().
		Acquire("arrow", model.NewVec2(4, 1), model.NewVec2(0, 1)).
		Return(arrow, true).Times(1)
	projectiles.EXPECT().Release(arrow).Times(1)

	c := NewCombatant(hunter, Options{Kind: KindHunter, Direction: -1, Projectile: "arrow"}, Deps{
		Animator:    looseAnimator(ctrl),
		Spatial:     spatialReturning(ctrl, model.FactionEnemy, []*model.Character{target}, nil),
		Projectiles: projectiles,
	})
	c.Start()

	for range 5 {
		stepAll(c, hunter, target)
	}
	// wind-up done, projectile in flight
	assert.Equal(t, 0.7, arrow.Scale)
	assert.Equal(t, ProjectileFlightTime, arrow.Duration)

	stepAll(c, hunter, target)
	assert.True(t, c.Busy())
	assert.Equal(t, 100.0, target.Stats().CurrentHealth())
	assert.Equal(t, dt, arrow.Elapsed)

	stepAll(c, hunter, target)
	assert.False(t, c.Busy())
	assert.Equal(t, 89.0, target.Stats().CurrentHealth())
}

func TestCombatant_HunterWithoutProjectilePrefab(t *testing.T) {
	ctrl := gomock.NewController(t)

	hunter := newCharacter("Hunter", model.FactionEnemy, combatStats(), model.NewVec2(4, 0))
	target := newCharacter("Soldier", model.FactionPlayer, combatStats(), model.NewVec2(0, 0))

	projectiles := mockai.NewMockProjectiles(ctrl)
	projectiles.EXPECT().Acquire("", gomock.Any(), gomock.Any()).Return(nil, false).Times(1)

	c := NewCombatant(hunter, Options{Kind: KindHunter, Direction: -1}, Deps{
		Animator:    looseAnimator(ctrl),
		Spatial:     spatialReturning(ctrl, model.FactionEnemy, []*model.Character{target}, nil),
		Projectiles: projectiles,
	})
	c.Start()

	for range 7 {
		stepAll(c, hunter, target)
	}

	assert.Equal(t, 89.0, target.Stats().CurrentHealth())
}

// spatialLive answers queries from the characters' current faction and health.
func spatialLive(ctrl *gomock.Controller, chars ...*model.Character) *mockai.MockSpatial {
	spatial := mockai.NewMockSpatial(ctrl)
	spatial.EXPECT().FindLiveWithinRadius(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ model.Vec2, _ float64, faction model.Faction) []*model.Character {
			var out []*model.Character
			for _, ch := range chars {
				if ch.Faction() == faction && !ch.IsDeath() {
					out = append(out, ch)
				}
			}
			return out
		}).AnyTimes()
	return spatial
}

func TestCombatant_HunterShotSparesReusedTarget(t *testing.T) {
	ctrl := gomock.NewController(t)

	hunter := newCharacter("Hunter", model.FactionEnemy, combatStats(), model.NewVec2(4, 1))
	target := newCharacter("Soldier", model.FactionPlayer, combatStats(), model.NewVec2(0, 0))

	arrow := &model.Projectile{}
	projectiles := mockai.NewMockProjectiles(ctrl)
	projectiles.EXPECT().Acquire("arrow", gomock.Any(), gomock.Any()).Return(arrow, true).Times(1)
	projectiles.EXPECT().Release(arrow).Times(1)

	c := NewCombatant(hunter, Options{Kind: KindHunter, Direction: -1, Projectile: "arrow"}, Deps{
		Animator:    looseAnimator(ctrl),
		Spatial:     spatialLive(ctrl, hunter, target),
		Projectiles: projectiles,
	})
	c.Start()

	for range 5 {
		stepAll(c, hunter, target)
	}
	require.True(t, c.Busy(), "projectile in flight")

	// the target dies and its object is reused as an enemy before the arrow lands
	target.Stats().ChangeHealth(-1000)
	target.Reset("Lumberjack", model.FactionEnemy, fixedStats(combatStats()), 0)
	target.Init()
	target.SetPosition(model.NewVec2(30, 0))

	var hits int
	target.SetOnDamage(func(*model.AttackData) { hits++ })

	stepAll(c, hunter, target)
	stepAll(c, hunter, target)

	assert.False(t, c.Busy())
	assert.Zero(t, hits)
	assert.Equal(t, 100.0, target.Stats().CurrentHealth())
	assert.Nil(t, c.Target())
	assert.Equal(t, StateWalking, c.State())
}

func TestCombatant_MeleeDropsReusedTarget(t *testing.T) {
	ctrl := gomock.NewController(t)

	attacker := newCharacter("Lumberjack", model.FactionEnemy, combatStats(), model.NewVec2(3, 0))
	target := newCharacter("Soldier", model.FactionPlayer, combatStats(), model.NewVec2(0, 0))

	c := NewCombatant(attacker, Options{Kind: KindMelee, Direction: -1}, Deps{
		Animator: looseAnimator(ctrl),
		Spatial:  spatialLive(ctrl, attacker, target),
	})
	c.Start()

	stepAll(c, attacker, target)
	stepAll(c, attacker, target)
	require.True(t, c.Busy())

	// reused as another player character: same faction, still in reach
	target.Reset("Soldier", model.FactionPlayer, fixedStats(combatStats()), 0)
	target.Init()

	var hits int
	target.SetOnDamage(func(*model.AttackData) { hits++ })

	for range 3 {
		stepAll(c, attacker, target)
	}

	assert.Zero(t, hits, "the wind-up was aimed at the previous character")
	assert.False(t, c.Busy())
}

func TestCombatant_TargetKilledDuringWindUp(t *testing.T) {
	ctrl := gomock.NewController(t)

	attacker := newCharacter("Lumberjack", model.FactionEnemy, combatStats(), model.NewVec2(3, 0))
	target := newCharacter("Soldier", model.FactionPlayer, combatStats(), model.NewVec2(0, 0))

	var hits int
	target.SetOnDamage(func(*model.AttackData) { hits++ })

	c := NewCombatant(attacker, Options{Kind: KindMelee, Direction: -1}, Deps{
		Animator: looseAnimator(ctrl),
		Spatial:  spatialReturning(ctrl, model.FactionEnemy, []*model.Character{target}, nil),
	})
	c.Start()

	stepAll(c, attacker, target)
	stepAll(c, attacker, target)
	require.True(t, c.Busy())

	// another attacker finishes the target
	target.Stats().ChangeHealth(-1000)

	for range 3 {
		stepAll(c, attacker, target)
	}

	assert.Zero(t, hits, "no damage dispatched to a dead target")
	assert.Nil(t, c.Target())
	assert.Equal(t, StateWalking, c.State())
}

func TestCombatant_DeathSequenceRunsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)

	ch := newCharacter("Lumberjack", model.FactionEnemy, combatStats(), model.NewVec2(7, 0))
	ch.Stats().AddModifier(stats.NewAbsolute(stats.Stats{Strength: 5}))
	ch.Stats().AddTimedModifier(stats.NewAbsolute(stats.Stats{Strength: 50}), 30, "Rage", "")

	anim := mockai.NewMockAnimator(ctrl)
	anim.EXPECT().SetPlaybackRate(gomock.Any()).AnyTimes()
	anim.EXPECT().
		PlayAnimation(AnimDie, false, gomock.Not(gomock.Nil())).
		Do(func(_ string, _ bool, onComplete func()) { onComplete() }).
		Times(1)

	loot := mockai.NewMockLootDropper(ctrl)
	loot.EXPECT().SpawnLoot(model.NewVec2(7, 0)).Times(1)

	despawner := mockai.NewMockDespawner(ctrl)
	despawner.EXPECT().Despawn(ch).Times(1)

	c := NewCombatant(ch, Options{Kind: KindMelee, Direction: -1}, Deps{
		Animator:  anim,
		Spatial:   spatialReturning(ctrl, model.FactionEnemy, nil, nil),
		Loot:      loot,
		Despawner: despawner,
	})
	c.Start()

	data := model.NewAttackData(ch, nil)
	data.AddDamage(model.DamagePhysical, 1000)
	ch.Damage(data)
	require.True(t, ch.IsDeath())

	for range 3 {
		c.Tick(dt)
	}

	assert.True(t, c.Dead())
	assert.Empty(t, ch.Stats().TimedModifiers())
	assert.Len(t, ch.Stats().Modifiers(), 1)
	assert.Equal(t, 15.0, ch.Stats().Stats().Strength)
}

func TestCombatant_DeathCancelsPendingAttack(t *testing.T) {
	ctrl := gomock.NewController(t)

	attacker := newCharacter("Lumberjack", model.FactionEnemy, combatStats(), model.NewVec2(3, 0))
	target := newCharacter("Soldier", model.FactionPlayer, combatStats(), model.NewVec2(0, 0))

	c := NewCombatant(attacker, Options{Kind: KindMelee, Direction: -1}, Deps{
		Animator: looseAnimator(ctrl),
		Spatial:  spatialReturning(ctrl, model.FactionEnemy, []*model.Character{target}, nil),
	})
	c.Start()

	stepAll(c, attacker, target)
	stepAll(c, attacker, target)
	require.True(t, c.Busy())

	attacker.Stats().ChangeHealth(-1000)
	for range 5 {
		stepAll(c, attacker, target)
	}

	assert.True(t, c.Dead())
	assert.False(t, c.Busy())
	assert.Equal(t, 100.0, target.Stats().CurrentHealth())
}

func TestCombatant_PassiveOnlyDies(t *testing.T) {
	ctrl := gomock.NewController(t)

	// no Spatial expectations: a passive combatant never queries
	root := newCharacter("TreeRoot", model.FactionPlayer, combatStats(), model.NewVec2(0, 0))
	c := NewCombatant(root, Options{Kind: KindPassive}, Deps{
		Animator: looseAnimator(ctrl),
		Spatial:  mockai.NewMockSpatial(ctrl),
	})
	c.Start()
	require.Equal(t, StateIdle, c.State())

	for range 4 {
		stepAll(c, root)
	}
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, model.NewVec2(0, 0), root.Position())

	root.Stats().ChangeHealth(-1000)
	c.Tick(dt)
	assert.True(t, c.Dead())
}

func TestCombatant_StopDropsPending(t *testing.T) {
	ctrl := gomock.NewController(t)

	attacker := newCharacter("Lumberjack", model.FactionEnemy, combatStats(), model.NewVec2(3, 0))
	target := newCharacter("Soldier", model.FactionPlayer, combatStats(), model.NewVec2(0, 0))

	c := NewCombatant(attacker, Options{Kind: KindMelee, Direction: -1}, Deps{
		Animator: looseAnimator(ctrl),
		Spatial:  spatialReturning(ctrl, model.FactionEnemy, []*model.Character{target}, nil),
	})
	c.Start()
	stepAll(c, attacker, target)
	stepAll(c, attacker, target)
	require.True(t, c.Busy())

	c.Stop()
	for range 5 {
		stepAll(c, attacker, target)
	}

	assert.False(t, c.Busy())
	assert.Nil(t, c.Target())
	assert.Equal(t, 100.0, target.Stats().CurrentHealth())
}

func TestCombatant_AttackRate(t *testing.T) {
	tests := []struct {
		cooldown float64
		want     float64
	}{
		{2, 1},
		{AnimationDuration, 1},
		{0.5, 0.5 / AnimationDuration},
		{0, 1},
	}

	for _, tt := range tests {
		s := combatStats()
		s.AttackCooldown = tt.cooldown
		c := NewCombatant(newCharacter("x", model.FactionEnemy, s, model.Vec2{}), Options{}, Deps{})

		assert.InDelta(t, tt.want, c.attackRate(), 1e-12, "cooldown %v", tt.cooldown)
	}
}
