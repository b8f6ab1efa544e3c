//go:generate mockgen -destination=mock/mock_collaborators.go -package=mockai -source=collaborators.go

package ai

import "github.com/udisondev/forestguard/internal/model"

// Animator plays skeletal animations of one combatant.
// onComplete (may be nil) is invoked once when a non-looping clip finishes.
type Animator interface {
	PlayAnimation(name string, loop bool, onComplete func())
	SetPlaybackRate(scale float64)
}

// Spatial answers radius queries over live characters.
type Spatial interface {
	FindLiveWithinRadius(center model.Vec2, radius float64, faction model.Faction) []*model.Character
}

// Projectiles hands out pooled projectiles.
// Acquire returns false when the prefab is not configured.
type Projectiles interface {
	Acquire(prefab string, from, to model.Vec2) (*model.Projectile, bool)
	Release(p *model.Projectile)
}

// Despawner releases a dead character back to its pool.
type Despawner interface {
	Despawn(c *model.Character)
}

// LootDropper spawns the configured loot of one combatant.
type LootDropper interface {
	SpawnLoot(at model.Vec2)
}

// nopAnimator is used when a combatant has no animation driver attached.
// One-shot clips complete immediately.
type nopAnimator struct{}

func (nopAnimator) PlayAnimation(_ string, loop bool, onComplete func()) {
	if !loop && onComplete != nil {
		onComplete()
	}
}

func (nopAnimator) SetPlaybackRate(float64) {}
