package spawn

import (
	"slices"
	"sync"

	"github.com/udisondev/forestguard/internal/model"
)

// ProjectilePool выдаёт снаряды охотникам (реализует ai.Projectiles).
// capacity ограничивает число одновременно летящих снарядов; 0 — без лимита.
type ProjectilePool struct {
	mu       sync.Mutex
	pool     *Pool[model.Projectile]
	active   []*model.Projectile
	capacity int
}

// NewProjectilePool создаёт пул снарядов.
func NewProjectilePool(capacity int) *ProjectilePool {
	return &ProjectilePool{
		pool:     NewPool[model.Projectile](nil),
		capacity: capacity,
	}
}

// Acquire выдаёт снаряд prefab, летящий из from в to.
// false если prefab пуст или лимит исчерпан.
func (p *ProjectilePool) Acquire(prefab string, from, to model.Vec2) (*model.Projectile, bool) {
	if prefab == "" {
		return nil, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.capacity > 0 && len(p.active) >= p.capacity {
		return nil, false
	}

	proj, _ := p.pool.Get()
	*proj = model.Projectile{Prefab: prefab, From: from, To: to, Scale: 1}
	p.active = append(p.active, proj)
	return proj, true
}

// Release возвращает снаряд в пул. Повторный Release игнорируется.
func (p *ProjectilePool) Release(proj *model.Projectile) {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := slices.Index(p.active, proj)
	if i < 0 {
		return
	}
	p.active = slices.Delete(p.active, i, i+1)
	p.pool.Put(proj)
}

// Active возвращает копии летящих снарядов (для отрисовки и статистики).
func (p *ProjectilePool) Active() []model.Projectile {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]model.Projectile, len(p.active))
	for i, proj := range p.active {
		out[i] = *proj
	}
	return out
}
