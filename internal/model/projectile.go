package model

// Projectile — снаряд охотника: летит от From к To, урон наносит стрелок по прилёту.
// Живёт в пуле, поэтому все поля перезаписываются при Acquire.
type Projectile struct {
	Prefab   string
	From     Vec2
	To       Vec2
	Scale    float64
	Duration float64
	Elapsed  float64
}

// Position returns the interpolated position along the flight.
func (p *Projectile) Position() Vec2 {
	if p.Duration <= 0 || p.Elapsed >= p.Duration {
		return p.To
	}
	return p.From.Add(p.To.Sub(p.From).Scale(p.Elapsed / p.Duration))
}

// Landed reports whether the flight time elapsed.
func (p *Projectile) Landed() bool {
	return p.Elapsed >= p.Duration
}
