package data

import (
	"github.com/udisondev/forestguard/internal/ai"
	"github.com/udisondev/forestguard/internal/effect"
	"github.com/udisondev/forestguard/internal/loot"
	"github.com/udisondev/forestguard/internal/model"
	"github.com/udisondev/forestguard/internal/stats"
)

// OnHitDef — weapon effect из данных: имя зарегистрированного эффекта и его параметры.
type OnHitDef struct {
	Effect string            `yaml:"effect"`
	Params map[string]string `yaml:"params,omitempty"`
}

// Archetype — шаблон персонажа (солдат, враг, корень дерева).
// Base — статы на уровне 0, LevelUp — прирост за уровень.
type Archetype struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Kind        ai.Kind       `yaml:"kind"`
	Faction     model.Faction `yaml:"faction"`
	Level       int           `yaml:"level"`
	UnlockSkill bool          `yaml:"unlock_skill,omitempty"`

	Base    stats.Stats `yaml:"base"`
	LevelUp stats.Stats `yaml:"level_up"`

	// Projectile — prefab снаряда (только hunter).
	Projectile string     `yaml:"projectile,omitempty"`
	OnHit      []OnHitDef `yaml:"on_hit,omitempty"`

	// Drops — таблица лута (только враги).
	Drops []loot.SpawnEvent `yaml:"drops,omitempty"`

	// UnlockPrice / UpgradePrices — экономика солдат.
	UnlockPrice   int   `yaml:"unlock_price,omitempty"`
	UpgradePrices []int `yaml:"upgrade_prices,omitempty"`
}

// StatsAtLevel возвращает статы на уровне level.
// health, strength, moveSpeed и range растут на LevelUp*level,
// attackCooldown уменьшается на LevelUp.AttackCooldown*level.
// specialHitAttack и multiplierSpecialAttack от уровня не зависят.
func (a *Archetype) StatsAtLevel(level int) stats.Stats {
	s := a.Base
	lvl := float64(level)

	s.Health += a.LevelUp.Health * lvl
	s.Strength += a.LevelUp.Strength * lvl
	s.MoveSpeed += a.LevelUp.MoveSpeed * lvl
	s.AttackCooldown -= a.LevelUp.AttackCooldown * lvl
	s.Range += a.LevelUp.Range * lvl

	return s
}

// Stats возвращает статы на уровне шаблона.
func (a *Archetype) Stats() stats.Stats {
	return a.StatsAtLevel(a.Level)
}

// UpgradePrice возвращает цену перехода с уровня level на level+1.
// false если апгрейд недоступен.
func (a *Archetype) UpgradePrice(level int) (int, bool) {
	if level < 0 || level >= len(a.UpgradePrices) {
		return 0, false
	}
	return a.UpgradePrices[level], true
}

// AttackEffects строит weapon effects из OnHit.
func (a *Archetype) AttackEffects() []model.AttackEffect {
	if len(a.OnHit) == 0 {
		return nil
	}
	effects := make([]model.AttackEffect, 0, len(a.OnHit))
	for _, def := range a.OnHit {
		effects = append(effects, effect.NewOnHit(def.Effect, def.Params))
	}
	return effects
}
