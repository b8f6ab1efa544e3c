package model

import (
	"github.com/google/uuid"

	"github.com/udisondev/forestguard/internal/stats"
)

// ReachSlack — фиксированный запас дистанции сверх range при проверке досягаемости цели.
const ReachSlack = 1.5

// StatSource выдаёт базовые статы на заданном уровне (см. data.Archetype).
type StatSource interface {
	StatsAtLevel(level int) stats.Stats
}

// Character — живое существо на сцене: солдат, враг или корень дерева.
// Держит StatSystem, позицию, таймер отката атаки и weapon effects.
//
// Не потокобезопасен: мутируется только из тика симуляции.
type Character struct {
	id      uuid.UUID
	name    string
	faction Faction

	source StatSource
	level  int

	stats    *stats.System
	position Vec2

	attackCooldown float64
	attackEffects  []AttackEffect

	onDamage func(*AttackData)
}

// NewCharacter создаёт персонажа. Перед использованием нужно вызвать Init.
func NewCharacter(name string, faction Faction, source StatSource, level int) *Character {
	c := &Character{
		id:      uuid.New(),
		name:    name,
		faction: faction,
		source:  source,
		level:   level,
	}
	c.stats = stats.NewSystem(c)
	return c
}

// Reset готовит персонажа из пула к новой жизни: новый ID, чистая StatSystem,
// без weapon effects и hook'ов. Перед использованием нужно вызвать Init.
func (c *Character) Reset(name string, faction Faction, source StatSource, level int) {
	c.id = uuid.New()
	c.name = name
	c.faction = faction
	c.source = source
	c.level = level
	c.stats = stats.NewSystem(c)
	c.position = Vec2{}
	c.attackCooldown = 0
	c.attackEffects = nil
	c.onDamage = nil
}

// Init выставляет baseline статы из источника на текущем уровне и полное HP.
// Повторный вызов легален; модификаторы не сбрасываются.
func (c *Character) Init() {
	var base stats.Stats
	if c.source != nil {
		base = c.source.StatsAtLevel(c.level)
	}
	c.stats.Init(base)
}

// ID возвращает уникальный идентификатор.
func (c *Character) ID() uuid.UUID {
	return c.id
}

// Name возвращает имя персонажа.
func (c *Character) Name() string {
	return c.name
}

// Faction возвращает сторону.
func (c *Character) Faction() Faction {
	return c.faction
}

// Level возвращает уровень, на котором посчитаны baseline статы.
func (c *Character) Level() int {
	return c.level
}

// SetLevel меняет уровень. Статы пересчитываются только при следующем Init.
func (c *Character) SetLevel(level int) {
	c.level = level
}

// Stats возвращает StatSystem персонажа.
func (c *Character) Stats() *stats.System {
	return c.stats
}

// Position возвращает текущую позицию.
func (c *Character) Position() Vec2 {
	return c.position
}

// SetPosition перемещает персонажа.
func (c *Character) SetPosition(p Vec2) {
	c.position = p
}

// SetOnDamage устанавливает hook, вызываемый после каждого полученного удара.
func (c *Character) SetOnDamage(fn func(*AttackData)) {
	c.onDamage = fn
}

// AddAttackEffect добавляет weapon effect, применяемый к каждой атаке.
func (c *Character) AddAttackEffect(e AttackEffect) {
	c.attackEffects = append(c.attackEffects, e)
}

// AttackEffects возвращает weapon effects в порядке добавления.
func (c *Character) AttackEffects() []AttackEffect {
	return c.attackEffects
}

// IsDeath returns true if current health reached 0.
func (c *Character) IsDeath() bool {
	return c.stats.CurrentHealth() <= 0
}

// AttackCooldown возвращает оставшееся время отката атаки (секунды).
func (c *Character) AttackCooldown() float64 {
	return c.attackCooldown
}

// CanAttack returns true once the attack cooldown elapsed.
func (c *Character) CanAttack() bool {
	return c.attackCooldown <= 0
}

// Tick продвигает таймеры StatSystem и откат атаки на dt секунд.
func (c *Character) Tick(dt float64) {
	c.stats.Tick(dt)

	if c.attackCooldown > 0 {
		c.attackCooldown -= dt
	}
}

// CanAttackReach проверяет дистанцию: distance <= range + ReachSlack.
func (c *Character) CanAttackReach(target *Character) bool {
	if target == nil {
		return false
	}
	return c.position.Distance(target.position) <= c.stats.Stats().Range+ReachSlack
}

// CanAttackTarget checks that target is alive, within reach and that the
// attack cooldown elapsed.
func (c *Character) CanAttackTarget(target *Character) bool {
	if target == nil || target.stats.CurrentHealth() == 0 {
		return false
	}

	if !c.CanAttackReach(target) {
		return false
	}

	return c.attackCooldown <= 0
}

// AttackTriggered запускает откат атаки. Вызывается в начале анимации удара,
// урон наносится позже через Attack.
func (c *Character) AttackTriggered() {
	c.attackCooldown = c.stats.Stats().AttackCooldown
}

// ResetCooldown обнуляет откат (переиспользование из пула).
func (c *Character) ResetCooldown() {
	c.attackCooldown = 0
}

// Attack наносит target физический урон: strength, либо
// strength * multiplierSpecialAttack для special атаки.
// Не проверяет CanAttackTarget. Nil target — no-op.
func (c *Character) Attack(target *Character, isSpecial bool) *AttackData {
	if target == nil {
		return nil
	}

	s := c.stats.Stats()
	damage := s.Strength
	if isSpecial {
		damage = s.Strength * s.MultiplierSpecialAttack
	}

	data := NewAttackData(target, c)
	data.AddDamage(DamagePhysical, damage)

	for _, e := range c.attackEffects {
		e.OnAttack(target, c, data)
	}

	target.Damage(data)

	for _, e := range c.attackEffects {
		e.OnPostAttack(target, c, data)
	}

	return data
}

// Damage применяет урон из data и вызывает OnDamage hook.
func (c *Character) Damage(data *AttackData) {
	c.stats.Damage(data)

	if c.onDamage != nil {
		c.onDamage(data)
	}
}

// Death снимает elemental effects и timed модификаторы (см. stats.System.Death).
func (c *Character) Death() {
	c.stats.Death()
}
