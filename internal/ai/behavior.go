package ai

import (
	"log/slog"
)

// Animation clip names and timing shared by all combatants.
const (
	AnimWalk          = "walk"
	AnimIdle          = "idle"
	AnimDie           = "die"
	AnimSoldierAttack = "attack"
	AnimEnemyAttack   = "attack-1-5"
	AnimEnemySkill    = "attack-6"

	// AnimationDuration is the natural length of every attack clip (seconds).
	AnimationDuration = 1.067

	// ProjectileFlightTime is how long a hunter projectile flies before it lands.
	ProjectileFlightTime = AnimationDuration / 2

	projectileScaleNormal  = 0.7
	projectileScaleSpecial = 1.0
)

// Behavior is the variant part of a combatant: what happens when the FSM
// dispatches a normal attack or a skill. Targeting, gating and state
// transitions are shared and live in Combatant.
type Behavior interface {
	Attack(c *Combatant)
	Skill(c *Combatant)
}

// BehaviorFor returns the behavior of a kind.
func BehaviorFor(k Kind) Behavior {
	switch k {
	case KindMelee:
		return meleeBehavior{}
	case KindDoctor:
		return doctorBehavior{}
	case KindHunter:
		return hunterBehavior{}
	case KindPassive:
		return passiveBehavior{}
	default:
		return soldierBehavior{}
	}
}

// soldierBehavior swings at the target; it has no skill.
type soldierBehavior struct{}

func (soldierBehavior) Attack(c *Combatant) {
	c.attackFrame(c.kind.attackAnimation(), false)
}

func (b soldierBehavior) Skill(c *Combatant) {
	b.Attack(c)
}

// meleeBehavior: skill is a special hit, after which the counter restarts.
type meleeBehavior struct{}

func (meleeBehavior) Attack(c *Combatant) {
	c.attackFrame(AnimEnemyAttack, false)
}

func (meleeBehavior) Skill(c *Combatant) {
	c.attackFrame(AnimEnemySkill, true)
	c.hits = 0
}

// doctorBehavior: skill heals the lowest-health live ally in range
// (the doctor itself included) by strength * multiplierSpecialAttack.
type doctorBehavior struct{}

func (doctorBehavior) Attack(c *Combatant) {
	c.attackFrame(AnimEnemyAttack, false)
}

func (doctorBehavior) Skill(c *Combatant) {
	if c.target == nil || c.target.IsDeath() {
		return
	}

	ally := c.lowestHealthAlly()
	s := c.character.Stats().Stats()
	amount := s.Strength * s.MultiplierSpecialAttack

	if IsDebugEnabled() {
		slog.Debug("heal target selected",
			"character", c.character.Name(),
			"ally", ally.Name(),
			"amount", amount)
	}

	c.attacking = true
	rate := c.attackRate()
	c.playAnimation(AnimEnemySkill, false)
	c.animator.SetPlaybackRate(rate)

	allyID := ally.ID()
	c.schedule(AnimationDuration/rate, nil, func() {
		if ally.ID() == allyID && !ally.IsDeath() {
			ally.Stats().ChangeHealth(amount)
		}
		c.attacking = false
		c.idle()
	})

	c.hits = 0
}

// hunterBehavior fires projectiles: damage lands ProjectileFlightTime after the wind-up.
type hunterBehavior struct{}

func (hunterBehavior) Attack(c *Combatant) {
	c.shootFrame(AnimEnemyAttack, false)
}

func (hunterBehavior) Skill(c *Combatant) {
	c.shootFrame(AnimEnemySkill, true)
	c.hits = 0
}

// passiveBehavior never acts.
type passiveBehavior struct{}

func (passiveBehavior) Attack(*Combatant) {}
func (passiveBehavior) Skill(*Combatant)  {}
