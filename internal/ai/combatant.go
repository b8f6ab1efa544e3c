package ai

import (
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/udisondev/forestguard/internal/model"
)

// Deps are the collaborators of a Combatant. Any of them may be nil:
// a missing Animator plays nothing, missing Projectiles skips the visual
// projectile (damage still lands), missing Loot/Despawner skip that step.
type Deps struct {
	Animator    Animator
	Spatial     Spatial
	Projectiles Projectiles
	Despawner   Despawner
	Loot        LootDropper
}

// Options describe the static setup of a Combatant.
type Options struct {
	Kind Kind
	// Direction is the lane direction along X: -1 (left) or +1 (right).
	Direction float64
	// Projectile is the prefab fired by hunters.
	Projectile string
}

// pendingAction is the single deferred continuation of a combatant
// (damage at the end of an attack clip, a projectile landing).
type pendingAction struct {
	remaining float64
	progress  func(dt float64)
	fire      func()
}

// Combatant is the combat FSM of one character.
// State machine: WALKING → ATTACKING → IDLE → (ATTACKING | WALKING).
//
// Must be ticked after the character itself (see world.World.Tick) so that
// timed modifiers, effects and the attack cooldown are already advanced.
type Combatant struct {
	character *model.Character
	kind      Kind
	behavior  Behavior
	direction float64
	prefab    string

	animator    Animator
	spatial     Spatial
	projectiles Projectiles
	despawner   Despawner
	loot        LootDropper

	isRunning atomic.Bool

	state     State
	target    *model.Character
	targetID  uuid.UUID // target identity when picked; changes on pool reuse
	attacking bool
	hits      int
	dead      bool
	pending   *pendingAction
	lastClip  string
}

// NewCombatant creates a combat controller for character.
// The character must already be initialized (Character.Init).
func NewCombatant(character *model.Character, opts Options, deps Deps) *Combatant {
	c := &Combatant{}
	c.Reset(character, opts, deps)
	return c
}

// Start starts the controller: passive combatants idle, everyone else walks.
func (c *Combatant) Start() {
	c.isRunning.Store(true)

	if c.kind.Passive() {
		c.setState(StateIdle)
	} else {
		c.setState(StateWalking)
	}

	if IsDebugEnabled() {
		slog.Debug("combatant started",
			"character", c.character.Name(),
			"kind", c.kind,
			"faction", c.character.Faction())
	}
}

// Stop stops the controller, drops the target and any pending action.
func (c *Combatant) Stop() {
	c.isRunning.Store(false)
	c.pending = nil
	c.attacking = false
	c.target = nil

	if IsDebugEnabled() {
		slog.Debug("combatant stopped", "character", c.character.Name())
	}
}

// Reset prepares a pooled combatant for reuse with a fresh character.
// The controller is left stopped in StateNone.
func (c *Combatant) Reset(character *model.Character, opts Options, deps Deps) {
	c.isRunning.Store(false)

	c.character = character
	c.kind = opts.Kind
	c.behavior = BehaviorFor(opts.Kind)
	c.direction = opts.Direction
	if c.direction == 0 {
		c.direction = 1
	}
	c.prefab = opts.Projectile

	c.animator = deps.Animator
	if c.animator == nil {
		c.animator = nopAnimator{}
	}
	c.spatial = deps.Spatial
	c.projectiles = deps.Projectiles
	c.despawner = deps.Despawner
	c.loot = deps.Loot

	c.state = StateNone
	c.target = nil
	c.targetID = uuid.Nil
	c.attacking = false
	c.hits = 0
	c.dead = false
	c.pending = nil
	c.lastClip = ""
}

// Character returns the controlled character.
func (c *Combatant) Character() *model.Character {
	return c.character
}

// Kind returns the combatant kind.
func (c *Combatant) Kind() Kind {
	return c.kind
}

// State returns current FSM state.
func (c *Combatant) State() State {
	return c.state
}

// Target returns current target or nil.
func (c *Combatant) Target() *model.Character {
	return c.target
}

// Hits returns the consecutive-hit counter.
func (c *Combatant) Hits() int {
	return c.hits
}

// Busy reports whether a deferred attack or skill is still pending.
func (c *Combatant) Busy() bool {
	return c.attacking
}

// Dead reports whether the death sequence already started.
func (c *Combatant) Dead() bool {
	return c.dead
}

// Tick advances the FSM by dt seconds.
func (c *Combatant) Tick(dt float64) {
	if !c.isRunning.Load() || c.dead {
		return
	}

	if c.character.IsDeath() {
		c.deathFrame()
		return
	}

	if c.kind.Passive() {
		return
	}

	c.advancePending(dt)
	c.dropRecycledTarget()

	if c.target == nil {
		c.target = c.closestTarget()
		if c.target != nil {
			c.targetID = c.target.ID()
		}
	}

	switch c.state {
	case StateWalking:
		if c.target != nil {
			c.setState(StateAttacking)
		} else {
			c.walk(dt)
		}

	case StateAttacking:
		if c.target == nil || c.target.IsDeath() || !c.character.CanAttackReach(c.target) {
			c.target = nil
			c.setState(StateWalking)
			return
		}

		if !c.character.CanAttackTarget(c.target) {
			return
		}

		c.character.AttackTriggered()
		if c.kind.UsesSkill() && c.hits == c.character.Stats().Stats().SpecialHitAttack {
			c.behavior.Skill(c)
		} else {
			c.behavior.Attack(c)
		}

		if c.target == nil || c.target.IsDeath() {
			c.setState(StateWalking)
		} else {
			c.setState(StateIdle)
		}

	case StateIdle:
		if c.attacking {
			return
		}

		if c.target == nil || c.target.IsDeath() || !c.character.CanAttackReach(c.target) {
			c.target = nil
			c.setState(StateWalking)
		} else if c.character.CanAttackTarget(c.target) {
			c.setState(StateAttacking)
		}
	}
}

// dropRecycledTarget forgets a target that was despawned and reused as
// another character since it was picked.
func (c *Combatant) dropRecycledTarget() {
	if c.target != nil && c.target.ID() != c.targetID {
		c.target = nil
	}
}

// closestTarget returns the nearest live opponent within effective range.
// Ties keep the first candidate (strict <).
func (c *Combatant) closestTarget() *model.Character {
	if c.spatial == nil {
		return nil
	}

	pos := c.character.Position()
	candidates := c.spatial.FindLiveWithinRadius(pos, c.character.Stats().Stats().Range, c.character.Faction().Opponent())

	var best *model.Character
	bestDist := math.MaxFloat64
	for _, candidate := range candidates {
		if candidate == nil || candidate == c.character || candidate.IsDeath() {
			continue
		}
		if d := pos.Distance(candidate.Position()); d < bestDist {
			bestDist = d
			best = candidate
		}
	}

	if best != nil && IsDebugEnabled() {
		slog.Debug("target found",
			"character", c.character.Name(),
			"target", best.Name(),
			"distance", bestDist)
	}
	return best
}

// lowestHealthAlly returns the live ally in range with the lowest current
// health, starting from the combatant itself.
func (c *Combatant) lowestHealthAlly() *model.Character {
	best := c.character
	if c.spatial == nil {
		return best
	}

	allies := c.spatial.FindLiveWithinRadius(c.character.Position(), c.character.Stats().Stats().Range, c.character.Faction())
	for _, ally := range allies {
		if ally == nil || ally.IsDeath() {
			continue
		}
		if ally.Stats().CurrentHealth() < best.Stats().CurrentHealth() {
			best = ally
		}
	}
	return best
}

// walk advances along the lane at moveSpeed.
func (c *Combatant) walk(dt float64) {
	speed := c.character.Stats().Stats().MoveSpeed

	c.playAnimation(AnimWalk, true)
	c.animator.SetPlaybackRate(speed / AnimationDuration)

	pos := c.character.Position()
	next := pos.MoveTowards(pos.Add(model.NewVec2(c.direction, 0)), speed*dt)
	c.character.SetPosition(next)
}

// idle plays the idle loop.
func (c *Combatant) idle() {
	c.playAnimation(AnimIdle, true)
}

// attackRate returns the playback rate that fits an attack clip into the cooldown.
func (c *Combatant) attackRate() float64 {
	cd := c.character.Stats().Stats().AttackCooldown
	if cd > 0 && cd < AnimationDuration {
		return cd / AnimationDuration
	}
	return 1
}

// attackFrame starts an attack clip; damage is dealt when the clip ends.
// A dead target makes the attack miss.
func (c *Combatant) attackFrame(clip string, special bool) {
	target := c.target
	if target == nil || target.IsDeath() {
		return
	}

	c.attacking = true
	c.hits++

	rate := c.attackRate()
	c.playAnimation(clip, false)
	c.animator.SetPlaybackRate(rate)

	id := target.ID()
	c.schedule(AnimationDuration/rate, nil, func() {
		c.strike(target, id, special)
	})
}

// shootFrame is attackFrame for hunters: a projectile is spawned when the
// clip ends and the damage lands when it arrives.
func (c *Combatant) shootFrame(clip string, special bool) {
	target := c.target
	if target == nil || target.IsDeath() {
		return
	}

	c.attacking = true
	c.hits++

	rate := c.attackRate()
	c.playAnimation(clip, false)
	c.animator.SetPlaybackRate(rate)

	id := target.ID()
	c.schedule(AnimationDuration/rate, nil, func() {
		if target.ID() != id {
			c.strike(target, id, special)
			return
		}

		from := c.character.Position()
		to := model.NewVec2(target.Position().X, from.Y)

		var projectile *model.Projectile
		if c.projectiles != nil {
			if p, ok := c.projectiles.Acquire(c.prefab, from, to); ok {
				projectile = p
				projectile.Duration = ProjectileFlightTime
				projectile.Elapsed = 0
				projectile.Scale = projectileScaleNormal
				if special {
					projectile.Scale = projectileScaleSpecial
				}
			}
		}

		var progress func(dt float64)
		if projectile != nil {
			progress = func(dt float64) { projectile.Elapsed += dt }
		}

		c.schedule(ProjectileFlightTime, progress, func() {
			if projectile != nil {
				c.projectiles.Release(projectile)
			}
			c.strike(target, id, special)
		})
	})
}

// strike deals the deferred damage and returns to idle.
// id is the target's identity at dispatch: a target that was despawned and
// reused in the meantime is not hit.
func (c *Combatant) strike(target *model.Character, id uuid.UUID, special bool) {
	recycled := target.ID() != id

	switch {
	case recycled:
		if IsDebugEnabled() {
			slog.Debug("attack dropped, target despawned",
				"character", c.character.Name(),
				"target", id)
		}
	case !target.IsDeath():
		data := c.character.Attack(target, special)

		if IsDebugEnabled() {
			slog.Debug("attack landed",
				"character", c.character.Name(),
				"target", target.Name(),
				"special", special,
				"damage", data.TotalDamage(),
				"targetHealth", target.Stats().CurrentHealth())
		}
	}

	if c.target == target && (recycled || target.IsDeath()) {
		c.target = nil
	}

	c.attacking = false
	c.idle()
}

// schedule sets the pending action. There is at most one: callers only
// schedule while attacking, and the FSM never dispatches while attacking.
func (c *Combatant) schedule(delay float64, progress func(dt float64), fire func()) {
	c.pending = &pendingAction{remaining: delay, progress: progress, fire: fire}
}

func (c *Combatant) advancePending(dt float64) {
	p := c.pending
	if p == nil {
		return
	}

	if p.progress != nil {
		p.progress(dt)
	}
	p.remaining -= dt
	if p.remaining > 0 {
		return
	}

	c.pending = nil
	p.fire()
}

// deathFrame runs the death sequence once: the pending action is cancelled,
// the die clip plays and, when it ends, loot spawns and the character is
// released. Stat effects are torn down immediately.
func (c *Combatant) deathFrame() {
	if c.dead {
		return
	}
	c.dead = true
	c.pending = nil
	c.attacking = false
	c.target = nil

	character := c.character
	c.lastClip = AnimDie
	c.animator.PlayAnimation(AnimDie, false, func() {
		if c.loot != nil {
			c.loot.SpawnLoot(character.Position())
		}
		if c.despawner != nil {
			c.despawner.Despawn(character)
		}
		slog.Debug("combatant released", "character", character.Name())
	})
	c.animator.SetPlaybackRate(1)

	character.Death()

	slog.Info("character died",
		"character", character.Name(),
		"id", character.ID(),
		"faction", character.Faction())
}

// playAnimation starts a clip at normal speed. A looping clip that is
// already playing is not restarted.
func (c *Combatant) playAnimation(clip string, loop bool) {
	if loop && c.lastClip == clip {
		return
	}
	c.lastClip = clip
	c.animator.PlayAnimation(clip, loop, nil)
	c.animator.SetPlaybackRate(1)
}

func (c *Combatant) setState(s State) {
	if c.state == s {
		return
	}

	if IsDebugEnabled() {
		slog.Debug("combatant state changed",
			"character", c.character.Name(),
			"from", c.state,
			"to", s)
	}
	c.state = s
}
