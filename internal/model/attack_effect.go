package model

// AttackEffect specializes a character's attacks (weapon effects).
//
// OnAttack runs after the base damage is added and before the target takes
// it, so it may add damage of any type. OnPostAttack runs once the damage is
// applied and sees the final AttackData.
type AttackEffect interface {
	OnAttack(target, user *Character, data *AttackData)
	OnPostAttack(target, user *Character, data *AttackData)
}
