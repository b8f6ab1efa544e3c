package effect

import (
	"log/slog"

	"github.com/udisondev/forestguard/internal/model"
)

// OnHit is a weapon effect that applies an elemental effect to every target
// that survives the hit.
type OnHit struct {
	Effect string
	Params map[string]string
}

// NewOnHit creates an OnHit weapon effect.
func NewOnHit(effect string, params map[string]string) *OnHit {
	return &OnHit{Effect: effect, Params: params}
}

func (h *OnHit) OnAttack(_, _ *model.Character, _ *model.AttackData) {}

func (h *OnHit) OnPostAttack(target, user *model.Character, _ *model.AttackData) {
	if target == nil || target.IsDeath() {
		return
	}

	e, err := Create(h.Effect, h.Params)
	if err != nil {
		slog.Warn("on-hit effect skipped", "user", user.Name(), "err", err)
		return
	}
	target.Stats().AddElementalEffect(e)
}
