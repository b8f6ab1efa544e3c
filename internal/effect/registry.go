package effect

import (
	"fmt"
	"strconv"

	"github.com/udisondev/forestguard/internal/stats"
)

// Factory builds an elemental effect from string params (as stored in archetype data).
type Factory func(params map[string]string) stats.Effect

// registry maps effect name → factory function.
// Populated by init() below.
var registry = map[string]Factory{}

// Register registers an effect factory by name.
func Register(name string, factory Factory) {
	registry[name] = factory
}

// Create creates an effect by name using the registered factory.
// Returns error if name is not registered.
func Create(name string, params map[string]string) (stats.Effect, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown effect type: %s", name)
	}
	return factory(params), nil
}

// Known reports whether name has a registered factory.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

func init() {
	Register(BurnID, NewBurn)
	Register(PoisonID, NewPoison)
	Register(ChillID, NewChill)
}

// floatParam parses params[key], falling back to def when missing or malformed.
func floatParam(params map[string]string, key string, def float64) float64 {
	raw, ok := params[key]
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}
