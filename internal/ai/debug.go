package ai

import "sync/atomic"

// debug гейтит пошаговые debug-логи боевых контроллеров: Tick идёт для
// каждого персонажа каждый кадр, и атрибуты slog собираются только при
// включённом флаге, а не по уровню handler'а.
var debug atomic.Bool

// EnableDebugLogging включает debug-логи контроллеров. cmd вызывает его
// после разбора log_level.
func EnableDebugLogging(enabled bool) {
	debug.Store(enabled)
}

// IsDebugEnabled сообщает, включены ли debug-логи контроллеров.
func IsDebugEnabled() bool {
	return debug.Load()
}
