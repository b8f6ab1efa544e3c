package ai

// Controller represents a per-character combat controller driven by TickManager
type Controller interface {
	// Start starts controller
	Start()

	// Stop stops controller and drops pending actions
	Stop()

	// State returns current FSM state
	State() State

	// Tick advances controller by dt seconds
	Tick(dt float64)
}
