package ai

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTickInterval is the fixed simulation step used when none is configured.
const DefaultTickInterval = 50 * time.Millisecond

type registration struct {
	id         uuid.UUID
	controller Controller
}

// TickManager manages ticks for all registered combat controllers.
// Controllers are ticked in registration order.
type TickManager struct {
	mu          sync.RWMutex
	controllers []registration
	index       map[uuid.UUID]int

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewTickManager creates new tick manager
func NewTickManager() *TickManager {
	return &TickManager{
		index:  make(map[uuid.UUID]int),
		stopCh: make(chan struct{}),
	}
}

// Register registers and starts a controller for character id.
// Registering an id twice replaces the old controller (which is stopped).
func (m *TickManager) Register(id uuid.UUID, controller Controller) {
	m.mu.Lock()
	if i, ok := m.index[id]; ok {
		old := m.controllers[i].controller
		m.controllers[i].controller = controller
		m.mu.Unlock()
		old.Stop()
	} else {
		m.index[id] = len(m.controllers)
		m.controllers = append(m.controllers, registration{id: id, controller: controller})
		m.mu.Unlock()
	}

	controller.Start()

	if IsDebugEnabled() {
		slog.Debug("controller registered",
			"id", id,
			"state", controller.State())
	}
}

// Unregister stops and removes controller
func (m *TickManager) Unregister(id uuid.UUID) {
	m.mu.Lock()
	i, ok := m.index[id]
	if !ok {
		m.mu.Unlock()
		return
	}

	controller := m.controllers[i].controller
	m.controllers = slices.Delete(m.controllers, i, i+1)
	delete(m.index, id)
	for j := i; j < len(m.controllers); j++ {
		m.index[m.controllers[j].id] = j
	}
	m.mu.Unlock()

	controller.Stop()

	if IsDebugEnabled() {
		slog.Debug("controller unregistered", "id", id)
	}
}

// Start runs Step every interval (blocks until context is canceled or Stop is called)
func (m *TickManager) Start(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("tick manager started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("tick manager stopping")
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("tick manager stopped")
			return nil

		case <-ticker.C:
			m.Step(interval.Seconds())
		}
	}
}

// Stop stops tick loop
func (m *TickManager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// Step ticks all registered controllers once.
// Iterates over a snapshot: controllers may (un)register others while ticking.
func (m *TickManager) Step(dt float64) {
	m.mu.RLock()
	snapshot := make([]Controller, len(m.controllers))
	for i, r := range m.controllers {
		snapshot[i] = r.controller
	}
	m.mu.RUnlock()

	for _, controller := range snapshot {
		controller.Tick(dt)
	}

	if len(snapshot) > 0 && IsDebugEnabled() {
		slog.Debug("tick completed", "controllers", len(snapshot))
	}
}

// Count returns number of registered controllers
func (m *TickManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.controllers)
}

// GetController returns controller registered for id
func (m *TickManager) GetController(id uuid.UUID) (Controller, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.index[id]
	if !ok {
		return nil, fmt.Errorf("controller not found for id %s", id)
	}
	return m.controllers[i].controller, nil
}
