package sim

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/udisondev/forestguard/internal/ai"
	"github.com/udisondev/forestguard/internal/model"
)

// ClipLength is the natural length of every clip driven by the timeline.
const ClipLength = ai.AnimationDuration

// Timeline drives headless animators: clips have no frames, only a length,
// so one-shot clips complete after ClipLength/rate seconds of simulation time.
type Timeline struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]*clip
	order []*clip
}

// NewTimeline creates an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{byID: make(map[uuid.UUID]*clip)}
}

// Animator returns the animator of c, creating it on first use.
func (t *Timeline) Animator(c *model.Character) ai.Animator {
	t.mu.Lock()
	defer t.mu.Unlock()

	if a, ok := t.byID[c.ID()]; ok {
		return a
	}
	a := &clip{rate: 1}
	t.byID[c.ID()] = a
	t.order = append(t.order, a)
	return a
}

// Release forgets the animator of c. A pending completion is dropped.
func (t *Timeline) Release(c *model.Character) {
	t.mu.Lock()
	defer t.mu.Unlock()

	a, ok := t.byID[c.ID()]
	if !ok {
		return
	}
	delete(t.byID, c.ID())
	if i := slices.Index(t.order, a); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
	}
	a.release()
}

// Clip returns the clip currently playing for c.
func (t *Timeline) Clip(c *model.Character) (name string, ok bool) {
	t.mu.Lock()
	a, ok := t.byID[c.ID()]
	t.mu.Unlock()
	if !ok {
		return "", false
	}
	return a.current(), true
}

// Len returns the number of tracked animators.
func (t *Timeline) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.order)
}

// Advance moves every clip forward by dt. Completion callbacks run outside
// the lock: they may release animators (despawn).
func (t *Timeline) Advance(dt float64) {
	t.mu.Lock()
	snapshot := slices.Clone(t.order)
	t.mu.Unlock()

	for _, a := range snapshot {
		if done := a.advance(dt); done != nil {
			done()
		}
	}
}

type clip struct {
	mu         sync.Mutex
	name       string
	loop       bool
	rate       float64
	elapsed    float64
	onComplete func()
}

func (a *clip) PlayAnimation(name string, loop bool, onComplete func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.name = name
	a.loop = loop
	a.rate = 1
	a.elapsed = 0
	a.onComplete = onComplete
}

func (a *clip) SetPlaybackRate(scale float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rate = scale
}

func (a *clip) current() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.name
}

// advance returns the completion callback when a one-shot clip just ended.
func (a *clip) advance(dt float64) func() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.name == "" {
		return nil
	}
	a.elapsed += dt * a.rate
	if a.loop || a.onComplete == nil || a.elapsed < ClipLength {
		return nil
	}

	done := a.onComplete
	a.onComplete = nil
	return done
}

func (a *clip) release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onComplete = nil
}
