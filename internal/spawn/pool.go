package spawn

import "sync"

// Pool — free-list переиспользуемых объектов (персонажи, контроллеры, снаряды).
// В отличие от sync.Pool объекты не выбрасываются сборщиком мусора,
// поэтому счётчики Created/Free детерминированы.
type Pool[T any] struct {
	mu      sync.Mutex
	free    []*T
	newFn   func() *T
	created int
}

// NewPool создаёт пул; newFn вызывается, когда свободных объектов нет.
// nil newFn — new(T).
func NewPool[T any](newFn func() *T) *Pool[T] {
	if newFn == nil {
		newFn = func() *T { return new(T) }
	}
	return &Pool[T]{newFn: newFn}
}

// Get возвращает объект из пула (reused = true) или новый.
// Объект нужно сбросить перед использованием.
func (p *Pool[T]) Get() (item *T, reused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n := len(p.free); n > 0 {
		item = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return item, true
	}

	p.created++
	return p.newFn(), false
}

// Put возвращает объект в пул.
func (p *Pool[T]) Put(item *T) {
	if item == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = append(p.free, item)
}

// Free возвращает число свободных объектов.
func (p *Pool[T]) Free() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// Created возвращает число объектов, созданных пулом.
func (p *Pool[T]) Created() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created
}
