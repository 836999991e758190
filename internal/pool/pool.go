// Package pool recycles frequently allocated simulation objects so the frame
// loop does not churn the garbage collector.
package pool

// DefaultRetention is the number of idle objects kept for reuse.
const DefaultRetention = 50

// Pool hands out *T values built by a factory and takes them back for reuse.
// It never resets fields: callers overwrite everything they rely on after
// Acquire. A Pool is not safe for concurrent use.
type Pool[T any] struct {
	factory   func() *T
	retention int
	idle      []*T
	active    map[*T]struct{}
}

// New constructs a Pool. A nil factory allocates zero values with new(T); a
// non-positive retention falls back to DefaultRetention.
func New[T any](factory func() *T, retention int) *Pool[T] {
	if factory == nil {
		factory = func() *T { return new(T) }
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Pool[T]{
		factory:   factory,
		retention: retention,
		idle:      make([]*T, 0, retention),
		active:    make(map[*T]struct{}),
	}
}

// Acquire returns an idle object when one exists, otherwise a fresh one from
// the factory. The object is tracked as active until released.
func (p *Pool[T]) Acquire() *T {
	var obj *T
	if n := len(p.idle); n > 0 {
		obj = p.idle[n-1]
		p.idle[n-1] = nil
		p.idle = p.idle[:n-1]
	} else {
		obj = p.factory()
	}
	p.active[obj] = struct{}{}
	return obj
}

// Release returns obj to the pool. Objects that are not currently active are
// ignored, so releasing twice is harmless. Once the idle list holds retention
// objects further releases are dropped for the garbage collector.
func (p *Pool[T]) Release(obj *T) {
	if obj == nil {
		return
	}
	if _, ok := p.active[obj]; !ok {
		return
	}
	delete(p.active, obj)
	if len(p.idle) < p.retention {
		p.idle = append(p.idle, obj)
	}
}

// Active reports how many acquired objects have not been released.
func (p *Pool[T]) Active() int { return len(p.active) }

// Idle reports how many objects are waiting for reuse.
func (p *Pool[T]) Idle() int { return len(p.idle) }

// Retention reports the idle cap.
func (p *Pool[T]) Retention() int { return p.retention }
