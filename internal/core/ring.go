package core

// Ring is a fixed-capacity FIFO. Pushing into a full ring overwrites the
// oldest element. Index 0 is always the oldest element.
type Ring[T any] struct {
	buf   []T
	head  int
	count int
}

// NewRing allocates a ring holding at most capacity elements.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Len reports the number of stored elements.
func (r *Ring[T]) Len() int { return r.count }

// Full reports whether the next Push evicts.
func (r *Ring[T]) Full() bool { return r.count == len(r.buf) }

// Push appends v. When the ring is full the oldest element is overwritten and
// returned with ok set to true.
func (r *Ring[T]) Push(v T) (evicted T, ok bool) {
	if r.count == len(r.buf) {
		evicted = r.buf[r.head]
		r.buf[r.head] = v
		r.head = (r.head + 1) % len(r.buf)
		return evicted, true
	}
	r.buf[(r.head+r.count)%len(r.buf)] = v
	r.count++
	return evicted, false
}

// At returns the i-th oldest element. It panics when i is out of range.
func (r *Ring[T]) At(i int) T {
	if i < 0 || i >= r.count {
		panic("core: ring index out of range")
	}
	return r.buf[(r.head+i)%len(r.buf)]
}

// Do calls fn for every element from oldest to newest.
func (r *Ring[T]) Do(fn func(T)) {
	for i := 0; i < r.count; i++ {
		fn(r.buf[(r.head+i)%len(r.buf)])
	}
}

// Filter drops every element for which keep returns false, preserving the
// order of the survivors. drop, when non-nil, receives each removed element.
func (r *Ring[T]) Filter(keep func(T) bool, drop func(T)) {
	var zero T
	n := len(r.buf)
	w := 0
	for i := 0; i < r.count; i++ {
		v := r.buf[(r.head+i)%n]
		if keep(v) {
			r.buf[(r.head+w)%n] = v
			w++
			continue
		}
		if drop != nil {
			drop(v)
		}
	}
	for i := w; i < r.count; i++ {
		r.buf[(r.head+i)%n] = zero
	}
	r.count = w
}

// Clear empties the ring. drop, when non-nil, receives each element.
func (r *Ring[T]) Clear(drop func(T)) {
	r.Filter(func(T) bool { return false }, drop)
	r.head = 0
}
