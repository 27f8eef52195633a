package corpus

import "sync"

// Lazy defers an expensive load until first use and runs it at most once, even under
// concurrent first access. The result, error included, is cached for the process lifetime.
type Lazy[T any] struct {
	get func() (T, error)
}

// NewLazy wraps load.
func NewLazy[T any](load func() (T, error)) *Lazy[T] {
	return &Lazy[T]{get: sync.OnceValues(load)}
}

// Ready wraps a value that is already loaded.
func Ready[T any](v T) *Lazy[T] {
	return &Lazy[T]{get: func() (T, error) { return v, nil }}
}

// Get returns the loaded value.
func (l *Lazy[T]) Get() (T, error) {
	return l.get()
}
