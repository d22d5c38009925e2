package fetch

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// State describes where a key is in its fetch lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

// Loader is a small per-key data-fetching layer: concurrent loads of
// the same key collapse into one in-flight call, results are cached
// until invalidated, and every key's loading state is observable.
type Loader[V any] struct {
	group singleflight.Group

	mu     sync.RWMutex
	states map[string]State
	values map[string]V
}

// NewLoader creates an empty Loader.
func NewLoader[V any]() *Loader[V] {
	return &Loader[V]{
		states: make(map[string]State),
		values: make(map[string]V),
	}
}

// Load returns the cached value for key, or runs fn to produce it.
// Concurrent calls for the same key share a single fn invocation.
func (l *Loader[V]) Load(key string, fn func() (V, error)) (V, error) {
	l.mu.RLock()
	if l.states[key] == StateReady {
		v := l.values[key]
		l.mu.RUnlock()
		return v, nil
	}
	l.mu.RUnlock()

	l.setState(key, StateLoading)

	res, err, _ := l.group.Do(key, func() (any, error) {
		return fn()
	})
	if err != nil {
		l.setState(key, StateFailed)
		var zero V
		return zero, err
	}

	v := res.(V)
	l.mu.Lock()
	l.values[key] = v
	l.states[key] = StateReady
	l.mu.Unlock()
	return v, nil
}

// State returns the current state of a key.
func (l *Loader[V]) State(key string) State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.states[key]
}

// Cached returns the cached value for key, if one is ready.
func (l *Loader[V]) Cached(key string) (V, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.states[key] != StateReady {
		var zero V
		return zero, false
	}
	return l.values[key], true
}

// Invalidate drops the cached value and state for key, forcing the next
// Load to refetch. Called after mutations such as an unlike.
func (l *Loader[V]) Invalidate(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.values, key)
	delete(l.states, key)
}

// Settled reports whether no tracked key is currently loading.
func (l *Loader[V]) Settled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, st := range l.states {
		if st == StateLoading {
			return false
		}
	}
	return true
}

func (l *Loader[V]) setState(key string, st State) {
	l.mu.Lock()
	l.states[key] = st
	l.mu.Unlock()
}
