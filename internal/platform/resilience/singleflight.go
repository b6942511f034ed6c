package resilience

import (
	"errors"
	"fmt"
	"sync"
)

// ErrFlightPanicked is returned to callers that shared a call whose function
// panicked. The caller that ran the function sees the panic itself.
var ErrFlightPanicked = errors.New("singleflight: shared call panicked")

// SingleFlight collapses concurrent calls for the same key into one execution.
type SingleFlight[T any] struct {
	mu    sync.Mutex
	calls map[string]*flight[T]
}

type flight[T any] struct {
	done    chan struct{}
	val     T
	err     error
	waiters int
}

func (g *SingleFlight[T]) Do(key string, fn func() (T, error)) (T, error, bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*flight[T])
	}
	if f, ok := g.calls[key]; ok {
		f.waiters++
		g.mu.Unlock()
		<-f.done
		return f.val, f.err, true
	}

	f := &flight[T]{done: make(chan struct{})}
	g.calls[key] = f
	g.mu.Unlock()

	defer func() {
		r := recover()
		if r != nil {
			var zero T
			f.val = zero
			f.err = fmt.Errorf("%w: %v", ErrFlightPanicked, r)
		}

		g.mu.Lock()
		delete(g.calls, key)
		g.mu.Unlock()
		close(f.done)

		if r != nil {
			panic(r)
		}
	}()

	f.val, f.err = fn()
	return f.val, f.err, false
}

// Waiting returns how many callers are blocked on the in-flight call for key.
func (g *SingleFlight[T]) Waiting(key string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if f, ok := g.calls[key]; ok {
		return f.waiters
	}
	return 0
}
