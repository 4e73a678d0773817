package fatkit

import "sync/atomic"

// guard is a non-blocking exclusivity latch over a shared mutable entity.
// acquire fails immediately when the guard is already held; it never waits,
// so reentrant access surfaces as an error instead of a deadlock.
type guard struct {
	held atomic.Bool
}

func (g *guard) acquire() bool {
	return g.held.CompareAndSwap(false, true)
}

func (g *guard) release() {
	g.held.Store(false)
}
