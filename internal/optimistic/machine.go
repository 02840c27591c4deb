package optimistic

import (
	"sync"

	"github.com/AdejohOS/feather-mart-sub001/internal/cart"
)

// Status reports whether the machine has unresolved mutations in flight.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
)

type pendingMutation struct {
	seq    uint64
	action Action
}

// Machine holds one caller's view of the cart: the last server-confirmed
// state plus a queue of dispatched-but-unresolved mutations. Reads fold the
// queue over the confirmed state so the caller always sees the outcome of
// every mutation it has issued, even while the server is still working.
//
// Resolutions carry the sequence number the mutation was dispatched with.
// A resolution older than one already applied is discarded, so out-of-order
// server replies cannot roll the confirmed state backwards.
type Machine struct {
	mu           sync.Mutex
	confirmed    cart.Cart
	pending      []pendingMutation
	nextSeq      uint64
	lastResolved uint64
}

// NewMachine starts from a server-confirmed cart.
func NewMachine(confirmed cart.Cart) *Machine {
	return &Machine{confirmed: confirmed}
}

// Dispatch queues a mutation and returns the sequence number the caller must
// hand back to Resolve or Fail once the server answers.
func (m *Machine) Dispatch(action Action) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextSeq++
	m.pending = append(m.pending, pendingMutation{seq: m.nextSeq, action: action})
	return m.nextSeq
}

// Speculative returns the confirmed state with every pending mutation
// applied in dispatch order.
func (m *Machine) Speculative() cart.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := m.confirmed
	for _, p := range m.pending {
		state = Apply(state, p.action)
	}
	return state
}

// Confirmed returns the last server-acknowledged state, ignoring the queue.
func (m *Machine) Confirmed() cart.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.confirmed
}

// Status is pending while any dispatched mutation is unresolved.
func (m *Machine) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pending) > 0 {
		return StatusPending
	}
	return StatusIdle
}

// Resolve records the server's authoritative cart for the mutation
// dispatched as seq. The mutation and everything dispatched before it leave
// the queue; later mutations stay pending and keep folding over the new
// confirmed state. Stale resolutions, ones for a seq at or below the last
// applied, are dropped.
func (m *Machine) Resolve(seq uint64, authoritative cart.Cart) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if seq <= m.lastResolved {
		return
	}
	m.lastResolved = seq
	m.confirmed = authoritative
	m.dropThrough(seq)
}

// Fail abandons the mutation dispatched as seq and every other pending
// mutation with it, snapping back to the refetched server state. Anything
// the caller dispatched after the failed mutation was speculating on top of
// a state that never happened, so the whole queue goes.
func (m *Machine) Fail(seq uint64, refetched cart.Cart) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if seq <= m.lastResolved {
		return
	}
	m.lastResolved = m.nextSeq
	m.confirmed = refetched
	m.pending = nil
}

// dropThrough removes pending mutations with seq at or below the cutoff.
// Callers hold m.mu.
func (m *Machine) dropThrough(cutoff uint64) {
	kept := m.pending[:0]
	for _, p := range m.pending {
		if p.seq > cutoff {
			kept = append(kept, p)
		}
	}
	m.pending = kept
	if len(m.pending) == 0 {
		m.pending = nil
	}
}
