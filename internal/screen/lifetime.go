// Package screen tracks the mounted lifetime of a view so that responses
// arriving after the view moved on are dropped instead of applied.
package screen

import (
	"errors"
	"sync"
)

// ErrStale is returned when a response belongs to a superseded request or to
// a closed view.
var ErrStale = errors.New("screen: response discarded")

// Lifetime hands out tickets tied to a generation counter. Each Begin starts a
// new generation; Close ends the lifetime and invalidates every ticket.
// The zero value is ready to use.
type Lifetime struct {
	mu     sync.Mutex
	gen    uint64
	closed bool
}

type Ticket struct {
	l   *Lifetime
	gen uint64
}

func (l *Lifetime) Begin() Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	return Ticket{l: l, gen: l.gen}
}

func (l *Lifetime) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
}

func (l *Lifetime) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// Live reports whether t is still the newest ticket of an open lifetime.
func (t Ticket) Live() bool {
	if t.l == nil {
		return false
	}
	t.l.mu.Lock()
	defer t.l.mu.Unlock()
	return t.live()
}

func (t Ticket) live() bool {
	return !t.l.closed && t.l.gen == t.gen
}

// Apply runs fn only while t is live. fn runs under the lifetime lock, so a
// concurrent Close or Begin cannot interleave with it.
func (t Ticket) Apply(fn func()) error {
	if t.l == nil {
		return ErrStale
	}
	t.l.mu.Lock()
	defer t.l.mu.Unlock()
	if !t.live() {
		return ErrStale
	}
	fn()
	return nil
}
