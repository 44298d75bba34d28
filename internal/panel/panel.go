// Package panel holds the render state of one widget region: the item list
// currently on display, the last failure message and whether the region has
// been revealed.
package panel

import (
	"sync"
)

// Ticket identifies one request issued against a panel. Tickets are issued in
// strictly increasing order.
type Ticket uint64

// View is an immutable copy of a panel's state, safe to render without locks.
type View[T any] struct {
	Items   []T
	Error   string
	Visible bool
	Pending bool
}

// Panel is safe for concurrent use. Completions are applied only when their
// ticket is newer than the last applied one, so the most recently issued
// request always determines what is on display.
type Panel[T any] struct {
	mu      sync.Mutex
	items   []T
	err     string
	visible bool
	issued  Ticket
	applied Ticket
}

// New creates an empty panel. visible sets the initial visibility.
func New[T any](visible bool) *Panel[T] {
	return &Panel[T]{visible: visible}
}

// Begin issues the ticket for a new request.
func (p *Panel[T]) Begin() Ticket {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.issued++
	return p.issued
}

// Replace swaps the displayed items for items and clears any error. It
// reports false, leaving the panel untouched, when t is stale.
func (p *Panel[T]) Replace(t Ticket, items []T) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if t <= p.applied {
		return false
	}
	p.applied = t
	p.items = append([]T(nil), items...)
	p.err = ""
	return true
}

// Fail records err as the panel's message while keeping the items already on
// display. Like Replace it ignores stale tickets.
func (p *Panel[T]) Fail(t Ticket, err error) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if t <= p.applied {
		return false
	}
	p.applied = t
	p.err = Message(err)
	return true
}

// Show reveals the panel. There is no way to hide it again.
func (p *Panel[T]) Show() {
	p.mu.Lock()
	p.visible = true
	p.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (p *Panel[T]) Snapshot() View[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return View[T]{
		Items:   append([]T(nil), p.items...),
		Error:   p.err,
		Visible: p.visible,
		Pending: p.issued > p.applied,
	}
}
