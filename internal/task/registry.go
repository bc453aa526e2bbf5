// Package task tracks the cancellable background work started by the search
// screen. Each kind of work has at most one live task: starting a new one
// cancels the previous one of the same kind before the new one begins.
package task

import (
	"context"
	"sync"
)

// Kind names a category of screen work.
type Kind string

const (
	Search    Kind = "search"
	Flights   Kind = "flights"
	Favorites Kind = "favorites"
)

// Handle identifies one started task.
type Handle struct {
	Kind Kind
	Seq  uint64
}

type running struct {
	seq    uint64
	cancel context.CancelFunc
}

// Registry hands out task contexts derived from the screen lifetime context.
type Registry struct {
	parent context.Context

	mu      sync.Mutex
	seq     uint64
	running map[Kind]running
}

// NewRegistry creates a registry whose tasks end when parent does.
func NewRegistry(parent context.Context) *Registry {
	if parent == nil {
		parent = context.Background()
	}
	return &Registry{
		parent:  parent,
		running: make(map[Kind]running),
	}
}

// Context returns the screen lifetime context.
func (r *Registry) Context() context.Context {
	return r.parent
}

// Start cancels the running task of kind, if any, and registers a new one.
func (r *Registry) Start(kind Kind) (context.Context, Handle) {
	ctx, cancel := context.WithCancel(r.parent)

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.running[kind]; ok {
		prev.cancel()
	}
	r.seq++
	r.running[kind] = running{seq: r.seq, cancel: cancel}
	return ctx, Handle{Kind: kind, Seq: r.seq}
}

// Current reports whether h is still the newest task of its kind.
func (r *Registry) Current(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.running[h.Kind]
	return ok && cur.seq == h.Seq
}

// Finish releases h if it is still the newest task of its kind.
func (r *Registry) Finish(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.running[h.Kind]; ok && cur.seq == h.Seq {
		cur.cancel()
		delete(r.running, h.Kind)
	}
}

// Cancel stops the running task of kind.
func (r *Registry) Cancel(kinds ...Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, kind := range kinds {
		if cur, ok := r.running[kind]; ok {
			cur.cancel()
			delete(r.running, kind)
		}
	}
}

// CancelAll stops every running task.
func (r *Registry) CancelAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for kind, cur := range r.running {
		cur.cancel()
		delete(r.running, kind)
	}
}

// Running reports whether a task of kind is in flight.
func (r *Registry) Running(kind Kind) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.running[kind]
	return ok
}
