package dashboard

import (
	"sync"
	"time"
)

// Registry tracks the live views of the server, keyed by view id.
type Registry struct {
	mu    sync.RWMutex
	views map[string]*View
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{views: make(map[string]*View)}
}

// Add registers v under its id.
func (r *Registry) Add(v *View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[v.ID()] = v
}

// Get returns the view with the given id.
func (r *Registry) Get(id string) (*View, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.views[id]
	return v, ok
}

// Remove unmounts and drops the view with the given id.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	v, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()

	if ok {
		v.Unmount()
	}
}

// Sweep unmounts and drops every view that has been without a stream for
// longer than idle. It returns the number of views removed.
func (r *Registry) Sweep(now time.Time, idle time.Duration) int {
	r.mu.Lock()
	var stale []*View
	for id, v := range r.views {
		if v.Idle(now, idle) {
			stale = append(stale, v)
			delete(r.views, id)
		}
	}
	r.mu.Unlock()

	for _, v := range stale {
		v.Unmount()
	}
	return len(stale)
}

// Len returns the number of registered views.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}

// Close unmounts every view.
func (r *Registry) Close() {
	r.mu.Lock()
	views := r.views
	r.views = make(map[string]*View)
	r.mu.Unlock()

	for _, v := range views {
		v.Unmount()
	}
}
