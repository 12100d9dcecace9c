// Package clickaway dispatches page-level pointer events to open overlays.
//
// An overlay subscribes with the region it occupies while it is open and
// releases the subscription when it closes. A pointer event whose target lies
// outside a subscribed region fires that subscription's callback.
package clickaway

import (
	"strings"
	"sync"
)

// Region identifies the element subtree an overlay occupies. Elements inside
// the region carry ids equal to the region id or prefixed with "<id>-".
type Region struct {
	ID string
}

// Contains reports whether the element with the given id is inside r.
func (r Region) Contains(target string) bool {
	if r.ID == "" || target == "" {
		return false
	}
	return target == r.ID || strings.HasPrefix(target, r.ID+"-")
}

// Registry holds the live subscriptions for one page.
type Registry struct {
	mu   sync.Mutex
	subs map[string]*Subscription
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{subs: make(map[string]*Subscription)}
}

// Subscription is a scoped listener. Release is idempotent.
type Subscription struct {
	registry  *Registry
	region    Region
	onOutside func()
	once      sync.Once
}

// Subscribe registers onOutside for pointer events outside region.
// A region holds at most one subscription; subscribing again replaces and
// releases the previous one.
func (r *Registry) Subscribe(region Region, onOutside func()) *Subscription {
	sub := &Subscription{registry: r, region: region, onOutside: onOutside}

	r.mu.Lock()
	prev := r.subs[region.ID]
	r.subs[region.ID] = sub
	r.mu.Unlock()

	if prev != nil {
		prev.once.Do(func() {})
	}
	return sub
}

// Release removes the subscription. Later dispatches no longer reach it.
func (s *Subscription) Release() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.registry.mu.Lock()
		if s.registry.subs[s.region.ID] == s {
			delete(s.registry.subs, s.region.ID)
		}
		s.registry.mu.Unlock()
	})
}

// Region returns the region the subscription watches.
func (s *Subscription) Region() Region { return s.region }

// Dispatch delivers a pointer event on the element with id target.
// Callbacks run on the calling goroutine after the registry lock is dropped,
// so they may release their own subscription. It returns how many callbacks fired.
func (r *Registry) Dispatch(target string) int {
	r.mu.Lock()
	fire := make([]*Subscription, 0, len(r.subs))
	for _, sub := range r.subs {
		if !sub.region.Contains(target) {
			fire = append(fire, sub)
		}
	}
	r.mu.Unlock()

	for _, sub := range fire {
		sub.onOutside()
	}
	return len(fire)
}

// Len returns the number of live subscriptions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

// Clear releases every subscription.
func (r *Registry) Clear() {
	r.mu.Lock()
	subs := make([]*Subscription, 0, len(r.subs))
	for _, sub := range r.subs {
		subs = append(subs, sub)
	}
	r.mu.Unlock()

	for _, sub := range subs {
		sub.Release()
	}
}
