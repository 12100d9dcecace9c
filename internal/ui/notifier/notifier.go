// Package notifier fans out "state changed" pings to SSE streams.
package notifier

import "sync"

// Notifier broadcasts change signals to subscribed streams.
// A listener receives an empty struct when the view it renders has changed
// and should re-read the state. Pings coalesce: a listener that is behind
// sees at most one pending ping.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan struct{}]struct{}
	closed    bool
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan struct{}]struct{}),
	}
}

// Subscribe returns a ping channel and a cancel func that removes it.
// Cancel is safe to call more than once. Subscribing to a closed notifier
// returns an already-closed channel.
func (n *Notifier) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() { n.remove(ch) })
	}
}

func (n *Notifier) remove(ch chan struct{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.listeners[ch]; !ok {
		return
	}
	delete(n.listeners, ch)
	close(ch)
}

// Broadcast sends a ping to all listeners.
// Non-blocking: if a listener's channel is full, the ping is skipped.
func (n *Notifier) Broadcast() {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners {
		select {
		case ch <- struct{}{}:
		default:
			// Already has a pending ping.
		}
	}
}

// Close closes every listener channel and rejects later subscriptions.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	for ch := range n.listeners {
		delete(n.listeners, ch)
		close(ch)
	}
}

// Len returns the number of live listeners.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}
