package notifier

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_SubscribeCancel(t *testing.T) {
	n := New()

	ch, cancel := n.Subscribe()
	require.NotNil(t, ch)
	assert.Equal(t, 1, n.Len())

	cancel()
	cancel()

	assert.Equal(t, 0, n.Len())
	_, open := <-ch
	assert.False(t, open, "cancel should close the channel")
}

func TestNotifier_Broadcast(t *testing.T) {
	n := New()

	ch1, cancel1 := n.Subscribe()
	ch2, cancel2 := n.Subscribe()
	defer cancel1()
	defer cancel2()

	n.Broadcast()

	for i, ch := range []<-chan struct{}{ch1, ch2} {
		select {
		case <-ch:
		case <-time.After(100 * time.Millisecond):
			t.Errorf("listener %d did not receive broadcast", i)
		}
	}
}

func TestNotifier_Broadcast_Coalesces(t *testing.T) {
	n := New()

	ch, cancel := n.Subscribe()
	defer cancel()

	n.Broadcast()

	// A second broadcast while the first ping is pending must not block.
	done := make(chan struct{})
	go func() {
		n.Broadcast()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Broadcast blocked on full channel")
	}

	<-ch
	select {
	case <-ch:
		t.Error("pings should coalesce into one")
	default:
	}
}

func TestNotifier_Close(t *testing.T) {
	n := New()
	ch, cancel := n.Subscribe()

	n.Close()
	n.Close()

	_, open := <-ch
	assert.False(t, open)
	cancel()

	late, lateCancel := n.Subscribe()
	defer lateCancel()
	_, open = <-late
	assert.False(t, open, "subscribing after Close yields a closed channel")
	assert.Equal(t, 0, n.Len())
}

func TestNotifier_Concurrent(t *testing.T) {
	n := New()

	var wg sync.WaitGroup
	const numGoroutines = 10

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, cancel := n.Subscribe()
			n.Broadcast()
			cancel()
		}()
	}

	wg.Wait()

	assert.Equal(t, 0, n.Len())
}
