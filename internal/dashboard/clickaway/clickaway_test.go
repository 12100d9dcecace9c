package clickaway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegionContains(t *testing.T) {
	r := Region{ID: "share-modal"}

	assert.True(t, r.Contains("share-modal"))
	assert.True(t, r.Contains("share-modal-email"))
	assert.False(t, r.Contains("share-modalx"))
	assert.False(t, r.Contains("folder-list"))
	assert.False(t, r.Contains(""))
	assert.False(t, Region{}.Contains("anything"))
}

func TestDispatch_OutsideFiresInsideDoesNot(t *testing.T) {
	reg := NewRegistry()
	fired := 0
	reg.Subscribe(Region{ID: "share-modal"}, func() { fired++ })

	assert.Equal(t, 0, reg.Dispatch("share-modal-input"))
	assert.Equal(t, 0, fired)

	assert.Equal(t, 1, reg.Dispatch("dashboard-backdrop"))
	assert.Equal(t, 1, fired)
}

func TestRelease_IsIdempotentAndStopsDelivery(t *testing.T) {
	reg := NewRegistry()
	fired := 0
	sub := reg.Subscribe(Region{ID: "share-modal"}, func() { fired++ })

	sub.Release()
	sub.Release()

	assert.Equal(t, 0, reg.Len())
	reg.Dispatch("elsewhere")
	assert.Equal(t, 0, fired)
}

func TestSubscribe_ReplacesPreviousForSameRegion(t *testing.T) {
	reg := NewRegistry()
	first, second := 0, 0

	old := reg.Subscribe(Region{ID: "share-modal"}, func() { first++ })
	var live *Subscription
	for i := 0; i < 3; i++ {
		live = reg.Subscribe(Region{ID: "share-modal"}, func() { second++ })
	}
	assert.Equal(t, old.Region(), live.Region())

	assert.Equal(t, 1, reg.Len(), "repeated opens must not stack handlers")
	reg.Dispatch("elsewhere")
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)

	// Releasing the stale subscription must not remove the live one.
	old.Release()
	assert.Equal(t, 1, reg.Len())
}

func TestCallbackMayReleaseItself(t *testing.T) {
	reg := NewRegistry()
	var sub *Subscription
	sub = reg.Subscribe(Region{ID: "share-modal"}, func() { sub.Release() })

	reg.Dispatch("elsewhere")

	assert.Equal(t, 0, reg.Len())
}

func TestClear(t *testing.T) {
	reg := NewRegistry()
	reg.Subscribe(Region{ID: "a"}, func() {})
	reg.Subscribe(Region{ID: "b"}, func() {})

	reg.Clear()

	assert.Equal(t, 0, reg.Len())
}
