package stores_test

import (
	"sync"
	"testing"

	"github.com/delaneyj/storeparty/stores"
	"github.com/stretchr/testify/assert"
)

// Registry behavior is exercised through Event, the thinnest wrapper
// around it.

func TestRegistryIdsAreNeverReused(t *testing.T) {
	e := stores.NewEvent()

	stale := make([]stores.Unsubscribe, 0, 10)
	for i := 0; i < 10; i++ {
		u := e.Listen(func() {})
		u()
		stale = append(stale, u)
	}

	fired := 0
	e.Listen(func() { fired++ })

	// stale handles must not be able to remove the live registration
	for _, u := range stale {
		u()
	}
	e.Dispatch()
	assert.Equal(t, 1, fired)
}

func TestRegistryUnsubscribeDuringDispatch(t *testing.T) {
	e := stores.NewEvent()

	aFired, bFired := 0, 0
	var unsubscribeB stores.Unsubscribe
	e.Listen(func() {
		aFired++
		unsubscribeB()
	})
	unsubscribeB = e.Listen(func() { bFired++ })

	// b was in the snapshot, so it may fire once more in this pass,
	// but never in later ones
	e.Dispatch()
	firstPass := bFired
	assert.LessOrEqual(t, firstPass, 1)

	e.Dispatch()
	assert.Equal(t, 2, aFired)
	assert.Equal(t, firstPass, bFired)
}

func TestRegistryConcurrentRegistrationAndDispatch(t *testing.T) {
	e := stores.NewEvent()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			u := e.Listen(func() {})
			u()
		}()
		go func() {
			defer wg.Done()
			e.Dispatch()
		}()
	}
	wg.Wait()

	fired := 0
	e.Listen(func() { fired++ })
	e.Dispatch()
	assert.Equal(t, 1, fired)
}
