package stores_test

import (
	"sync"
	"testing"

	"github.com/delaneyj/storeparty/stores"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventDispatch(t *testing.T) {
	e := stores.NewEvent()

	fired := 0
	e.Listen(func() { fired++ })
	assert.Equal(t, 0, fired)

	e.Dispatch()
	assert.Equal(t, 1, fired)

	e.Dispatch()
	e.Dispatch()
	assert.Equal(t, 3, fired)
}

func TestEventDispatchWithNoListeners(t *testing.T) {
	e := stores.NewEvent()
	e.Dispatch() // must not blow up
}

func TestEventMultipleListeners(t *testing.T) {
	e := stores.NewEvent()

	a, b := 0, 0
	e.Listen(func() { a++ })
	e.Listen(func() { b++ })

	e.Dispatch()
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}

func TestEventUnsubscribe(t *testing.T) {
	e := stores.NewEvent()

	fired := 0
	unsubscribe := e.Listen(func() { fired++ })

	e.Dispatch()
	require.Equal(t, 1, fired)

	unsubscribe()
	unsubscribe()
	e.Dispatch()
	assert.Equal(t, 1, fired)
}

func TestEventConcurrentDispatch(t *testing.T) {
	const n = 50

	e := stores.NewEvent()

	var mu sync.Mutex
	fired := 0
	e.Listen(func() {
		mu.Lock()
		fired++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Dispatch()
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, n, fired)
}
