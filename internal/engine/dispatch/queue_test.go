package dispatch_test

import (
	"sync"
	"testing"

	"github.com/interactive-instruments/etf-spi/internal/engine/dispatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_RunsInOrder(t *testing.T) {
	var q dispatch.Queue
	var got []int

	for i := range 5 {
		q.Do(func() { got = append(got, i) })
	}

	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestQueue_ReentrantDoIsDeferred(t *testing.T) {
	var q dispatch.Queue
	var got []string

	q.Do(func() {
		got = append(got, "outer start")
		q.Do(func() { got = append(got, "inner") })
		got = append(got, "outer end")
	})

	assert.Equal(t, []string{"outer start", "outer end", "inner"}, got)
}

func TestQueue_PanicReleasesQueue(t *testing.T) {
	var q dispatch.Queue

	require.Panics(t, func() {
		q.Do(func() { panic("boom") })
	})

	ran := false
	q.Do(func() { ran = true })
	assert.True(t, ran)
}

func TestQueue_Concurrent(t *testing.T) {
	var q dispatch.Queue
	var mu sync.Mutex
	active := 0
	maxActive := 0
	count := 0

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			q.Do(func() {
				mu.Lock()
				active++
				maxActive = max(maxActive, active)
				count++
				mu.Unlock()

				mu.Lock()
				active--
				mu.Unlock()
			})
		})
	}
	// Drainers are Do callers, so every function ran once all callers returned.
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 50, count)
	assert.Equal(t, 1, maxActive)
}

func TestQueue_PushThenDrain(t *testing.T) {
	var q dispatch.Queue
	var got []int

	q.Push(func() { got = append(got, 1) }, func() { got = append(got, 2) })
	assert.Empty(t, got)

	q.Drain()
	assert.Equal(t, []int{1, 2}, got)
}
