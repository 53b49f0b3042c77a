package search

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerCoalescesBursts(t *testing.T) {
	d := NewDebouncer(25 * time.Millisecond)
	defer d.Stop()

	var mu sync.Mutex
	var fired []string
	record := func(v string) func() {
		return func() {
			mu.Lock()
			fired = append(fired, v)
			mu.Unlock()
		}
	}

	for _, v := range []string{"a", "al", "ali", "alic", "alice"} {
		d.Trigger(record(v))
		time.Sleep(2 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(fired) == 1
	}, time.Second, 5*time.Millisecond)

	// No further calls fire after the burst settles.
	time.Sleep(60 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"alice"}, fired)
}

func TestDebouncerSeparateBurstsFireSeparately(t *testing.T) {
	d := NewDebouncer(15 * time.Millisecond)
	defer d.Stop()

	done := make(chan string, 2)
	d.Trigger(func() { done <- "first" })
	select {
	case v := <-done:
		assert.Equal(t, "first", v)
	case <-time.After(time.Second):
		t.Fatal("first burst never fired")
	}

	d.Trigger(func() { done <- "second" })
	select {
	case v := <-done:
		assert.Equal(t, "second", v)
	case <-time.After(time.Second):
		t.Fatal("second burst never fired")
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(15 * time.Millisecond)
	fired := make(chan struct{}, 1)
	d.Trigger(func() { fired <- struct{}{} })
	d.Stop()

	select {
	case <-fired:
		t.Fatal("stopped debouncer still fired")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDebouncerDefaultDelay(t *testing.T) {
	assert.Equal(t, DefaultQuiescence, NewDebouncer(0).delay)
	assert.Equal(t, DefaultQuiescence, NewDebouncer(-time.Second).delay)
	assert.Equal(t, time.Second, NewDebouncer(time.Second).delay)
}
