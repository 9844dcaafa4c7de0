package pagedsearch

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerFiresOnceForBurst(t *testing.T) {
	t.Parallel()

	d := NewDebouncer(30 * time.Millisecond)
	var fired atomic.Int32
	var last atomic.Value

	for _, v := range []string{"a", "ab", "abc"} {
		v := v
		d.Call(func() {
			fired.Add(1)
			last.Store(v)
		})
	}

	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
	assert.Equal(t, "abc", last.Load())
}

func TestDebouncerCancelStopsPendingCall(t *testing.T) {
	t.Parallel()

	d := NewDebouncer(30 * time.Millisecond)
	var fired atomic.Int32

	d.Call(func() { fired.Add(1) })
	d.Cancel()

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestDebouncerSeparateWindowsBothFire(t *testing.T) {
	t.Parallel()

	d := NewDebouncer(20 * time.Millisecond)
	var fired atomic.Int32

	d.Call(func() { fired.Add(1) })
	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 5*time.Millisecond)

	d.Call(func() { fired.Add(1) })
	require.Eventually(t, func() bool { return fired.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestDebouncerCancelIsIdempotent(t *testing.T) {
	t.Parallel()

	d := NewDebouncer(10 * time.Millisecond)
	d.Cancel()
	d.Cancel()

	d.Call(func() {})
	d.Cancel()
	d.Cancel()
}

func TestDebouncerDelayAccessor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 250*time.Millisecond, NewDebouncer(250*time.Millisecond).Delay())
}
