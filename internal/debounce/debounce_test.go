package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	values []int
}

func (r *recorder) record(v int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) get() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.values...)
}

func TestBurstDeliversLatestOnce(t *testing.T) {
	rec := &recorder{}
	d := New(20*time.Millisecond, rec.record)

	d.Trigger(1)
	d.Trigger(2)
	d.Trigger(3)

	require.Eventually(t, func() bool {
		return len(rec.get()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{3}, rec.get())

	// Quiet period after delivery must not fire again.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []int{3}, rec.get())
}

func TestTriggerRestartsQuietWindow(t *testing.T) {
	rec := &recorder{}
	d := New(40*time.Millisecond, rec.record)

	d.Trigger(1)
	time.Sleep(20 * time.Millisecond)
	d.Trigger(2)
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, rec.get(), "window restarted, nothing due yet")

	require.Eventually(t, func() bool {
		return len(rec.get()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{2}, rec.get())
}

func TestFlushDeliversImmediately(t *testing.T) {
	rec := &recorder{}
	d := New(time.Hour, rec.record)

	d.Trigger(7)
	d.Flush()
	assert.Equal(t, []int{7}, rec.get())

	// Nothing pending now, so a second flush is a no-op.
	d.Flush()
	assert.Equal(t, []int{7}, rec.get())
}

func TestFlushWithoutTrigger(t *testing.T) {
	rec := &recorder{}
	d := New(time.Hour, rec.record)
	d.Flush()
	assert.Empty(t, rec.get())
}
