package buffer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaw_PushThenPopPreservesOrder(t *testing.T) {
	r := New()
	r.Push([]byte("first"))
	r.Push([]byte("second"))

	frame, ok := r.Pop()
	require.True(t, ok)
	assert.Equal(t, "first", string(frame))

	frame, ok = r.Pop()
	require.True(t, ok)
	assert.Equal(t, "second", string(frame))
}

func TestRaw_PopBlocksUntilPush(t *testing.T) {
	r := New()

	type result struct {
		frame []byte
		ok    bool
	}
	done := make(chan result, 1)
	go func() {
		frame, ok := r.Pop()
		done <- result{frame, ok}
	}()

	select {
	case <-done:
		t.Fatal("Pop returned before any Push")
	case <-time.After(20 * time.Millisecond):
	}

	r.Push([]byte("late"))

	select {
	case res := <-done:
		require.True(t, res.ok)
		assert.Equal(t, "late", string(res.frame))
	case <-time.After(time.Second):
		t.Fatal("Pop did not wake up after Push")
	}
}

func TestRaw_CloseUnblocksPendingPop(t *testing.T) {
	r := New()

	done := make(chan bool, 1)
	go func() {
		_, ok := r.Pop()
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	r.Close()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Pop did not unblock after Close")
	}
}

func TestRaw_PushAfterCloseIsDiscarded(t *testing.T) {
	r := New()
	r.Close()
	r.Push([]byte("dropped"))

	_, ok := r.Pop()
	assert.False(t, ok)
}

func TestRaw_PopDrainsQueueBeforeReportingClosed(t *testing.T) {
	r := New()
	r.Push([]byte("queued"))
	r.Close()

	frame, ok := r.Pop()
	require.True(t, ok)
	assert.Equal(t, "queued", string(frame))

	_, ok = r.Pop()
	assert.False(t, ok)
}
