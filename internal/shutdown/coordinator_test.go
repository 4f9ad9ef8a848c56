package shutdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestCoordinator_CancelStopsTrackedTasks(t *testing.T) {
	c := New(zap.NewNop())

	started := make(chan struct{})
	c.Go(func() {
		close(started)
		<-c.Context().Done()
	})

	<-started
	c.Cancel()

	assert.True(t, c.Wait(time.Second))
}

func TestCoordinator_WaitTimesOutOnStuckTask(t *testing.T) {
	c := New(zap.NewNop())

	release := make(chan struct{})
	defer close(release)

	c.Go(func() {
		<-release
	})

	assert.False(t, c.Wait(20*time.Millisecond))
}

func TestCoordinator_WaitReturnsTrueWithNoTasks(t *testing.T) {
	c := New(zap.NewNop())
	assert.True(t, c.Wait(time.Second))
}
