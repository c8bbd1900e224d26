package host

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakeyudi/ticker/internal/schedule"
)

func runLoop(t *testing.T, l *Loop) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		_ = l.Run(ctx)
		close(stopped)
	}()
	t.Cleanup(func() {
		cancel()
		<-stopped
	})
	return cancel
}

func TestLoopRunsPostedCallbacksInOrder(t *testing.T) {
	l := NewLoop()
	runLoop(t, l)

	got := make(chan int, 3)
	for i := 0; i < 3; i++ {
		i := i
		require.True(t, l.Post(func() { got <- i }))
	}
	for want := 0; want < 3; want++ {
		select {
		case v := <-got:
			assert.Equal(t, want, v)
		case <-time.After(time.Second):
			t.Fatal("posted callback did not run")
		}
	}
}

func TestLoopDeliversFramesWithSharedReading(t *testing.T) {
	l := NewLoop()
	runLoop(t, l)

	readings := make(chan time.Duration, 2)
	l.Post(func() {
		l.RequestFrame(func(now time.Duration) { readings <- now })
		l.RequestFrame(func(now time.Duration) { readings <- now })
	})

	var a, b time.Duration
	for i, dst := range []*time.Duration{&a, &b} {
		select {
		case *dst = <-readings:
		case <-time.After(time.Second):
			t.Fatalf("frame %d not delivered", i)
		}
	}
	assert.Equal(t, a, b)
	assert.Greater(t, a, time.Duration(0))
}

func TestLoopPostAfterStopReturnsFalse(t *testing.T) {
	l := NewLoop()
	cancel := runLoop(t, l)
	cancel()
	<-l.done

	assert.False(t, l.Post(func() {}))
}

func TestLoopDrivesScheduler(t *testing.T) {
	l := NewLoop()
	l.FrameInterval = 2 * time.Millisecond
	runLoop(t, l)

	const interval = 20 * time.Millisecond
	var ticks atomic.Int32
	tok := schedule.NewToken()
	done := make(chan struct{})

	l.Post(func() {
		origin := l.Now()
		schedule.Start(l, interval, origin, tok, func(now time.Duration) {
			if ticks.Add(1) == 3 {
				tok.Cancel()
				close(done)
			}
		})
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("only %d ticks delivered", ticks.Load())
	}
	time.Sleep(3 * interval)
	assert.Equal(t, int32(3), ticks.Load(), "ticks after cancellation")
}
