package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	afterCh chan time.Time
	tickCh  chan time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		afterCh: make(chan time.Time),
		tickCh:  make(chan time.Time),
	}
}

func (f *fakeClock) After(d time.Duration) <-chan time.Time {
	return f.afterCh
}

func (f *fakeClock) Tick(d time.Duration) (<-chan time.Time, func()) {
	return f.tickCh, func() {}
}

func waitForRuns(t *testing.T, runs *int32, want int32) {
	t.Helper()
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(runs) == want
	}, time.Second, time.Millisecond)
}

func TestSchedulerRunsAfterStartupDelayAndOnTicks(t *testing.T) {
	var runs int32
	job := func(ctx context.Context) {
		atomic.AddInt32(&runs, 1)
	}

	clock := newFakeClock()
	s := NewScheduler(job, time.Hour, 30*time.Second).WithClock(clock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Start(ctx)

	// Nothing runs before the startup delay fires.
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&runs))

	clock.afterCh <- time.Now()
	waitForRuns(t, &runs, 1)

	clock.tickCh <- time.Now()
	waitForRuns(t, &runs, 2)

	clock.tickCh <- time.Now()
	waitForRuns(t, &runs, 3)
}

func TestSchedulerSkipsTickWhileRunning(t *testing.T) {
	var runs int32
	gate := make(chan struct{})
	job := func(ctx context.Context) {
		atomic.AddInt32(&runs, 1)
		<-gate
	}

	clock := newFakeClock()
	s := NewScheduler(job, time.Hour, time.Second).WithClock(clock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Start(ctx)

	clock.afterCh <- time.Now()
	waitForRuns(t, &runs, 1)

	// Ticks arriving while the first run is still in flight are
	// dropped, not queued.
	clock.tickCh <- time.Now()
	clock.tickCh <- time.Now()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))

	close(gate)

	// After the run finishes, the next tick fires normally.
	assert.Eventually(t, func() bool {
		select {
		case clock.tickCh <- time.Now():
		default:
		}
		return atomic.LoadInt32(&runs) >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	var runs int32
	job := func(ctx context.Context) {
		atomic.AddInt32(&runs, 1)
	}

	clock := newFakeClock()
	s := NewScheduler(job, time.Hour, time.Second).WithClock(clock)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on context cancellation")
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&runs))
}
