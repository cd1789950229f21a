package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Clock abstracts timer creation so ticks can be simulated in tests.
type Clock interface {
	After(d time.Duration) <-chan time.Time
	Tick(d time.Duration) (<-chan time.Time, func())
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

func (realClock) Tick(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Scheduler runs a job on a fixed wall-clock cadence, plus once shortly
// after startup so dependent subsystems can finish initializing first.
// There is no cron and no catch-up: ticks that fall while the process is
// down are simply skipped.
type Scheduler struct {
	job          func(ctx context.Context)
	interval     time.Duration
	startupDelay time.Duration
	clock        Clock

	// 1 while a run is in flight. A tick arriving mid-run is skipped
	// rather than queued, so long runs never stack.
	running int32
}

func NewScheduler(job func(ctx context.Context), interval, startupDelay time.Duration) *Scheduler {
	return &Scheduler{
		job:          job,
		interval:     interval,
		startupDelay: startupDelay,
		clock:        realClock{},
	}
}

// WithClock replaces the wall clock, for tests.
func (s *Scheduler) WithClock(clock Clock) *Scheduler {
	s.clock = clock
	return s
}

func (s *Scheduler) Start(ctx context.Context) {
	logrus.WithFields(logrus.Fields{
		"interval":      s.interval.String(),
		"startup_delay": s.startupDelay.String(),
	}).Info("Scheduler started")

	select {
	case <-ctx.Done():
		return
	case <-s.clock.After(s.startupDelay):
		s.runOnce(ctx)
	}

	ticks, stop := s.clock.Tick(s.interval)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Scheduler stopped")
			return
		case <-ticks:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		logrus.Warn("Previous run still in progress, skipping tick")
		return
	}

	go func() {
		defer atomic.StoreInt32(&s.running, 0)
		s.job(ctx)
	}()
}
