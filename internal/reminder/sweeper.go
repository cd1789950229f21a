package reminder

import (
	"context"
	"time"

	"github.com/dklimov443/carminder/internal/entity"

	"github.com/sirupsen/logrus"
)

// RecordSource is the slice of the record store the sweep consumes.
type RecordSource interface {
	ListUnsent(ctx context.Context) ([]*entity.ServiceRecord, error)
	MarkNotified(ctx context.Context, id int64) error
}

type CarSource interface {
	GetByID(ctx context.Context, id int64) (*entity.Car, error)
}

type UserSource interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
}

// Notifier delivers a single reminder. Message composition is owned by
// the implementation; the sweep only supplies the facts.
type Notifier interface {
	Send(ctx context.Context, toEmail string, car *entity.Car, rec *entity.ServiceRecord) error
}

// SweepStats summarizes one completed sweep.
type SweepStats struct {
	Scanned int
	Sent    int
	Failed  int
	Skipped int
}

type Sweeper struct {
	records   RecordSource
	cars      CarSource
	users     UserSource
	notifier  Notifier
	sendDelay time.Duration
	now       func() time.Time
}

func NewSweeper(records RecordSource, cars CarSource, users UserSource, notifier Notifier, sendDelay time.Duration) *Sweeper {
	return &Sweeper{
		records:   records,
		cars:      cars,
		users:     users,
		notifier:  notifier,
		sendDelay: sendDelay,
		now:       time.Now,
	}
}

// Sweep runs one full scan-and-notify pass. Records are processed
// sequentially in store order; per-record failures are logged and skipped
// so one bad record or one refused send never aborts the rest. Only the
// bulk read failing ends the sweep early.
func (s *Sweeper) Sweep(ctx context.Context) (SweepStats, error) {
	var stats SweepStats

	unsent, err := s.records.ListUnsent(ctx)
	if err != nil {
		logrus.Errorf("Reminder sweep aborted, failed to list unsent records: %v", err)
		return stats, err
	}

	stats.Scanned = len(unsent)
	now := s.now()

	for _, rec := range unsent {
		select {
		case <-ctx.Done():
			logrus.Info("Reminder sweep interrupted by context cancellation")
			return stats, ctx.Err()
		default:
		}

		user, err := s.users.GetByID(ctx, rec.UserID)
		if err != nil {
			logrus.Warnf("Skipping record %d: user %d not available: %v", rec.ID, rec.UserID, err)
			stats.Skipped++
			continue
		}

		if !IsDue(rec, user, now) {
			continue
		}

		car, err := s.cars.GetByID(ctx, rec.CarID)
		if err != nil {
			logrus.Warnf("Skipping record %d: car %d not available: %v", rec.ID, rec.CarID, err)
			stats.Skipped++
			continue
		}

		// Courtesy pause toward the mail provider so a backlog of due
		// records does not burst out in one go.
		if stats.Sent+stats.Failed > 0 && s.sendDelay > 0 {
			time.Sleep(s.sendDelay)
		}

		if err := s.notifier.Send(ctx, user.NotifyEmail(), car, rec); err != nil {
			// Leave the record unsent; the next tick retries naturally.
			logrus.Errorf("Failed to send reminder for record %d to %s: %v", rec.ID, user.NotifyEmail(), err)
			stats.Failed++
			continue
		}

		if err := s.records.MarkNotified(ctx, rec.ID); err != nil {
			logrus.Errorf("Reminder sent but failed to mark record %d notified: %v", rec.ID, err)
			stats.Failed++
			continue
		}

		logrus.WithFields(logrus.Fields{
			"record_id": rec.ID,
			"type":      rec.Type,
			"expiry":    rec.ExpiryDate.String(),
			"user_id":   user.ID,
		}).Info("Reminder sent")
		stats.Sent++
	}

	logrus.WithFields(logrus.Fields{
		"scanned": stats.Scanned,
		"sent":    stats.Sent,
		"failed":  stats.Failed,
		"skipped": stats.Skipped,
	}).Info("Reminder sweep completed")

	return stats, nil
}

// Run adapts the sweeper to the scheduler's Job contract.
func (s *Sweeper) Run(ctx context.Context) {
	if _, err := s.Sweep(ctx); err != nil {
		logrus.Errorf("Reminder sweep failed: %v", err)
	}
}
