package reminder

import (
	"time"

	"github.com/dklimov443/carminder/internal/entity"
)

// IsDue decides whether a reminder should go out for a service record.
// Pure function of the record, the owning user's settings and the clock.
//
// A record is due when all of the following hold:
//   - its type is expiry-driven (one-off types never notify),
//   - the owner has reminders enabled,
//   - no notification has been sent for it yet,
//   - its expiry date is at most the user's lookahead window away.
//
// The date comparison is a one-sided upper bound, not a window: a record
// overdue by any amount stays due until a notification actually goes out.
// Missed sweeps are caught up on the next tick instead of being dropped.
func IsDue(rec *entity.ServiceRecord, user *entity.User, now time.Time) bool {
	if !rec.Type.IsReminderType() {
		return false
	}
	if !user.ReminderEnabled {
		return false
	}
	if rec.Notified {
		return false
	}

	threshold := entity.DateOf(now).AddDays(user.ReminderDays)
	return !rec.ExpiryDate.After(threshold)
}
