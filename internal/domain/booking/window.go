package booking

import "time"

// CancelWindow is how far ahead of the schedule start a patient may still
// cancel or reschedule.
const CancelWindow = 24 * time.Hour

// WithinCancelWindow reports whether the schedule can still be changed.
// Exactly 24h before the start is still allowed.
func WithinCancelWindow(scheduleStart, now time.Time) bool {
	return scheduleStart.Sub(now) >= CancelWindow
}
