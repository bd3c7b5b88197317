// Package schedule computes due dates for recurring tasks and classifies
// completion events as late or backdated.
package schedule

import (
	"fmt"
	"time"
)

// BumpDue returns the next due date after an event at base: base plus the
// recurrence interval in days. Frequencies below one day are floored to one
// so a zero or negative configured frequency still moves the due date
// forward; callers are not required to validate the value first.
func BumpDue(base time.Time, frequencyDays int) time.Time {
	if frequencyDays < 1 {
		frequencyDays = 1
	}
	return base.AddDate(0, 0, frequencyDays)
}

// InitialDue returns the first due date for a task created at creation: one
// full interval out, never due immediately.
func InitialDue(creation time.Time, frequencyDays int) time.Time {
	return BumpDue(creation, frequencyDays)
}

// WasLate reports whether an event at eventTime missed the due date.
// The comparison is calendar-date only: finishing at 23:59 on the due date
// is on time, 00:01 the next day is late.
func WasLate(eventTime time.Time, due *time.Time) bool {
	if due == nil {
		return false
	}
	return startOfDay(eventTime).After(startOfDay(*due))
}

// Classify derives the two flags stored on a completion event. wasLate
// follows WasLate against the task's due date before the event; backdated
// records whether the caller supplied an explicit historical timestamp
// rather than "now". The two are independent: a backdated event can be on
// time, and an event logged "now" can be late.
func Classify(eventTime time.Time, previousDue *time.Time, explicitTime bool) (wasLate, backdated bool) {
	return WasLate(eventTime, previousDue), explicitTime
}

// HumanizeDue renders a due date relative to now for list views:
// "Today", "Tomorrow", "in 3d", "Overdue by 2d", or an em dash when the
// task has no due date.
func HumanizeDue(due *time.Time, now time.Time) string {
	if due == nil {
		return "—"
	}
	days := int(startOfDay(*due).Sub(startOfDay(now)).Hours() / 24)
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days > 1:
		return fmt.Sprintf("in %dd", days)
	default:
		return fmt.Sprintf("Overdue by %dd", -days)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
