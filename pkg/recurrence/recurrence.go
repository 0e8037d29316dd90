// Package recurrence evaluates RecurrenceSpecs against calendar days.
// All functions are pure: the reference time is always an explicit argument.
package recurrence

import (
	"time"

	"github.com/limbo/cadence/pkg/entity"
)

// How far NextFire searches for a matching day before giving up.
const searchHorizonDays = 2 * 366

// IsDue reports whether an entity with the given spec is active on the
// calendar day of ref. Once-specs are never due through recurrence: one-shot
// alarms are scheduled explicitly at creation. An unknown kind fails open to
// due, matching the observed behavior of the original schedule strings.
func IsDue(spec entity.RecurrenceSpec, ref time.Time, createdAt time.Time) bool {
	switch spec.Kind {
	case entity.RecurrenceOnce:
		return false
	case entity.RecurrenceAllDays:
		return insideWindow(spec, ref)
	case entity.RecurrenceWeekdays:
		return isoWeekday(ref) <= 5 && insideWindow(spec, ref)
	case entity.RecurrenceFixedDays:
		// Empty set without a window means always due. Kept on purpose:
		// clients create "every day" habits by leaving the set empty.
		if len(spec.Days) == 0 && spec.From == nil && spec.To == nil {
			return true
		}
		if !insideWindow(spec, ref) {
			return false
		}
		wd := isoWeekday(ref)
		for _, d := range spec.Days {
			if d == wd {
				return true
			}
		}
		return false
	case entity.RecurrenceEveryNDays:
		if spec.EveryN <= 0 {
			return true
		}
		anchor := spec.Anchor
		if anchor == nil {
			a := createdAt
			anchor = &a
		}
		diff := daysBetween(*anchor, ref)
		return diff >= 0 && diff%spec.EveryN == 0 && insideWindow(spec, ref)
	}
	return true
}

// NextFire computes the first instant at or after now that falls on a due day
// at the given "HH:MM" wall-clock time in loc. Returns nil for once-specs and
// when no day inside the search horizon qualifies.
func NextFire(spec entity.RecurrenceSpec, timeOfDay string, now time.Time, createdAt time.Time, loc *time.Location) *time.Time {
	if spec.Kind == entity.RecurrenceOnce {
		return nil
	}
	hour, minute, ok := ParseTimeOfDay(timeOfDay)
	if !ok {
		return nil
	}
	day := now.In(loc)
	for i := 0; i < searchHorizonDays; i++ {
		candidate := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
		if !candidate.Before(now) && IsDue(spec, candidate, createdAt) {
			return &candidate
		}
		day = day.AddDate(0, 0, 1)
	}
	return nil
}

// ParseTimeOfDay parses "HH:MM". Reports false on anything else.
func ParseTimeOfDay(s string) (hour, minute int, ok bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, false
	}
	return t.Hour(), t.Minute(), true
}

// Day returns the calendar day of t in loc as "YYYY-MM-DD". This is the
// canonical form of the per-day idempotency key.
func Day(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

func insideWindow(spec entity.RecurrenceSpec, ref time.Time) bool {
	day := truncateToDay(ref)
	if spec.From != nil && day.Before(truncateToDay(*spec.From)) {
		return false
	}
	if spec.To != nil && day.After(truncateToDay(*spec.To)) {
		return false
	}
	return true
}

func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func daysBetween(from, to time.Time) int {
	a := truncateToDay(from)
	b := truncateToDay(to)
	return int(b.Sub(a).Hours() / 24)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
