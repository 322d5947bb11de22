package invoice

import (
	"fmt"
	"time"
)

const msPerDay = 24 * 60 * 60 * 1000

// AddFrequency advances a date by one interval of the given frequency:
// +1 day, +7 days, +14 days or +1 calendar month. Month arithmetic uses
// Go's native AddDate overflow, so Jan 31 + monthly lands on Mar 3 in a
// non-leap year rather than being clamped to the end of February.
//
// An unrecognized frequency is a programming error in the caller and
// returns ErrInvalidFrequency; this is the only error path in the
// computation core.
func AddFrequency(t time.Time, f Frequency) (time.Time, error) {
	switch f {
	case FrequencyDaily:
		return t.AddDate(0, 0, 1), nil
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7), nil
	case FrequencyBiweekly:
		return t.AddDate(0, 0, 14), nil
	case FrequencyMonthly:
		return t.AddDate(0, 1, 0), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFrequency, f)
}

// DaysRemaining counts whole days from ref to next, rounding the
// millisecond difference toward positive infinity: any partial day in
// the future counts as a full day remaining. Positive means future,
// zero the same instant, negative past.
func DaysRemaining(next, ref time.Time) int {
	ms := next.Sub(ref).Milliseconds()
	if ms > 0 {
		return int((ms + msPerDay - 1) / msPerDay)
	}

	// Truncation toward zero is already a ceiling for negative values.
	return int(ms / msPerDay)
}

// daysElapsed counts whole days from from to to, rounding toward
// negative infinity. Used for "how long since" measurements (invoice
// age, plan age) where a partial day does not count yet.
func daysElapsed(from, to time.Time) int {
	ms := to.Sub(from).Milliseconds()
	if ms >= 0 {
		return int(ms / msPerDay)
	}

	return int((ms - msPerDay + 1) / msPerDay)
}
