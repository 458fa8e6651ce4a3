// Package timecalc resolves the export date range.
package timecalc

import (
	"fmt"
	"time"
)

// DateLayout is the wire format Harvest expects for date parameters.
const DateLayout = "2006-01-02"

// Range is an inclusive pair of calendar dates, formatted as YYYY-MM-DD.
type Range struct {
	From string
	To   string
}

// mondayIndex returns the Monday-based weekday index (Monday = 0).
func mondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DefaultRange returns the Monday-through-Sunday week used when no
// explicit dates are given. From Friday onwards the current week is
// already worth reporting, so Fri/Sat/Sun select the running week;
// Monday through Thursday select the previous one.
func DefaultRange(now time.Time) (time.Time, time.Time) {
	wd := mondayIndex(now)
	monday := StartOfDay(now).AddDate(0, 0, -wd)
	if wd < 4 {
		monday = monday.AddDate(0, 0, -7)
	}
	return monday, monday.AddDate(0, 0, 6)
}

// LastMonthRange returns the first and last day of the previous
// calendar month.
func LastMonthRange(now time.Time) (time.Time, time.Time) {
	firstOfThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastOfPrev := firstOfThis.AddDate(0, 0, -1)
	firstOfPrev := time.Date(lastOfPrev.Year(), lastOfPrev.Month(), 1, 0, 0, 0, 0, now.Location())
	return firstOfPrev, lastOfPrev
}

func validate(name, value string) error {
	if _, err := time.Parse(DateLayout, value); err != nil {
		return fmt.Errorf("invalid %s date %q: expected YYYY-MM-DD", name, value)
	}
	return nil
}

// ResolveRange picks the export range. Priority: explicit flag dates,
// then environment dates, then DefaultRange. A single-sided pair at
// either level is a configuration error; the old behavior of silently
// discarding the given bound is not kept.
func ResolveRange(flagFrom, flagTo, envFrom, envTo string, now time.Time) (Range, error) {
	switch {
	case flagFrom != "" && flagTo != "":
		if err := validate("--from-date", flagFrom); err != nil {
			return Range{}, err
		}
		if err := validate("--to-date", flagTo); err != nil {
			return Range{}, err
		}
		return Range{From: flagFrom, To: flagTo}, nil
	case flagFrom != "" || flagTo != "":
		return Range{}, fmt.Errorf("--from-date and --to-date must be given together")
	case envFrom != "" && envTo != "":
		if err := validate("FROM_DATE", envFrom); err != nil {
			return Range{}, err
		}
		if err := validate("TO_DATE", envTo); err != nil {
			return Range{}, err
		}
		return Range{From: envFrom, To: envTo}, nil
	case envFrom != "" || envTo != "":
		return Range{}, fmt.Errorf("FROM_DATE and TO_DATE must be set together")
	}

	from, to := DefaultRange(now)
	return Range{From: from.Format(DateLayout), To: to.Format(DateLayout)}, nil
}
