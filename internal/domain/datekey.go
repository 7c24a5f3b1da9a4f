package domain

import "time"

// DateKey formats t's calendar date in loc as YYYY-MM-DD. Every daily
// record is namespaced by this value, so two instants on the same local
// day always share a key.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// UntilNextMidnight returns the duration from t to the next midnight in
// loc. Long-lived callers re-arm their timer with a fresh call after it
// fires; AddDate is used so DST transitions land on the real midnight.
func UntilNextMidnight(t time.Time, loc *time.Location) time.Duration {
	local := t.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	return next.Sub(local)
}

// DaysBetween returns the whole calendar days from a to b in loc,
// measured at midnight granularity. Negative when b precedes a.
func DaysBetween(a, b time.Time, loc *time.Location) int {
	am := midnight(a, loc)
	bm := midnight(b, loc)
	return int(bm.Sub(am).Hours() / 24)
}

func midnight(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// ParseLocation loads a timezone name, falling back to time.Local for
// empty or unknown names.
func ParseLocation(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}
