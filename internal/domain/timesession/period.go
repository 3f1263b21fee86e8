package timesession

import "time"

const DateLayout = "2006-01-02"

// WorkDateOf truncates t to midnight of its calendar day in loc.
func WorkDateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// NormalizeRange makes [start, end] cover whole calendar days: start moves
// to 00:00:00.000 and end to 23:59:59.999 of their days.
func NormalizeRange(start, end time.Time) (time.Time, time.Time) {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	e := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(999*time.Millisecond), end.Location())
	return s, e
}

// MonthRange returns the first instant and the last millisecond of a
// calendar month. The last day is day 0 of the following month.
func MonthRange(year, month int, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, loc)
	_, end := NormalizeRange(lastDay, lastDay)
	return start, end
}

// SameDay compares calendar dates, ignoring time of day and zone offsets.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
