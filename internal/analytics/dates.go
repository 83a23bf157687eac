package analytics

import "time"

// Bucketing is defined against a caller-supplied timezone so the 7-day
// trend and the hour-of-day histogram are deterministic under test.

func sameCalendarDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

func startOfMonth(now time.Time, loc *time.Location) time.Time {
	y, m, _ := now.In(loc).Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, loc)
}

func hourOfDay(t time.Time, loc *time.Location) int {
	return t.In(loc).Hour()
}

func dayLabel(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("Jan 2")
}
