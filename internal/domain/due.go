package domain

import "time"

// IsDue reports whether a reminder configured for hour:minute should fire at
// nowLocal. The target is today's hour:minute in zone; the reminder is due
// while 0 <= now-target < window and lastSent, viewed in zone, is not on the
// same calendar day as now. Out-of-range hour/minute are clamped.
//
// Comparing elapsed time instead of wall-clock equality keeps DST days
// correct: a skipped wall time fires once the clocks have jumped past it (see
// TimeOfDay.On) and a repeated wall time only matches its first occurrence.
func IsDue(
	nowLocal time.Time,
	hour, minute int,
	lastSent *time.Time,
	zone *time.Location,
	window DueWindow,
) bool {
	if zone == nil {
		zone = time.UTC
	}

	now := nowLocal.In(zone)
	tod, _ := ClampTimeOfDay(hour, minute)
	target := tod.On(now, zone)

	elapsed := now.Sub(target)
	if elapsed < 0 || elapsed >= window.Duration() {
		return false
	}

	if lastSent == nil {
		return true
	}

	return !SameLocalDay(*lastSent, now, zone)
}

func SameLocalDay(a, b time.Time, zone *time.Location) bool {
	ay, am, ad := a.In(zone).Date()
	by, bm, bd := b.In(zone).Date()

	return ay == by && am == bm && ad == bd
}
