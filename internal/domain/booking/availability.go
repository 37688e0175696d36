package booking

import "time"

// BlockedSlot is one occupied window of vendor time.
type BlockedSlot struct {
	ScheduledAt  time.Time `json:"scheduled_at"`
	DurationMins int       `json:"duration_mins"`
}

func (s BlockedSlot) End() time.Time {
	return s.ScheduledAt.Add(time.Duration(s.DurationMins) * time.Minute)
}

// Overlaps is the canonical half-open interval test: [s1, s1+d1) and
// [s2, s2+d2) overlap iff s1 < s2+d2 && s2 < s1+d1. It is symmetric, so
// back-to-back bookings (end of one == start of the next) never conflict.
func Overlaps(s1 time.Time, d1 int, s2 time.Time, d2 int) bool {
	e1 := s1.Add(time.Duration(d1) * time.Minute)
	e2 := s2.Add(time.Duration(d2) * time.Minute)
	return s1.Before(e2) && s2.Before(e1)
}
