package booking

import (
	"testing"
	"time"
)

func ts(hour, min int) time.Time {
	return time.Date(2025, 12, 1, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		s1   time.Time
		d1   int
		s2   time.Time
		d2   int
		want bool
	}{
		{"identical windows", ts(10, 0), 30, ts(10, 0), 30, true},
		{"second starts inside first", ts(10, 0), 30, ts(10, 15), 30, true},
		{"first starts inside second", ts(10, 15), 30, ts(10, 0), 30, true},
		{"long booking fully contains later short one", ts(9, 0), 240, ts(10, 0), 30, true},
		{"short one inside earlier long one", ts(10, 0), 30, ts(9, 0), 240, true},
		{"back to back, first then second", ts(10, 0), 30, ts(10, 30), 30, false},
		{"back to back, second then first", ts(10, 30), 30, ts(10, 0), 30, false},
		{"clearly disjoint", ts(8, 0), 30, ts(12, 0), 60, false},
		{"one minute overlap", ts(10, 0), 31, ts(10, 30), 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.s1, tt.d1, tt.s2, tt.d2); got != tt.want {
				t.Errorf("Overlaps(%v,%d, %v,%d) = %v, want %v",
					tt.s1, tt.d1, tt.s2, tt.d2, got, tt.want)
			}
			// The test is symmetric; argument order must not matter.
			if got := Overlaps(tt.s2, tt.d2, tt.s1, tt.d1); got != tt.want {
				t.Errorf("Overlaps symmetric call = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlockedSlotEnd(t *testing.T) {
	slot := BlockedSlot{ScheduledAt: ts(10, 0), DurationMins: 45}
	if got, want := slot.End(), ts(10, 45); !got.Equal(want) {
		t.Errorf("End() = %v, want %v", got, want)
	}
}
