package db

import (
	"strings"
	"testing"
)

func TestBookingOverlapConstraintDDL(t *testing.T) {
	// scheduled_at migrates as timestamptz; tsrange has no timestamptz
	// overload, so the constraint must build tstzrange ranges.
	if !strings.Contains(bookingsNoOverlapDDL, "tstzrange(") {
		t.Error("overlap constraint must use tstzrange over the timestamptz column")
	}

	if !strings.Contains(bookingsNoOverlapDDL, "vendor_id WITH =") {
		t.Error("overlap constraint must be scoped per vendor")
	}

	for _, status := range []string{"'pending'", "'accepted'"} {
		if !strings.Contains(bookingsNoOverlapDDL, status) {
			t.Errorf("overlap constraint must cover blocking status %s", status)
		}
	}
	if strings.Contains(bookingsNoOverlapDDL, "'rejected'") {
		t.Error("rejected bookings must not occupy vendor time")
	}
}
