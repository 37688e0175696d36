package booking

import (
	"context"
	"testing"

	domain "github.com/servihub/marketplace-api/internal/domain/booking"
	"github.com/servihub/marketplace-api/internal/models"
)

func TestListBlockedSlotsRangeAndOrder(t *testing.T) {
	f := newFixture()

	seed := []struct {
		hour, min, duration int
		status              domain.Status
	}{
		{7, 0, 60, domain.StatusAccepted},  // ends exactly at range start: out
		{7, 30, 60, domain.StatusPending},  // straddles range start: in
		{12, 0, 30, domain.StatusPending},  // inside
		{9, 0, 30, domain.StatusAccepted},  // inside, earliest within range
		{13, 0, 45, domain.StatusRejected}, // non-blocking: out
		{17, 45, 60, domain.StatusPending}, // straddles range end: in
		{18, 0, 30, domain.StatusAccepted}, // starts exactly at range end: out
		{19, 0, 30, domain.StatusPending},  // past the range: out
	}
	for _, s := range seed {
		f.repo.addBooking(models.Booking{
			ServiceID:    f.service.ID,
			UserID:       f.user.ID,
			VendorID:     f.vendor.ID,
			ScheduledAt:  at(s.hour, s.min),
			DurationMins: s.duration,
			Status:       string(s.status),
		})
	}

	slots, err := f.repo.ListBlockedSlots(context.Background(), f.vendor.ID, at(8, 0), at(18, 0))
	if err != nil {
		t.Fatalf("ListBlockedSlots() error = %v", err)
	}

	want := []domain.BlockedSlot{
		{ScheduledAt: at(7, 30), DurationMins: 60},
		{ScheduledAt: at(9, 0), DurationMins: 30},
		{ScheduledAt: at(12, 0), DurationMins: 30},
		{ScheduledAt: at(17, 45), DurationMins: 60},
	}

	if len(slots) != len(want) {
		t.Fatalf("got %d slots, want %d: %+v", len(slots), len(want), slots)
	}
	for i := range want {
		if !slots[i].ScheduledAt.Equal(want[i].ScheduledAt) || slots[i].DurationMins != want[i].DurationMins {
			t.Errorf("slot[%d] = %+v, want %+v", i, slots[i], want[i])
		}
	}
}

func TestListBlockedSlotsOtherVendorInvisible(t *testing.T) {
	f := newFixture()
	other := f.repo.addUser(models.User{
		Username:     "dave-plumbing",
		Role:         models.RoleVendor,
		ServiceTypes: []string{"plumbing"},
	})

	f.repo.addBooking(models.Booking{
		ServiceID:    f.service.ID,
		UserID:       f.user.ID,
		VendorID:     other.ID,
		ScheduledAt:  at(10, 0),
		DurationMins: 30,
		Status:       string(domain.StatusAccepted),
	})

	slots, err := f.repo.ListBlockedSlots(context.Background(), f.vendor.ID, at(8, 0), at(18, 0))
	if err != nil {
		t.Fatalf("ListBlockedSlots() error = %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("got %d slots for a vendor with no bookings, want 0", len(slots))
	}
}
