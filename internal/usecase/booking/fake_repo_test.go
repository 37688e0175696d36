package booking

import (
	"context"
	"errors"
	"sort"
	"time"

	domain "github.com/servihub/marketplace-api/internal/domain/booking"
	"github.com/servihub/marketplace-api/internal/httperr"
	"github.com/servihub/marketplace-api/internal/models"
)

var errNotFound = errors.New("record not found")

// fakeRepo is an in-memory domain.Repository for usecase tests. It applies
// the same blocking/overlap rules the gorm repository expresses in SQL.
type fakeRepo struct {
	users    map[uint]*models.User
	services map[uint]*models.Service
	bookings map[uint]*models.Booking
	nextID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    map[uint]*models.User{},
		services: map[uint]*models.Service{},
		bookings: map[uint]*models.Booking{},
		nextID:   1,
	}
}

func (r *fakeRepo) addUser(u models.User) *models.User {
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = &u
	return &u
}

func (r *fakeRepo) addService(s models.Service) *models.Service {
	s.ID = r.nextID
	r.nextID++
	r.services[s.ID] = &s
	return &s
}

func (r *fakeRepo) addBooking(b models.Booking) *models.Booking {
	b.ID = r.nextID
	r.nextID++
	r.bookings[b.ID] = &b
	return &b
}

func (r *fakeRepo) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) GetActiveService(_ context.Context, serviceID uint) (*models.Service, error) {
	s, ok := r.services[serviceID]
	if !ok || !s.Active {
		return nil, errNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	conflict, err := r.HasConflict(ctx, b.VendorID, b.ScheduledAt, b.DurationMins, nil)
	if err != nil {
		return err
	}
	if conflict {
		return httperr.ErrBusiness("time_conflict")
	}

	b.ID = r.nextID
	r.nextID++
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) HasConflict(
	_ context.Context,
	vendorID uint,
	start time.Time,
	durationMins int,
	excludeBookingID *uint,
) (bool, error) {

	for _, b := range r.bookings {
		if b.VendorID != vendorID {
			continue
		}
		if excludeBookingID != nil && b.ID == *excludeBookingID {
			continue
		}
		if !domain.Status(b.Status).Blocking() {
			continue
		}
		if domain.Overlaps(b.ScheduledAt, b.DurationMins, start, durationMins) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) GetBookingByID(_ context.Context, bookingID uint) (*models.Booking, error) {
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, errNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) ResolveBooking(
	_ context.Context,
	bookingID uint,
	vendorID uint,
	status domain.Status,
) (int64, error) {

	b, ok := r.bookings[bookingID]
	if !ok || b.VendorID != vendorID || b.Status != string(domain.StatusPending) {
		return 0, nil
	}
	b.Status = string(status)
	return 1, nil
}

func (r *fakeRepo) ListBlockedSlots(
	_ context.Context,
	vendorID uint,
	rangeStart time.Time,
	rangeEnd time.Time,
) ([]domain.BlockedSlot, error) {

	rangeMins := int(rangeEnd.Sub(rangeStart) / time.Minute)

	var slots []domain.BlockedSlot
	for _, b := range r.bookings {
		if b.VendorID != vendorID || !domain.Status(b.Status).Blocking() {
			continue
		}
		if domain.Overlaps(b.ScheduledAt, b.DurationMins, rangeStart, rangeMins) {
			slots = append(slots, domain.BlockedSlot{
				ScheduledAt:  b.ScheduledAt,
				DurationMins: b.DurationMins,
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].ScheduledAt.Before(slots[j].ScheduledAt)
	})
	return slots, nil
}

var _ domain.Repository = (*fakeRepo)(nil)
