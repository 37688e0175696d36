package booking

import (
	"context"
	"testing"

	"github.com/servihub/marketplace-api/internal/audit"
	domain "github.com/servihub/marketplace-api/internal/domain/booking"
	"github.com/servihub/marketplace-api/internal/httperr"
	"github.com/servihub/marketplace-api/internal/models"
)

type respondFixture struct {
	repo    *fakeRepo
	uc      *RespondToBooking
	vendor  *models.User
	booking *models.Booking
}

func newRespondFixture() *respondFixture {
	repo := newFakeRepo()

	user := repo.addUser(models.User{Username: "alice", Role: models.RoleUser})
	vendor := repo.addUser(models.User{
		Username:     "bob-salon",
		Role:         models.RoleVendor,
		ServiceTypes: []string{"salon"},
	})
	service := repo.addService(models.Service{
		VendorID:     vendor.ID,
		Title:        "Haircut",
		ServiceType:  "salon",
		DurationMins: 30,
		Active:       true,
	})
	booking := repo.addBooking(models.Booking{
		ServiceID:    service.ID,
		UserID:       user.ID,
		VendorID:     vendor.ID,
		ScheduledAt:  at(10, 0),
		DurationMins: 30,
		Status:       string(domain.StatusPending),
	})

	return &respondFixture{
		repo:    repo,
		uc:      NewRespondToBooking(repo, &audit.Dispatcher{}),
		vendor:  vendor,
		booking: booking,
	}
}

func TestRespondAccept(t *testing.T) {
	f := newRespondFixture()

	b, err := f.uc.Execute(context.Background(), f.vendor.ID, f.booking.ID, "accept")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if b.Status != string(domain.StatusAccepted) {
		t.Errorf("Status = %q, want accepted", b.Status)
	}
}

func TestRespondReject(t *testing.T) {
	f := newRespondFixture()

	b, err := f.uc.Execute(context.Background(), f.vendor.ID, f.booking.ID, "reject")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if b.Status != string(domain.StatusRejected) {
		t.Errorf("Status = %q, want rejected", b.Status)
	}
}

func TestRespondInvalidAction(t *testing.T) {
	f := newRespondFixture()

	_, err := f.uc.Execute(context.Background(), f.vendor.ID, f.booking.ID, "cancel")
	if !httperr.IsBusiness(err, "invalid_action") {
		t.Errorf("error = %v, want invalid_action", err)
	}
}

func TestRespondOnlyVendors(t *testing.T) {
	f := newRespondFixture()
	user := f.repo.addUser(models.User{Username: "carol", Role: models.RoleUser})

	_, err := f.uc.Execute(context.Background(), user.ID, f.booking.ID, "accept")
	if !httperr.IsBusiness(err, "only_vendors") {
		t.Errorf("error = %v, want only_vendors", err)
	}
}

func TestRespondNotOwner(t *testing.T) {
	f := newRespondFixture()
	other := f.repo.addUser(models.User{
		Username:     "dave-plumbing",
		Role:         models.RoleVendor,
		ServiceTypes: []string{"plumbing"},
	})

	_, err := f.uc.Execute(context.Background(), other.ID, f.booking.ID, "accept")
	if !httperr.IsBusiness(err, "not_booking_owner") {
		t.Errorf("error = %v, want not_booking_owner", err)
	}
}

func TestRespondBookingNotFound(t *testing.T) {
	f := newRespondFixture()

	_, err := f.uc.Execute(context.Background(), f.vendor.ID, 9999, "accept")
	if !httperr.IsBusiness(err, "booking_not_found") {
		t.Errorf("error = %v, want booking_not_found", err)
	}
}

func TestRespondAlreadyResolved(t *testing.T) {
	f := newRespondFixture()

	if _, err := f.uc.Execute(context.Background(), f.vendor.ID, f.booking.ID, "accept"); err != nil {
		t.Fatalf("first respond error = %v", err)
	}

	// Second response must not overwrite the resolved status.
	_, err := f.uc.Execute(context.Background(), f.vendor.ID, f.booking.ID, "reject")
	if !httperr.IsBusiness(err, "already_resolved") {
		t.Errorf("error = %v, want already_resolved", err)
	}

	b, _ := f.repo.GetBookingByID(context.Background(), f.booking.ID)
	if b.Status != string(domain.StatusAccepted) {
		t.Errorf("Status after double respond = %q, want accepted", b.Status)
	}
}
