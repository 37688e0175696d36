package booking

import (
	"context"
	"time"

	"github.com/servihub/marketplace-api/internal/audit"
	domain "github.com/servihub/marketplace-api/internal/domain/booking"
	"github.com/servihub/marketplace-api/internal/httperr"
	"github.com/servihub/marketplace-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID      uint
	ServiceID   uint
	ScheduledAt time.Time
	Notes       string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	if in.ServiceID == 0 || in.ScheduledAt.IsZero() {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	user, err := uc.repo.GetUserByID(ctx, in.UserID)
	if err != nil {
		return nil, httperr.ErrBusiness("user_not_found")
	}

	if user.Role != models.RoleUser && user.Role != models.RoleVendor {
		return nil, httperr.ErrBusiness("role_not_allowed")
	}

	svc, err := uc.repo.GetActiveService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	// Vendors cannot book their own service.
	if svc.VendorID == user.ID {
		return nil, httperr.ErrBusiness("self_booking")
	}

	// Vendor id, price and duration are snapshots of the service terms
	// at booking time.
	b := &models.Booking{
		ServiceID:    svc.ID,
		UserID:       user.ID,
		VendorID:     svc.VendorID,
		ScheduledAt:  in.ScheduledAt,
		DurationMins: svc.DurationMins,
		Price:        svc.Price,
		Status:       string(domain.InitialStatus()),
		Notes:        in.Notes,
	}

	// The repository re-checks for overlap under a row lock inside the
	// insert transaction; time_conflict comes back from there.
	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
