package booking

import (
	"context"

	"github.com/servihub/marketplace-api/internal/audit"
	domain "github.com/servihub/marketplace-api/internal/domain/booking"
	"github.com/servihub/marketplace-api/internal/httperr"
	"github.com/servihub/marketplace-api/internal/models"
)

type RespondToBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRespondToBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RespondToBooking {
	return &RespondToBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *RespondToBooking) Execute(
	ctx context.Context,
	vendorID uint,
	bookingID uint,
	rawAction string,
) (*models.Booking, error) {

	vendor, err := uc.repo.GetUserByID(ctx, vendorID)
	if err != nil {
		return nil, httperr.ErrBusiness("user_not_found")
	}
	if !vendor.IsVendor() {
		return nil, httperr.ErrBusiness("only_vendors")
	}

	action, err := domain.ParseAction(rawAction)
	if err != nil {
		return nil, err
	}

	next, err := domain.Resolve(domain.StatusPending, action)
	if err != nil {
		return nil, err
	}

	// Conditional transition: the UPDATE matches only a pending booking
	// owned by this vendor, so concurrent accept/reject cannot both win.
	affected, err := uc.repo.ResolveBooking(ctx, bookingID, vendorID, next)
	if err != nil {
		return nil, err
	}

	if affected == 0 {
		// Nothing matched: missing booking, wrong owner, or already
		// resolved. Re-read once to tell them apart.
		b, err := uc.repo.GetBookingByID(ctx, bookingID)
		if err != nil {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		if b.VendorID != vendorID {
			return nil, httperr.ErrBusiness("not_booking_owner")
		}
		return nil, httperr.ErrBusiness("already_resolved")
	}

	b, err := uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &vendorID,
		Action:   "booking_" + string(next),
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
