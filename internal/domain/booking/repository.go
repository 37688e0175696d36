package booking

import (
	"context"
	"time"

	"github.com/servihub/marketplace-api/internal/models"
)

type Repository interface {
	// -------- Identity --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Catalog --------
	GetActiveService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	// -------- Booking (create / conflict) --------
	// CreateBooking runs the locked conflict check and the insert in one
	// transaction; overlap with a blocking booking fails with the
	// time_conflict business error.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	HasConflict(
		ctx context.Context,
		vendorID uint,
		start time.Time,
		durationMins int,
		excludeBookingID *uint,
	) (bool, error)

	// -------- Booking (state change) --------
	GetBookingByID(
		ctx context.Context,
		bookingID uint,
	) (*models.Booking, error)

	// ResolveBooking conditionally moves a pending booking owned by
	// vendorID to status. Returns the number of rows transitioned.
	ResolveBooking(
		ctx context.Context,
		bookingID uint,
		vendorID uint,
		status Status,
	) (int64, error)

	// -------- Availability --------
	ListBlockedSlots(
		ctx context.Context,
		vendorID uint,
		rangeStart time.Time,
		rangeEnd time.Time,
	) ([]BlockedSlot, error)
}
