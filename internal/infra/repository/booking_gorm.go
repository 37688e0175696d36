package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/servihub/marketplace-api/internal/domain/booking"
	"github.com/servihub/marketplace-api/internal/httperr"
	"github.com/servihub/marketplace-api/internal/models"
)

// Symmetric half-open overlap against [start, end): an existing booking
// blocks iff it starts before the window ends and ends after it starts.
const overlapPredicate = "scheduled_at < ? AND scheduled_at + (duration_mins * interval '1 minute') > ?"

var blockingStatuses = []string{
	string(domain.StatusPending),
	string(domain.StatusAccepted),
}

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Identity
// --------------------------------------------------

func (r *BookingGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *BookingGormRepository) GetActiveService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = true", serviceID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	end := b.ScheduledAt.Add(time.Duration(b.DurationMins) * time.Minute)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("vendor_id = ? AND status IN ?", b.VendorID, blockingStatuses).
			Where(overlapPredicate, end, b.ScheduledAt).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(b).Error
	})
}

func (r *BookingGormRepository) HasConflict(
	ctx context.Context,
	vendorID uint,
	start time.Time,
	durationMins int,
	excludeBookingID *uint,
) (bool, error) {

	end := start.Add(time.Duration(durationMins) * time.Minute)

	q := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("vendor_id = ? AND status IN ?", vendorID, blockingStatuses).
		Where(overlapPredicate, end, start)

	if excludeBookingID != nil {
		q = q.Where("id <> ?", *excludeBookingID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingByID(
	ctx context.Context,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, bookingID).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) ResolveBooking(
	ctx context.Context,
	bookingID uint,
	vendorID uint,
	status domain.Status,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"id = ? AND vendor_id = ? AND status = ?",
			bookingID, vendorID, string(domain.StatusPending),
		).
		Update("status", string(status))

	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListBlockedSlots(
	ctx context.Context,
	vendorID uint,
	rangeStart time.Time,
	rangeEnd time.Time,
) ([]domain.BlockedSlot, error) {

	slots := []domain.BlockedSlot{}

	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("scheduled_at", "duration_mins").
		Where("vendor_id = ? AND status IN ?", vendorID, blockingStatuses).
		Where(overlapPredicate, rangeEnd, rangeStart).
		Order("scheduled_at ASC").
		Scan(&slots).Error

	if err != nil {
		return nil, err
	}

	return slots, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
