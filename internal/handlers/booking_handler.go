package handlers

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/servihub/marketplace-api/internal/audit"
	"github.com/servihub/marketplace-api/internal/cache"
	"github.com/servihub/marketplace-api/internal/dto"
	"github.com/servihub/marketplace-api/internal/httperr"
	"github.com/servihub/marketplace-api/internal/httpresp"
	"github.com/servihub/marketplace-api/internal/middleware"
	"github.com/servihub/marketplace-api/internal/models"
	ucBooking "github.com/servihub/marketplace-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db        *gorm.DB
	cache     *cache.Cache
	audit     *audit.Dispatcher
	createUC  *ucBooking.CreateBooking
	respondUC *ucBooking.RespondToBooking
}

func NewBookingHandler(
	db *gorm.DB,
	cacheClient *cache.Cache,
	auditDispatcher *audit.Dispatcher,
	createUC *ucBooking.CreateBooking,
	respondUC *ucBooking.RespondToBooking,
) *BookingHandler {
	return &BookingHandler{
		db:        db,
		cache:     cacheClient,
		audit:     auditDispatcher,
		createUC:  createUC,
		respondUC: respondUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceID   uint      `json:"service_id" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Notes       string    `json:"notes"`
}

type RespondBookingRequest struct {
	Action string `json:"action" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "service_id and scheduled_at are required.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		UserID:      userID,
		ServiceID:   req.ServiceID,
		ScheduledAt: req.ScheduledAt,
		Notes:       req.Notes,
	})
	if err != nil {
		h.mapCreateError(c, userID, req, err)
		return
	}

	// Blocked-slot views for this vendor are stale now.
	h.cache.Del(c.Request.Context(), availabilityCacheKey(b.VendorID))

	httpresp.Created(c, gin.H{"message": "Booking created", "booking": b})
}

func (h *BookingHandler) mapCreateError(
	c *gin.Context,
	userID uint,
	req CreateBookingRequest,
	err error,
) {
	switch {
	case httperr.IsBusiness(err, "missing_fields"):
		httperr.BadRequest(c, "missing_fields", "service_id and scheduled_at are required.")
	case httperr.IsBusiness(err, "user_not_found"):
		httperr.NotFound(c, "user_not_found", "User not found.")
	case httperr.IsBusiness(err, "role_not_allowed"):
		httperr.Forbidden(c, "role_not_allowed", "Not allowed to create bookings.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.NotFound(c, "service_not_found", "Service not found or inactive.")
	case httperr.IsBusiness(err, "self_booking"):
		httperr.Forbidden(c, "self_booking", "Vendors cannot book their own service.")
	case httperr.IsBusiness(err, "time_conflict") || httperr.IsExclusionConflict(err):
		h.audit.Dispatch(audit.Event{
			UserID: &userID,
			Action: "booking_conflict",
			Entity: "booking",
			Metadata: map[string]any{
				"service_id":   req.ServiceID,
				"scheduled_at": req.ScheduledAt,
			},
		})
		httperr.Conflict(c, "time_conflict", "The requested slot overlaps an existing booking.")
	default:
		log.Println("create booking error:", err)
		httperr.Internal(c, "failed_to_create_booking", "Internal Server Error")
	}
}

// ======================================================
// LISTS
// ======================================================

func (h *BookingHandler) MyBookings(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var bookings []models.Booking
	if err := h.db.
		Preload("Service").
		Preload("Vendor").
		Where("user_id = ?", userID).
		Order("scheduled_at DESC").
		Find(&bookings).Error; err != nil {

		httperr.Internal(c, "failed_to_list_bookings", "Internal Server Error")
		return
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:           b.ID,
			ServiceID:    b.ServiceID,
			ServiceTitle: b.Service.Title,
			ServiceType:  b.Service.ServiceType,
			VendorID:     b.VendorID,
			VendorName:   b.Vendor.BusinessName,
			UserID:       b.UserID,
			Username:     b.Vendor.Username,
			ScheduledAt:  b.ScheduledAt,
			DurationMins: b.DurationMins,
			Status:       b.Status,
			Price:        b.Price,
			Notes:        b.Notes,
			CreatedAt:    b.CreatedAt,
		})
	}

	httpresp.List(c, out, int64(len(out)))
}

func (h *BookingHandler) VendorBookings(c *gin.Context) {
	vendorID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	if role != models.RoleVendor {
		httperr.Forbidden(c, "only_vendors", "Only vendors can view vendor bookings.")
		return
	}

	var bookings []models.Booking
	if err := h.db.
		Preload("Service").
		Preload("User").
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {

		httperr.Internal(c, "failed_to_list_bookings", "Internal Server Error")
		return
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:           b.ID,
			ServiceID:    b.ServiceID,
			ServiceTitle: b.Service.Title,
			ServiceType:  b.Service.ServiceType,
			VendorID:     b.VendorID,
			UserID:       b.UserID,
			Username:     b.User.Username,
			ScheduledAt:  b.ScheduledAt,
			DurationMins: b.DurationMins,
			Status:       b.Status,
			Price:        b.Price,
			Notes:        b.Notes,
			CreatedAt:    b.CreatedAt,
		})
	}

	httpresp.List(c, out, int64(len(out)))
}

// ======================================================
// RESPOND (accept / reject)
// ======================================================

func (h *BookingHandler) Respond(c *gin.Context) {
	vendorID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	var req RespondBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "action is required.")
		return
	}

	b, err := h.respondUC.Execute(c.Request.Context(), vendorID, uint(bookingID), req.Action)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "user_not_found"):
			httperr.NotFound(c, "user_not_found", "User not found.")
		case httperr.IsBusiness(err, "only_vendors"):
			httperr.Forbidden(c, "only_vendors", "Only vendors can respond to bookings.")
		case httperr.IsBusiness(err, "invalid_action"):
			httperr.BadRequest(c, "invalid_action", "action must be accept or reject.")
		case httperr.IsBusiness(err, "booking_not_found"):
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
		case httperr.IsBusiness(err, "not_booking_owner"):
			httperr.Forbidden(c, "not_booking_owner", "Not authorized to respond to this booking.")
		case httperr.IsBusiness(err, "already_resolved"):
			httperr.Conflict(c, "already_resolved", "Booking has already been responded to.")
		default:
			log.Println("respond booking error:", err)
			httperr.Internal(c, "failed_to_respond", "Internal Server Error")
		}
		return
	}

	// A rejection frees vendor time; either way the cached view is stale.
	h.cache.Del(c.Request.Context(), availabilityCacheKey(b.VendorID))

	httpresp.OK(c, gin.H{"message": "Booking " + b.Status, "booking": b})
}

func availabilityCacheKey(vendorID uint) string {
	return fmt.Sprintf("availability:vendor:%d", vendorID)
}
