package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/servihub/marketplace-api/internal/audit"
	"github.com/servihub/marketplace-api/internal/config"
	"github.com/servihub/marketplace-api/internal/httperr"
	"github.com/servihub/marketplace-api/internal/httpresp"
	"github.com/servihub/marketplace-api/internal/middleware"
	"github.com/servihub/marketplace-api/internal/models"
)

type ReviewHandler struct {
	db    *gorm.DB
	cfg   *config.Config
	audit *audit.Dispatcher
}

func NewReviewHandler(db *gorm.DB, cfg *config.Config, auditDispatcher *audit.Dispatcher) *ReviewHandler {
	return &ReviewHandler{db: db, cfg: cfg, audit: auditDispatcher}
}

// --------- Requests ---------

type CreateReviewRequest struct {
	VendorID  uint   `json:"vendor_id" binding:"required"`
	ServiceID *uint  `json:"service_id"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Text      string `json:"text"`
}

// --------- Handlers ---------

func (h *ReviewHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "vendor_id and a rating of 1-5 are required.")
		return
	}

	var vendor models.User
	if err := h.db.
		Where("id = ? AND role = ?", req.VendorID, models.RoleVendor).
		First(&vendor).Error; err != nil {

		httperr.NotFound(c, "vendor_not_found", "Vendor not found.")
		return
	}

	review := models.Review{
		UserID:    userID,
		VendorID:  req.VendorID,
		ServiceID: req.ServiceID,
		Rating:    req.Rating,
		Text:      req.Text,
	}

	if err := h.db.Create(&review).Error; err != nil {
		httperr.Internal(c, "failed_to_create_review", "Internal Server Error")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "review_created",
		Entity:   "review",
		EntityID: &review.ID,
	})

	httpresp.Created(c, gin.H{"message": "Review added", "review": review})
}

func (h *ReviewHandler) ListForVendor(c *gin.Context) {
	vendorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_vendor_id", "Invalid vendor id.")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.QueryTimeout)
	defer cancel()

	var reviews []models.Review
	if err := h.db.WithContext(ctx).
		Preload("User").
		Where("vendor_id = ?", uint(vendorID)).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {

		h.writeQueryError(c, err)
		return
	}

	var stats reviewStats
	if err := h.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS total_reviews").
		Where("vendor_id = ?", uint(vendorID)).
		Scan(&stats).Error; err != nil {

		h.writeQueryError(c, err)
		return
	}

	var avgRating *float64
	if stats.TotalReviews > 0 {
		avgRating = &stats.AvgRating
	}

	httpresp.OK(c, gin.H{
		"data": gin.H{
			"reviews":    reviews,
			"avg_rating": avgRating,
			"count":      stats.TotalReviews,
		},
	})
}

func (h *ReviewHandler) writeQueryError(c *gin.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		httperr.Timeout(c, "query_timeout", "Query timed out.")
		return
	}
	log.Println("review query error:", err)
	httperr.Internal(c, "failed_to_load_reviews", "Internal Server Error")
}
