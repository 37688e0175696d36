package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/servihub/marketplace-api/internal/cache"
	"github.com/servihub/marketplace-api/internal/config"
	domain "github.com/servihub/marketplace-api/internal/domain/booking"
	"github.com/servihub/marketplace-api/internal/httperr"
	"github.com/servihub/marketplace-api/internal/httpresp"
	"github.com/servihub/marketplace-api/internal/middleware"
	"github.com/servihub/marketplace-api/internal/models"
)

const availabilityWindow = 7 * 24 * time.Hour

type ServiceHandler struct {
	db    *gorm.DB
	cfg   *config.Config
	cache *cache.Cache
	repo  domain.Repository
}

func NewServiceHandler(
	db *gorm.DB,
	cfg *config.Config,
	cacheClient *cache.Cache,
	repo domain.Repository,
) *ServiceHandler {
	return &ServiceHandler{
		db:    db,
		cfg:   cfg,
		cache: cacheClient,
		repo:  repo,
	}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description"`
	ServiceType  string  `json:"service_type" binding:"required"`
	Price        float64 `json:"price" binding:"omitempty,min=0"`
	DurationMins int     `json:"duration_mins" binding:"omitempty,min=1"`
}

type UpdateServiceRequest struct {
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	ServiceType  *string  `json:"service_type,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	DurationMins *int     `json:"duration_mins,omitempty"`
	Active       *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) Create(c *gin.Context) {
	vendorID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	if role != models.RoleVendor {
		httperr.Forbidden(c, "only_vendors", "Only vendors can create services.")
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "title and service_type are required.")
		return
	}

	duration := req.DurationMins
	if duration == 0 {
		duration = 30
	}

	svc := models.Service{
		VendorID:     vendorID,
		Title:        req.Title,
		Description:  req.Description,
		ServiceType:  strings.ToLower(strings.TrimSpace(req.ServiceType)),
		Price:        req.Price,
		DurationMins: duration,
		Active:       true,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Internal Server Error")
		return
	}

	httpresp.Created(c, gin.H{"message": "Service created", "service": svc})
}

func (h *ServiceHandler) MyServices(c *gin.Context) {
	vendorID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	if role != models.RoleVendor {
		httperr.Forbidden(c, "only_vendors", "Only vendors can list their services.")
		return
	}

	var services []models.Service
	if err := h.db.
		Preload("Images").
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Internal Server Error")
		return
	}

	httpresp.OK(c, gin.H{"data": services})
}

func (h *ServiceHandler) Update(c *gin.Context) {
	vendorID := c.MustGet(middleware.ContextUserID).(uint)

	var svc models.Service
	if err := h.db.
		Where("id = ?", c.Param("id")).
		First(&svc).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Internal Server Error")
		return
	}

	if svc.VendorID != vendorID {
		httperr.Forbidden(c, "not_service_owner", "Only the owning vendor can update a service.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid body.")
		return
	}

	if req.Title != nil {
		svc.Title = *req.Title
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.ServiceType != nil {
		svc.ServiceType = strings.ToLower(strings.TrimSpace(*req.ServiceType))
	}
	if req.Price != nil {
		if *req.Price < 0 {
			httperr.BadRequest(c, "invalid_price", "price must be >= 0.")
			return
		}
		svc.Price = *req.Price
	}
	if req.DurationMins != nil {
		if *req.DurationMins <= 0 {
			httperr.BadRequest(c, "invalid_duration", "duration_mins must be > 0.")
			return
		}
		svc.DurationMins = *req.DurationMins
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Internal Server Error")
		return
	}

	httpresp.OK(c, svc)
}

// Search is the public catalog search: exact serviceType, optional price
// bounds, active services only.
func (h *ServiceHandler) Search(c *gin.Context) {
	serviceType := strings.ToLower(strings.TrimSpace(c.Query("type")))
	if serviceType == "" {
		httperr.BadRequest(c, "missing_type", "Query param `type` is required, e.g. ?type=salon")
		return
	}

	q := h.db.
		Preload("Vendor").
		Preload("Images").
		Where("service_type = ? AND active = true", serviceType)

	if minPrice := c.Query("minPrice"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			q = q.Where("price >= ?", v)
		}
	}
	if maxPrice := c.Query("maxPrice"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			q = q.Where("price <= ?", v)
		}
	}

	var services []models.Service
	if err := q.Order("created_at DESC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_search_services", "Internal Server Error")
		return
	}

	httpresp.OK(c, gin.H{"data": services})
}

// --------- Service detail ---------

type reviewStats struct {
	AvgRating    float64 `json:"avg_rating"`
	TotalReviews int64   `json:"total_reviews"`
}

// Details renders the booking page payload: the service, its vendor, the
// vendor's review aggregate and the blocked slots for the next 7 days.
func (h *ServiceHandler) Details(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service ID.")
		return
	}

	var svc models.Service
	if err := h.db.
		Preload("Vendor").
		Preload("Images").
		First(&svc, uint(serviceID)).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Internal Server Error")
		return
	}

	if !svc.Active {
		httperr.NotFound(c, "service_not_available", "Service is not available.")
		return
	}

	// Aggregates and availability scans are bounded by the query timeout.
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.QueryTimeout)
	defer cancel()

	var reviews []models.Review
	if err := h.db.WithContext(ctx).
		Preload("User").
		Where("vendor_id = ?", svc.VendorID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {

		h.writeQueryError(c, err, "failed_to_load_reviews")
		return
	}

	var stats reviewStats
	if err := h.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS total_reviews").
		Where("vendor_id = ?", svc.VendorID).
		Scan(&stats).Error; err != nil {

		h.writeQueryError(c, err, "failed_to_load_review_stats")
		return
	}

	slots, err := h.blockedSlots(ctx, svc.VendorID)
	if err != nil {
		h.writeQueryError(c, err, "failed_to_load_availability")
		return
	}

	var avgRating *float64
	if stats.TotalReviews > 0 {
		avgRating = &stats.AvgRating
	}

	httpresp.OK(c, gin.H{
		"data": gin.H{
			"service": svc,
			"vendor":  svc.Vendor,
			"reviews": gin.H{
				"avg_rating":    avgRating,
				"total_reviews": stats.TotalReviews,
				"list":          reviews,
			},
			"availability": gin.H{
				"booked_slots": slots,
				"message":      "Check available slots for the next 7 days",
			},
		},
	})
}

func (h *ServiceHandler) blockedSlots(
	ctx context.Context,
	vendorID uint,
) ([]domain.BlockedSlot, error) {

	key := availabilityCacheKey(vendorID)
	if raw, ok := h.cache.Get(ctx, key); ok {
		var slots []domain.BlockedSlot
		if err := json.Unmarshal([]byte(raw), &slots); err == nil {
			return slots, nil
		}
	}

	now := time.Now().UTC()
	slots, err := h.repo.ListBlockedSlots(ctx, vendorID, now, now.Add(availabilityWindow))
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(slots); err == nil {
		h.cache.Set(ctx, key, string(raw), 30*time.Second)
	}

	return slots, nil
}

func (h *ServiceHandler) writeQueryError(c *gin.Context, err error, code string) {
	if errors.Is(err, context.DeadlineExceeded) {
		httperr.Timeout(c, "query_timeout", "Query timed out.")
		return
	}
	log.Println("service detail error:", err)
	httperr.Internal(c, code, "Internal Server Error")
}
