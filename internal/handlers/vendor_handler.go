package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/servihub/marketplace-api/internal/cache"
	"github.com/servihub/marketplace-api/internal/dto"
	"github.com/servihub/marketplace-api/internal/geo"
	"github.com/servihub/marketplace-api/internal/httperr"
	"github.com/servihub/marketplace-api/internal/httpresp"
	"github.com/servihub/marketplace-api/internal/middleware"
	"github.com/servihub/marketplace-api/internal/models"
)

const (
	defaultRadiusMeters = 5000
	defaultPageLimit    = 20
	maxPageLimit        = 100
)

type VendorHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewVendorHandler(db *gorm.DB, cacheClient *cache.Cache) *VendorHandler {
	return &VendorHandler{db: db, cache: cacheClient}
}

type vendorSearchRow struct {
	ID             uint           `gorm:"column:id"`
	Username       string         `gorm:"column:username"`
	BusinessName   string         `gorm:"column:business_name"`
	ServiceTypes   pq.StringArray `gorm:"column:service_types;type:text[]"`
	Address        string         `gorm:"column:address"`
	Latitude       *float64       `gorm:"column:latitude"`
	Longitude      *float64       `gorm:"column:longitude"`
	IsApproved     bool           `gorm:"column:is_approved"`
	ProfilePicURL  string         `gorm:"column:profile_pic_url"`
	DistanceMeters *float64       `gorm:"column:distance_meters"`
}

const vendorColumns = "id, username, business_name, service_types, address, latitude, longitude, is_approved, profile_pic_url"

// Search implements vendor discovery. With a geospatial center results are
// nearest-first and annotated with distance; the radius is an exclusive
// upper bound in meters. Without one, ordering is insertion-recency and an
// exact total is returned. With geo search the total only reflects the
// returned page, since counting would run the distance expression twice.
func (h *VendorHandler) Search(c *gin.Context) {
	cacheKey := "vendors:" + c.Request.URL.RawQuery
	if raw, ok := h.cache.Get(c.Request.Context(), cacheKey); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(raw))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset := (page - 1) * limit

	base := h.db.Model(&models.User{}).Where("role = ?", models.RoleVendor)

	if c.Query("onlyApproved") == "true" {
		base = base.Where("is_approved = true")
	}
	if service := strings.TrimSpace(c.Query("service")); service != "" {
		base = base.Where("? = ANY(service_types)", service)
	}
	if q := strings.ToLower(strings.TrimSpace(c.Query("q"))); q != "" {
		like := "%" + q + "%"
		base = base.Where("LOWER(business_name) LIKE ? OR LOWER(username) LIKE ?", like, like)
	}

	latStr, lngStr := c.Query("lat"), c.Query("lng")

	var (
		rows  []vendorSearchRow
		total int64
		hasGeo = latStr != "" && lngStr != ""
	)

	if hasGeo {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			httperr.BadRequest(c, "invalid_coordinates", "lat and lng must be numbers.")
			return
		}

		radius := defaultRadiusMeters
		if r := c.Query("radius"); r != "" {
			if v, err := strconv.Atoi(r); err == nil && v > 0 {
				radius = v
			}
		}

		err := base.
			Select(vendorColumns+", "+geo.DistanceSQL+" AS distance_meters", lat, lng, lat).
			Where("latitude IS NOT NULL AND longitude IS NOT NULL").
			Where(geo.DistanceSQL+" < ?", lat, lng, lat, radius).
			Order("distance_meters ASC").
			Offset(offset).
			Limit(limit).
			Scan(&rows).Error
		if err != nil {
			log.Println("vendor geo search error:", err)
			httperr.Internal(c, "failed_to_search_vendors", "Internal Server Error")
			return
		}

		total = int64(len(rows))
	} else {
		if err := base.Count(&total).Error; err != nil {
			httperr.Internal(c, "failed_to_search_vendors", "Internal Server Error")
			return
		}

		err := base.
			Select(vendorColumns).
			Order("created_at DESC").
			Offset(offset).
			Limit(limit).
			Scan(&rows).Error
		if err != nil {
			log.Println("vendor search error:", err)
			httperr.Internal(c, "failed_to_search_vendors", "Internal Server Error")
			return
		}
	}

	summaries, err := h.attachServices(rows)
	if err != nil {
		httperr.Internal(c, "failed_to_load_services", "Internal Server Error")
		return
	}

	payload := gin.H{"data": summaries, "total": total}

	if raw, err := json.Marshal(payload); err == nil {
		h.cache.Set(c.Request.Context(), cacheKey, string(raw), 30*time.Second)
	}

	httpresp.OK(c, payload)
}

// attachServices annotates each vendor summary with its active services.
func (h *VendorHandler) attachServices(rows []vendorSearchRow) ([]dto.VendorSummaryDTO, error) {
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	servicesByVendor := map[uint][]dto.VendorServiceDTO{}
	if len(ids) > 0 {
		var services []models.Service
		if err := h.db.
			Where("vendor_id IN ? AND active = true", ids).
			Find(&services).Error; err != nil {
			return nil, err
		}

		for _, svc := range services {
			servicesByVendor[svc.VendorID] = append(servicesByVendor[svc.VendorID], dto.VendorServiceDTO{
				ID:           svc.ID,
				Title:        svc.Title,
				Description:  svc.Description,
				Price:        svc.Price,
				DurationMins: svc.DurationMins,
				ServiceType:  svc.ServiceType,
			})
		}
	}

	out := make([]dto.VendorSummaryDTO, 0, len(rows))
	for _, r := range rows {
		services := servicesByVendor[r.ID]
		if services == nil {
			services = []dto.VendorServiceDTO{}
		}
		out = append(out, dto.VendorSummaryDTO{
			ID:             r.ID,
			Username:       r.Username,
			BusinessName:   r.BusinessName,
			ServiceTypes:   r.ServiceTypes,
			Address:        r.Address,
			Latitude:       r.Latitude,
			Longitude:      r.Longitude,
			IsApproved:     r.IsApproved,
			ProfilePicURL:  r.ProfilePicURL,
			DistanceMeters: r.DistanceMeters,
			Services:       services,
		})
	}

	return out, nil
}

// Dashboard is gated on vendor role and admin approval.
func (h *VendorHandler) Dashboard(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	if !user.IsVendor() {
		httperr.Forbidden(c, "not_a_vendor", "Forbidden: not a vendor.")
		return
	}

	if !user.IsApproved {
		httperr.Forbidden(c, "vendor_not_approved", "Vendor not approved yet.")
		return
	}

	httpresp.OK(c, gin.H{
		"message": "Welcome to vendor dashboard",
		"vendor": gin.H{
			"id":            user.ID,
			"username":      user.Username,
			"business_name": user.BusinessName,
			"service_types": user.ServiceTypes,
			"address":       user.Address,
			"email":         user.Email,
		},
	})
}
