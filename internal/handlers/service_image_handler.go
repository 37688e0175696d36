package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/servihub/marketplace-api/internal/httperr"
	"github.com/servihub/marketplace-api/internal/httpresp"
	"github.com/servihub/marketplace-api/internal/media"
	"github.com/servihub/marketplace-api/internal/middleware"
	"github.com/servihub/marketplace-api/internal/models"
)

const maxUploadBytes = 10 << 20

type ServiceImageHandler struct {
	db    *gorm.DB
	store media.Store // nil when no blob backend is configured
}

func NewServiceImageHandler(db *gorm.DB, store media.Store) *ServiceImageHandler {
	return &ServiceImageHandler{db: db, store: store}
}

// --------- Requests ---------

type imageBody struct {
	URL       string `json:"url" binding:"required"`
	StorageID string `json:"storage_id"`
}

type AddImageRequest struct {
	Image    *imageBody `json:"image"`
	ImageURL string     `json:"image_url"`
}

type RemoveImageRequest struct {
	StorageID string `json:"storage_id"`
	URL       string `json:"url"`
}

// --------- Helpers ---------

// ownedService loads the service and enforces vendor ownership; it writes
// the error response itself and returns nil on failure.
func (h *ServiceImageHandler) ownedService(c *gin.Context) *models.Service {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var svc models.Service
	if err := h.db.Where("id = ?", c.Param("id")).First(&svc).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return nil
	}

	if svc.VendorID != userID {
		httperr.Forbidden(c, "not_service_owner", "Only the service owner can manage images.")
		return nil
	}

	return &svc
}

// --------- Handlers ---------

func (h *ServiceImageHandler) Add(c *gin.Context) {
	svc := h.ownedService(c)
	if svc == nil {
		return
	}

	var req AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "image or image_url required.")
		return
	}

	var url, storageID string
	switch {
	case req.Image != nil:
		url, storageID = req.Image.URL, req.Image.StorageID
	case req.ImageURL != "":
		url = req.ImageURL
	default:
		httperr.BadRequest(c, "invalid_request", "image or image_url required.")
		return
	}

	img := models.ServiceImage{
		ServiceID:  svc.ID,
		URL:        url,
		StorageID:  storageID,
		UploadedAt: time.Now().UTC(),
	}

	if err := h.db.Create(&img).Error; err != nil {
		httperr.Internal(c, "failed_to_add_image", "Internal Server Error")
		return
	}

	httpresp.Created(c, gin.H{"message": "Image added", "image": img})
}

func (h *ServiceImageHandler) List(c *gin.Context) {
	var svc models.Service
	if err := h.db.
		Preload("Images").
		Where("id = ?", c.Param("id")).
		First(&svc).Error; err != nil {

		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	httpresp.OK(c, gin.H{"images": svc.Images})
}

func (h *ServiceImageHandler) Remove(c *gin.Context) {
	svc := h.ownedService(c)
	if svc == nil {
		return
	}

	var req RemoveImageRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.StorageID == "" && req.URL == "") {
		httperr.BadRequest(c, "invalid_request", "storage_id or url required in body.")
		return
	}

	q := h.db.Where("service_id = ?", svc.ID)
	if req.StorageID != "" {
		q = q.Where("storage_id = ?", req.StorageID)
	} else {
		q = q.Where("url = ?", req.URL)
	}

	var img models.ServiceImage
	if err := q.First(&img).Error; err != nil {
		httperr.NotFound(c, "image_not_found", "Image not found.")
		return
	}

	if err := h.db.Delete(&img).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_image", "Internal Server Error")
		return
	}

	// Best effort: dropping the blob is not allowed to fail the request.
	if img.StorageID != "" && h.store != nil {
		if err := h.store.Delete(c.Request.Context(), img.StorageID); err != nil {
			log.Println("blob delete failed (non-fatal):", err)
		}
	}

	httpresp.OK(c, gin.H{"message": "Image deleted"})
}

// Upload ingests raw image bytes, re-encodes them as webp and stores the
// result in the configured blob store.
func (h *ServiceImageHandler) Upload(c *gin.Context) {
	svc := h.ownedService(c)
	if svc == nil {
		return
	}

	if h.store == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "feature_unavailable", "No image storage configured.")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "multipart field `file` required.")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		httperr.BadRequest(c, "file_too_large", "Image exceeds the 10MB limit.")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_upload", "Internal Server Error")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		httperr.Internal(c, "failed_to_read_upload", "Internal Server Error")
		return
	}

	encoded, err := media.EncodeWebP(data)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "File is not a decodable image.")
		return
	}

	key := fmt.Sprintf("services/%d/%s.webp", svc.ID, uuid.NewString())

	url, err := h.store.Put(c.Request.Context(), key, encoded, "image/webp")
	if err != nil {
		log.Println("blob put failed:", err)
		httperr.Internal(c, "failed_to_store_image", "Internal Server Error")
		return
	}

	img := models.ServiceImage{
		ServiceID:  svc.ID,
		URL:        url,
		StorageID:  key,
		UploadedAt: time.Now().UTC(),
	}

	if err := h.db.Create(&img).Error; err != nil {
		httperr.Internal(c, "failed_to_add_image", "Internal Server Error")
		return
	}

	httpresp.Created(c, gin.H{"message": "Image uploaded", "image": img})
}
