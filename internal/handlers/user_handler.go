package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/servihub/marketplace-api/internal/middleware"
	"github.com/servihub/marketplace-api/internal/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.Preload("Documents").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

// --------- Profile picture ---------

type profilePicBody struct {
	URL       string `json:"url" binding:"required"`
	StorageID string `json:"storage_id"`
}

type UpdateProfilePicRequest struct {
	ProfilePic    *profilePicBody `json:"profile_pic"`
	ProfilePicURL string          `json:"profile_pic_url"`
}

func (h *UserHandler) UpdateProfilePic(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateProfilePicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	var url, storageID string
	switch {
	case req.ProfilePic != nil:
		url, storageID = req.ProfilePic.URL, req.ProfilePic.StorageID
	case req.ProfilePicURL != "":
		url = req.ProfilePicURL
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "profile_pic_required"})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
		return
	}

	user.ProfilePicURL = url
	user.ProfilePicID = storageID

	if err := h.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_profile_pic"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile_pic_url": user.ProfilePicURL,
		"profile_pic_id":  user.ProfilePicID,
	})
}
