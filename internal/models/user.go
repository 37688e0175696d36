package models

import (
	"time"

	"github.com/lib/pq"
)

const (
	RoleUser   = "user"
	RoleVendor = "vendor"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username     string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        string `gorm:"size:20" json:"phone"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	Role string `gorm:"size:20;default:'user'" json:"role"`

	// Vendor-only fields, zero-valued for regular users.
	// Vendors must carry at least one service type.
	BusinessName string         `gorm:"size:100" json:"business_name,omitempty"`
	ServiceTypes pq.StringArray `gorm:"type:text[]" json:"service_types,omitempty"`
	Address      string         `gorm:"size:255" json:"address,omitempty"`
	Latitude     *float64       `json:"latitude,omitempty"`
	Longitude    *float64       `json:"longitude,omitempty"`
	IsApproved   bool           `gorm:"default:false" json:"is_approved"`

	ProfilePicURL string `gorm:"size:512" json:"profile_pic_url,omitempty"`
	ProfilePicID  string `gorm:"size:255" json:"profile_pic_id,omitempty"`

	Documents []VendorDocument `gorm:"constraint:OnDelete:CASCADE;" json:"documents,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type VendorDocument struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index" json:"user_id"`

	Filename   string    `gorm:"size:255" json:"filename"`
	URL        string    `gorm:"size:512" json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func (u *User) IsVendor() bool {
	return u.Role == RoleVendor
}
