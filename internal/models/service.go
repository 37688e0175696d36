package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	VendorID uint `gorm:"index" json:"vendor_id"`
	Vendor   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"vendor"`

	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"size:500" json:"description"`

	ServiceType  string  `gorm:"size:50;index;not null" json:"service_type"`
	Price        float64 `json:"price"`
	DurationMins int     `gorm:"default:30" json:"duration_mins"`

	Active bool `gorm:"default:true" json:"active"`

	Images []ServiceImage `gorm:"constraint:OnDelete:CASCADE;" json:"images"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ServiceImage is a gallery entry. StorageID is the opaque id assigned by the
// blob store, empty for externally hosted URLs.
type ServiceImage struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ServiceID uint `gorm:"index" json:"service_id"`

	URL        string    `gorm:"size:512;not null" json:"url"`
	StorageID  string    `gorm:"size:255" json:"storage_id,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}
