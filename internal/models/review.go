package models

import "time"

// Review is create-only; there is no update or delete path.
type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	VendorID uint `gorm:"index" json:"vendor_id"`

	ServiceID *uint `json:"service_id,omitempty"`

	Rating int    `gorm:"not null" json:"rating"`
	Text   string `gorm:"size:1000" json:"text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
