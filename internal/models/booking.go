package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceID uint    `gorm:"index" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	// Snapshot of service.vendor at creation time.
	VendorID uint `gorm:"index" json:"vendor_id"`
	Vendor   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"vendor"`

	ScheduledAt time.Time `gorm:"index;not null" json:"scheduled_at"`

	// Snapshots of the service terms at booking time. Never refreshed.
	DurationMins int     `json:"duration_mins"`
	Price        float64 `json:"price"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`
	Notes  string `gorm:"size:500" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
