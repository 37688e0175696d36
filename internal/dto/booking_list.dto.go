package dto

import "time"

type BookingListDTO struct {
	ID           uint      `json:"id"`
	ServiceID    uint      `json:"service_id"`
	ServiceTitle string    `json:"service_title"`
	ServiceType  string    `json:"service_type"`
	VendorID     uint      `json:"vendor_id"`
	VendorName   string    `json:"vendor_name"`
	UserID       uint      `json:"user_id"`
	Username     string    `json:"username"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	DurationMins int       `json:"duration_mins"`
	Status       string    `json:"status"`
	Price        float64   `json:"price"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}
