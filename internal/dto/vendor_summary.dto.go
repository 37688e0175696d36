package dto

type VendorServiceDTO struct {
	ID           uint    `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	DurationMins int     `json:"duration_mins"`
	ServiceType  string  `json:"service_type"`
}

type VendorSummaryDTO struct {
	ID            uint     `json:"id"`
	Username      string   `json:"username"`
	BusinessName  string   `json:"business_name"`
	ServiceTypes  []string `json:"service_types"`
	Address       string   `json:"address"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	IsApproved    bool     `json:"is_approved"`
	ProfilePicURL string   `json:"profile_pic_url,omitempty"`

	// Set only for geospatial searches.
	DistanceMeters *float64 `json:"distance_meters,omitempty"`

	Services []VendorServiceDTO `json:"services"`
}
