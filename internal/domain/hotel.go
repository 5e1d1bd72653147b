package domain

// HotelListing is a vendor-owned hotel as stored by the listings API.
// Facilities and MealPlans hold the stored JSON array text verbatim.
type HotelListing struct {
	ServiceID             int64    `json:"service_id"`
	VendorID              int64    `json:"vendor_id,omitempty"`
	Name                  string   `json:"name"`
	Description           *string  `json:"description"`
	Price                 float64  `json:"price"`
	CancellationPolicy    *string  `json:"cancellation_policy"`
	Images                *string  `json:"images"` // comma-separated URLs
	IslandID              int64    `json:"island_id"`
	StarRating            int      `json:"star_rating"`
	CheckInTime           *string  `json:"check_in_time"`
	CheckOutTime          *string  `json:"check_out_time"`
	TotalRooms            *int     `json:"total_rooms"`
	Facilities            *string  `json:"facilities"`
	MealPlans             *string  `json:"meal_plans"`
	PetsAllowed           int      `json:"pets_allowed"`
	ChildrenAllowed       int      `json:"children_allowed"`
	AccessibilityFeatures *string  `json:"accessibility_features"`
	StreetAddress         *string  `json:"street_address"`
	GeoLat                *float64 `json:"geo_lat"`
	GeoLng                *float64 `json:"geo_lng"`
	IsActive              int      `json:"is_active"`
}

// HotelUpdate is the body of PUT hotel-record. IsActive is deliberately absent:
// activation is managed through a separate control.
type HotelUpdate struct {
	Name                  string   `json:"name" validate:"required"`
	Description           string   `json:"description"`
	Price                 float64  `json:"price" validate:"gte=0"`
	CancellationPolicy    string   `json:"cancellation_policy"`
	Images                string   `json:"images"`
	IslandID              int64    `json:"island_id" validate:"gt=0"`
	StarRating            int      `json:"star_rating" validate:"min=1,max=5"`
	CheckInTime           string   `json:"check_in_time" validate:"hhmm"`
	CheckOutTime          string   `json:"check_out_time" validate:"hhmm"`
	TotalRooms            *int     `json:"total_rooms,omitempty" validate:"omitempty,gte=0"`
	Facilities            []string `json:"facilities"`
	MealPlans             []string `json:"meal_plans"`
	PetsAllowed           bool     `json:"pets_allowed"`
	ChildrenAllowed       bool     `json:"children_allowed"`
	AccessibilityFeatures string   `json:"accessibility_features"`
	StreetAddress         string   `json:"street_address" validate:"required"`
	GeoLat                *float64 `json:"geo_lat" validate:"omitempty,latitude"`
	GeoLng                *float64 `json:"geo_lng" validate:"omitempty,longitude"`
}

type Island struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}
