package domain

const (
	VendorTypeHotel    = "hotel"
	VendorTypeRental   = "rental"
	VendorTypeActivity = "activity"
)

const (
	RoleVendor   = "vendor"
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// VendorProfile is created by vendor onboarding; read-only here.
type VendorProfile struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id,omitempty"`
	Verified int    `json:"verified"` // 0/1
	Type     string `json:"type"`
}

func (p VendorProfile) IsVerified() bool    { return p.Verified == 1 }
func (p VendorProfile) IsHotelVendor() bool { return p.Type == VendorTypeHotel }

// Principal identifies the caller of the listings API.
type Principal struct {
	UserID int64
	Role   string
	Token  string // bearer token forwarded to the API
}
