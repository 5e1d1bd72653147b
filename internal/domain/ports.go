package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrUnavailable  = errors.New("service unavailable")
)

// Envelope is the wire shape of every listings API response.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ProfileEnvelope = Envelope[*VendorProfile]
type IslandsEnvelope = Envelope[[]Island]
type HotelEnvelope = Envelope[*HotelListing]

// ListingsAPI is the portal's view of the listings service.
type ListingsAPI interface {
	GetProfile(ctx context.Context, p Principal) (ProfileEnvelope, error)
	ListIslands(ctx context.Context) (IslandsEnvelope, error)
	GetHotel(ctx context.Context, p Principal, serviceID int64) (HotelEnvelope, error)
	UpdateHotel(ctx context.Context, p Principal, serviceID int64, body HotelUpdate) (Envelope[any], error)
}

type ListingStore interface {
	// Read paths
	GetProfileByUser(ctx context.Context, userID int64) (VendorProfile, error)
	ListIslands(ctx context.Context) ([]Island, error)
	IslandExists(ctx context.Context, id int64) (bool, error)
	GetHotel(ctx context.Context, serviceID int64) (HotelListing, error)

	// Write paths
	UpdateHotel(ctx context.Context, vendorID, serviceID int64, u HotelUpdate) error
	UpsertIsland(ctx context.Context, i Island) error
	UpsertVendor(ctx context.Context, p VendorProfile) error
	UpsertHotel(ctx context.Context, h HotelListing) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
