package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"andaman_vendor/internal/domain"
)

// SeedFile is the YAML document read by cmd/seed.
type SeedFile struct {
	Islands []domain.Island `yaml:"islands"`
	Vendors []SeedVendor    `yaml:"vendors"`
	Hotels  []SeedHotel     `yaml:"hotels"`
}

type SeedVendor struct {
	ID       int64  `yaml:"id"`
	UserID   int64  `yaml:"user_id"`
	Verified bool   `yaml:"verified"`
	Type     string `yaml:"type"`
}

type SeedHotel struct {
	ID                    int64    `yaml:"id"`
	VendorID              int64    `yaml:"vendor_id"`
	Name                  string   `yaml:"name"`
	Description           string   `yaml:"description"`
	Price                 float64  `yaml:"price"`
	CancellationPolicy    string   `yaml:"cancellation_policy"`
	Images                []string `yaml:"images"`
	IslandID              int64    `yaml:"island_id"`
	StarRating            int      `yaml:"star_rating"`
	CheckInTime           string   `yaml:"check_in_time"`
	CheckOutTime          string   `yaml:"check_out_time"`
	TotalRooms            *int     `yaml:"total_rooms"`
	Facilities            []string `yaml:"facilities"`
	MealPlans             []string `yaml:"meal_plans"`
	PetsAllowed           bool     `yaml:"pets_allowed"`
	ChildrenAllowed       bool     `yaml:"children_allowed"`
	AccessibilityFeatures string   `yaml:"accessibility_features"`
	StreetAddress         string   `yaml:"street_address"`
	GeoLat                *float64 `yaml:"geo_lat"`
	GeoLng                *float64 `yaml:"geo_lng"`
	Active                *bool    `yaml:"active"`
}

func ReadSeedFile(r io.Reader) (SeedFile, error) {
	var f SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return SeedFile{}, fmt.Errorf("decode seed file: %w", err)
	}
	return f, nil
}

func (v SeedVendor) Profile() domain.VendorProfile {
	return domain.VendorProfile{ID: v.ID, UserID: v.UserID, Verified: boolInt(v.Verified), Type: v.Type}
}

// Listing maps a seed entry to the stored shape: array fields become JSON
// text, images a comma-separated string, flags 0/1.
func (h SeedHotel) Listing() domain.HotelListing {
	active := true
	if h.Active != nil {
		active = *h.Active
	}
	return domain.HotelListing{
		ServiceID:             h.ID,
		VendorID:              h.VendorID,
		Name:                  h.Name,
		Description:           ptrStr(h.Description),
		Price:                 h.Price,
		CancellationPolicy:    ptrStr(h.CancellationPolicy),
		Images:                ptrStr(strings.Join(h.Images, ",")),
		IslandID:              h.IslandID,
		StarRating:            h.StarRating,
		CheckInTime:           ptrStr(h.CheckInTime),
		CheckOutTime:          ptrStr(h.CheckOutTime),
		TotalRooms:            h.TotalRooms,
		Facilities:            jsonArray(h.Facilities),
		MealPlans:             jsonArray(h.MealPlans),
		PetsAllowed:           boolInt(h.PetsAllowed),
		ChildrenAllowed:       boolInt(h.ChildrenAllowed),
		AccessibilityFeatures: ptrStr(h.AccessibilityFeatures),
		StreetAddress:         ptrStr(h.StreetAddress),
		GeoLat:                h.GeoLat,
		GeoLng:                h.GeoLng,
		IsActive:              boolInt(active),
	}
}

// SeedService writes reference data; it is the offline counterpart of the
// listings API and invalidates the same cache keys.
type SeedService struct {
	repo  domain.ListingStore
	cache domain.Cache
}

func NewSeedService(r domain.ListingStore, c domain.Cache) *SeedService {
	return &SeedService{repo: r, cache: c}
}

// SeedReference upserts islands and vendor profiles. Hotels reference both,
// so this must run before SeedHotel.
func (s *SeedService) SeedReference(ctx context.Context, f SeedFile) error {
	for _, i := range f.Islands {
		if err := s.repo.UpsertIsland(ctx, i); err != nil {
			return fmt.Errorf("upsert island %d: %w", i.ID, err)
		}
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, islandsKey)
	}
	for _, v := range f.Vendors {
		if err := s.repo.UpsertVendor(ctx, v.Profile()); err != nil {
			return fmt.Errorf("upsert vendor %d: %w", v.ID, err)
		}
	}
	return nil
}

func (s *SeedService) SeedHotel(ctx context.Context, h SeedHotel) error {
	if err := s.repo.UpsertHotel(ctx, h.Listing()); err != nil {
		return fmt.Errorf("upsert hotel %d: %w", h.ID, err)
	}
	if s.cache != nil {
		_ = s.cache.Del(ctx, hotelKey(h.ID))
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func ptrStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func jsonArray(items []string) *string {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	s := string(b)
	return &s
}
