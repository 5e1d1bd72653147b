package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"andaman_vendor/internal/domain"
)

const islandsKey = "islands:v1"

func hotelKey(serviceID int64) string { return fmt.Sprintf("hotel:%d", serviceID) }

// QueryService serves the listings API read paths.
type QueryService struct {
	repo     domain.ListingStore
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.ListingStore, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

// GetProfile returns nil, nil when the user has no vendor profile.
func (s *QueryService) GetProfile(ctx context.Context, userID int64) (*domain.VendorProfile, error) {
	p, err := s.repo.GetProfileByUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *QueryService) ListIslands(ctx context.Context) ([]domain.Island, error) {
	var out []domain.Island
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, islandsKey, &out); ok {
			return out, nil
		}
	}
	out, err := s.repo.ListIslands(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Island{}
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, islandsKey, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

func (s *QueryService) getHotel(ctx context.Context, serviceID int64) (domain.HotelListing, error) {
	key := hotelKey(serviceID)
	var h domain.HotelListing
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &h); ok {
			return h, nil
		}
	}
	h, err := s.repo.GetHotel(ctx, serviceID)
	if err != nil {
		return domain.HotelListing{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	}
	return h, nil
}

// GetOwnedHotel returns nil, nil both when the hotel does not exist and when
// it belongs to another vendor, so callers cannot probe for existence.
func (s *QueryService) GetOwnedHotel(ctx context.Context, p domain.Principal, serviceID int64) (*domain.HotelListing, error) {
	vendor, err := s.authorizeHotelVendor(ctx, p)
	if err != nil {
		return nil, err
	}
	h, err := s.getHotel(ctx, serviceID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if h.VendorID != vendor.ID {
		return nil, nil
	}
	return &h, nil
}

// authorizeHotelVendor requires a verified hotel vendor profile.
func (s *QueryService) authorizeHotelVendor(ctx context.Context, p domain.Principal) (domain.VendorProfile, error) {
	if p.Role != domain.RoleVendor {
		return domain.VendorProfile{}, domain.ErrForbidden
	}
	vendor, err := s.repo.GetProfileByUser(ctx, p.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.VendorProfile{}, domain.ErrForbidden
	}
	if err != nil {
		return domain.VendorProfile{}, err
	}
	if !vendor.IsVerified() || !vendor.IsHotelVendor() {
		return domain.VendorProfile{}, domain.ErrForbidden
	}
	return vendor, nil
}
