package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"andaman_vendor/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
func valBool(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullStr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

type Repo struct{ db *sql.DB }

var _ domain.ListingStore = (*Repo)(nil)

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) GetProfileByUser(ctx context.Context, userID int64) (domain.VendorProfile, error) {
	var p domain.VendorProfile
	err := r.db.QueryRowContext(ctx, getProfileByUserSQL, userID).Scan(&p.ID, &p.UserID, &p.Verified, &p.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.VendorProfile{}, domain.ErrNotFound
	}
	return p, err
}

func (r *Repo) ListIslands(ctx context.Context) ([]domain.Island, error) {
	rows, err := r.db.QueryContext(ctx, listIslandsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Island{}
	for rows.Next() {
		var i domain.Island
		if err := rows.Scan(&i.ID, &i.Name); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *Repo) IslandExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, islandExistsSQL, id).Scan(&ok)
	return ok, err
}

func (r *Repo) GetHotel(ctx context.Context, serviceID int64) (domain.HotelListing, error) {
	var h domain.HotelListing
	var (
		desc, policy, images, checkIn, checkOut sql.NullString
		facilities, mealPlans                   sql.NullString
		access, street                          sql.NullString
		totalRooms                              sql.NullInt64
		lat, lng                                sql.NullFloat64
	)
	err := r.db.QueryRowContext(ctx, getHotelSQL, serviceID).Scan(
		&h.ServiceID,
		&h.VendorID,
		&h.Name,
		&desc,
		&h.Price,
		&policy,
		&images,
		&h.IslandID,
		&h.StarRating,
		&checkIn, &checkOut,
		&totalRooms,
		&facilities, &mealPlans,
		&h.PetsAllowed, &h.ChildrenAllowed,
		&access,
		&street,
		&lat, &lng,
		&h.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.HotelListing{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.HotelListing{}, err
	}

	h.Description = nullStr(desc)
	h.CancellationPolicy = nullStr(policy)
	h.Images = nullStr(images)
	h.CheckInTime = nullStr(checkIn)
	h.CheckOutTime = nullStr(checkOut)
	h.Facilities = nullStr(facilities)
	h.MealPlans = nullStr(mealPlans)
	h.AccessibilityFeatures = nullStr(access)
	h.StreetAddress = nullStr(street)
	if totalRooms.Valid {
		n := int(totalRooms.Int64)
		h.TotalRooms = &n
	}
	if lat.Valid {
		f := lat.Float64
		h.GeoLat = &f
	}
	if lng.Valid {
		f := lng.Float64
		h.GeoLng = &f
	}
	return h, nil
}

// UpdateHotel returns domain.ErrNotFound when vendorID does not own serviceID.
func (r *Repo) UpdateHotel(ctx context.Context, vendorID, serviceID int64, u domain.HotelUpdate) error {
	facilities, err := json.Marshal(nonNil(u.Facilities))
	if err != nil {
		return err
	}
	mealPlans, err := json.Marshal(nonNil(u.MealPlans))
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, updateHotelSQL,
		u.Name,
		u.Description,
		u.Price,
		u.CancellationPolicy,
		u.Images,
		u.IslandID,
		u.StarRating,
		u.CheckInTime,
		u.CheckOutTime,
		valInt(u.TotalRooms),
		string(facilities),
		string(mealPlans),
		valBool(u.PetsAllowed),
		valBool(u.ChildrenAllowed),
		u.AccessibilityFeatures,
		u.StreetAddress,
		valF64(u.GeoLat),
		valF64(u.GeoLng),
		serviceID,
		vendorID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	// MySQL reports 0 affected rows for a no-op update; tell that apart from
	// a missing or foreign hotel.
	var owned bool
	if err := r.db.QueryRowContext(ctx, hotelOwnedSQL, serviceID, vendorID).Scan(&owned); err != nil {
		return err
	}
	if !owned {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) UpsertIsland(ctx context.Context, i domain.Island) error {
	_, err := r.db.ExecContext(ctx, upsertIslandSQL, i.ID, i.Name)
	return err
}

func (r *Repo) UpsertVendor(ctx context.Context, p domain.VendorProfile) error {
	_, err := r.db.ExecContext(ctx, upsertVendorSQL, p.ID, p.UserID, p.Verified, p.Type)
	return err
}

func (r *Repo) UpsertHotel(ctx context.Context, h domain.HotelListing) error {
	_, err := r.db.ExecContext(ctx, upsertHotelSQL,
		h.ServiceID,
		h.VendorID,
		h.Name,
		valStr(h.Description),
		h.Price,
		valStr(h.CancellationPolicy),
		valStr(h.Images),
		h.IslandID,
		h.StarRating,
		valStr(h.CheckInTime),
		valStr(h.CheckOutTime),
		valInt(h.TotalRooms),
		valStr(h.Facilities),
		valStr(h.MealPlans),
		h.PetsAllowed,
		h.ChildrenAllowed,
		valStr(h.AccessibilityFeatures),
		valStr(h.StreetAddress),
		valF64(h.GeoLat),
		valF64(h.GeoLng),
		h.IsActive,
	)
	return err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
