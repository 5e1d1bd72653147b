package app_test

import (
	"context"
	"encoding/json"
	"sync"

	"andaman_vendor/internal/app"
	"andaman_vendor/internal/domain"
)

// ---- listings API fake ----

type fakeAPI struct {
	mu sync.Mutex

	profile    domain.ProfileEnvelope
	profileErr error
	islands    domain.IslandsEnvelope
	islandsErr error
	hotel      domain.HotelEnvelope
	hotelErr   error
	update     domain.Envelope[any]
	updateErr  error

	// panicOnUpdate makes UpdateHotel panic after it is counted.
	panicOnUpdate bool
	// When release is set, UpdateHotel signals entered and waits for it.
	entered chan struct{}
	release chan struct{}

	profileCalls int
	islandCalls  int
	hotelCalls   int
	updateCalls  int
	updates      []domain.HotelUpdate
	tokens       []string
}

func (f *fakeAPI) GetProfile(ctx context.Context, p domain.Principal) (domain.ProfileEnvelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileCalls++
	f.tokens = append(f.tokens, p.Token)
	return f.profile, f.profileErr
}

func (f *fakeAPI) ListIslands(ctx context.Context) (domain.IslandsEnvelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.islandCalls++
	return f.islands, f.islandsErr
}

func (f *fakeAPI) GetHotel(ctx context.Context, p domain.Principal, serviceID int64) (domain.HotelEnvelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hotelCalls++
	return f.hotel, f.hotelErr
}

func (f *fakeAPI) UpdateHotel(ctx context.Context, p domain.Principal, serviceID int64, body domain.HotelUpdate) (domain.Envelope[any], error) {
	f.mu.Lock()
	f.updateCalls++
	f.updates = append(f.updates, body)
	entered, release, panics := f.entered, f.release, f.panicOnUpdate
	f.mu.Unlock()

	if release != nil {
		if entered != nil {
			entered <- struct{}{}
		}
		<-release
	}
	if panics {
		panic("listings API exploded")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.update, f.updateErr
}

func (f *fakeAPI) counts() (profile, hotel, update int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profileCalls, f.hotelCalls, f.updateCalls
}

// ---- storage fakes ----

type fakeStore struct {
	mu       sync.Mutex
	profiles map[int64]domain.VendorProfile // by user id
	islands  []domain.Island
	hotels   map[int64]domain.HotelListing

	hotelReads int
	updated    []storedUpdate
	upserted   []domain.HotelListing
	vendors    []domain.VendorProfile
	islandsUp  []domain.Island
}

type storedUpdate struct {
	vendorID, serviceID int64
	u                   domain.HotelUpdate
}

func (f *fakeStore) GetProfileByUser(ctx context.Context, userID int64) (domain.VendorProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return domain.VendorProfile{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) ListIslands(ctx context.Context) ([]domain.Island, error) {
	return f.islands, nil
}

func (f *fakeStore) IslandExists(ctx context.Context, id int64) (bool, error) {
	for _, i := range f.islands {
		if i.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) GetHotel(ctx context.Context, serviceID int64) (domain.HotelListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hotelReads++
	h, ok := f.hotels[serviceID]
	if !ok {
		return domain.HotelListing{}, domain.ErrNotFound
	}
	return h, nil
}

func (f *fakeStore) UpdateHotel(ctx context.Context, vendorID, serviceID int64, u domain.HotelUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.hotels[serviceID]
	if !ok || h.VendorID != vendorID {
		return domain.ErrNotFound
	}
	f.updated = append(f.updated, storedUpdate{vendorID: vendorID, serviceID: serviceID, u: u})
	h.Name = u.Name
	f.hotels[serviceID] = h
	return nil
}

func (f *fakeStore) UpsertIsland(ctx context.Context, i domain.Island) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.islandsUp = append(f.islandsUp, i)
	return nil
}

func (f *fakeStore) UpsertVendor(ctx context.Context, p domain.VendorProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vendors = append(f.vendors, p)
	return nil
}

func (f *fakeStore) UpsertHotel(ctx context.Context, h domain.HotelListing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserted = append(f.upserted, h)
	return nil
}

// fakeCache stores JSON like the redis adapter does, so cached reads go
// through the same encode/decode path.
type fakeCache struct {
	store map[string][]byte
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

// ---- helpers ----

func ptr[T any](v T) *T { return &v }

func verifiedHotelVendor() *domain.VendorProfile {
	return &domain.VendorProfile{ID: 7, UserID: 70, Verified: 1, Type: domain.VendorTypeHotel}
}

// sampleListing is a fully populated record as the API returns it.
func sampleListing() *domain.HotelListing {
	return &domain.HotelListing{
		ServiceID:             42,
		VendorID:              7,
		Name:                  "Sea Shell Havelock",
		Description:           ptr("Beachfront cottages near Radhanagar."),
		Price:                 4500.5,
		CancellationPolicy:    ptr("Free cancellation up to 48 hours."),
		Images:                ptr("https://img.example/a.jpg,https://img.example/b.jpg"),
		IslandID:              2,
		StarRating:            4,
		CheckInTime:           ptr("13:00"),
		CheckOutTime:          ptr("11:00"),
		TotalRooms:            ptr(24),
		Facilities:            ptr(`["Wifi","Pool","Spa"]`),
		MealPlans:             ptr(`["CP","MAP"]`),
		PetsAllowed:           0,
		ChildrenAllowed:       1,
		AccessibilityFeatures: ptr("Ramp access"),
		StreetAddress:         ptr("Beach No. 5, Swaraj Dweep"),
		GeoLat:                ptr(11.9761),
		GeoLng:                ptr(92.9876),
		IsActive:              1,
	}
}

func vendorSession() app.Session {
	return app.Session{Status: app.SessionAuthenticated, UserID: 70, Role: domain.RoleVendor, Token: "tok-70"}
}
