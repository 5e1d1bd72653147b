package app_test

import (
	"encoding/json"
	"errors"
	"testing"

	"andaman_vendor/internal/app"
)

func bodyKeys(t *testing.T, v any) map[string]json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return m
}

func TestBuildUpdate_RoundTripsListing(t *testing.T) {
	u, err := app.BuildUpdate(app.FormFromListing(sampleListing()))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if u.Price != 4500.5 || u.IslandID != 2 || u.StarRating != 4 {
		t.Fatalf("numbers: %+v", u)
	}
	if u.CheckInTime != "13:00" || u.CheckOutTime != "11:00" {
		t.Fatalf("times: %q %q", u.CheckInTime, u.CheckOutTime)
	}
	if u.TotalRooms == nil || *u.TotalRooms != 24 {
		t.Fatalf("total rooms: %v", u.TotalRooms)
	}
	if *u.GeoLat != 11.9761 || *u.GeoLng != 92.9876 {
		t.Fatalf("geo: %v %v", *u.GeoLat, *u.GeoLng)
	}
	if len(u.MealPlans) != 2 || u.MealPlans[0] != "CP" || u.PetsAllowed || !u.ChildrenAllowed {
		t.Fatalf("lists/flags: %+v", u)
	}
}

func TestBuildUpdate_EmptyTotalRoomsIsOmitted(t *testing.T) {
	f := app.FormFromListing(sampleListing())
	f.TotalRooms = ""
	u, err := app.BuildUpdate(f)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	keys := bodyKeys(t, u)
	if _, ok := keys["total_rooms"]; ok {
		t.Fatalf("total_rooms must be absent, body keys: %v", keys)
	}

	f.TotalRooms = "0"
	u, _ = app.BuildUpdate(f)
	if raw, ok := bodyKeys(t, u)["total_rooms"]; !ok || string(raw) != "0" {
		t.Fatalf("explicit zero must be sent, got %s", raw)
	}
}

func TestBuildUpdate_EmptyCoordinatesAreNull(t *testing.T) {
	f := app.FormFromListing(sampleListing())
	f.GeoLat, f.GeoLng = "", "  "
	u, err := app.BuildUpdate(f)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	keys := bodyKeys(t, u)
	for _, k := range []string{"geo_lat", "geo_lng"} {
		raw, ok := keys[k]
		if !ok || string(raw) != "null" {
			t.Fatalf("%s = %s (present %v), want null", k, raw, ok)
		}
	}
}

func TestBuildUpdate_NeverCarriesIsActive(t *testing.T) {
	u, _ := app.BuildUpdate(app.FormFromListing(sampleListing()))
	if _, ok := bodyKeys(t, u)["is_active"]; ok {
		t.Fatalf("is_active present in update body")
	}
}

func TestBuildUpdate_EmptyListsAreArrays(t *testing.T) {
	f := app.FormFromListing(sampleListing())
	f.Facilities = ""
	u, _ := app.BuildUpdate(f)
	if raw := bodyKeys(t, u)["facilities"]; string(raw) != "[]" {
		t.Fatalf("facilities = %s, want []", raw)
	}
}

func TestBuildUpdate_Validation(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*app.HotelForm)
		field string
	}{
		{"island missing", func(f *app.HotelForm) { f.IslandID = "" }, app.FieldIslandID},
		{"stars missing", func(f *app.HotelForm) { f.StarRating = " " }, app.FieldStarRating},
		{"price text", func(f *app.HotelForm) { f.Price = "cheap" }, app.FieldPrice},
		{"rooms text", func(f *app.HotelForm) { f.TotalRooms = "many" }, app.FieldTotalRooms},
		{"lat text", func(f *app.HotelForm) { f.GeoLat = "north" }, app.FieldGeoLat},
		{"lng text", func(f *app.HotelForm) { f.GeoLng = "east" }, app.FieldGeoLng},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := app.FormFromListing(sampleListing())
			tc.edit(&f)
			_, err := app.BuildUpdate(f)
			var ve *app.ValidationError
			if !errors.As(err, &ve) || ve.Field != tc.field {
				t.Fatalf("err = %v, want validation on %s", err, tc.field)
			}
			if !app.IsValidation(err) || ve.UserMessage() == "" {
				t.Fatalf("validation error without message: %v", err)
			}
		})
	}
}

func TestBuildUpdate_IslandCheckedBeforeStars(t *testing.T) {
	f := app.FormFromListing(sampleListing())
	f.IslandID, f.StarRating = "", ""
	if _, err := app.BuildUpdate(f); !errors.Is(err, app.ErrIslandRequired) {
		t.Fatalf("err = %v", err)
	}
}
