package app_test

import (
	"net/url"
	"reflect"
	"strings"
	"testing"

	"andaman_vendor/internal/app"
	"andaman_vendor/internal/domain"
)

func TestFormFromListing_Transforms(t *testing.T) {
	f := app.FormFromListing(sampleListing())

	want := app.HotelForm{
		Name:                  "Sea Shell Havelock",
		Description:           "Beachfront cottages near Radhanagar.",
		Price:                 "4500.5",
		CancellationPolicy:    "Free cancellation up to 48 hours.",
		Images:                "https://img.example/a.jpg,https://img.example/b.jpg",
		IslandID:              "2",
		StarRating:            "4",
		CheckInTime:           "13:00",
		CheckOutTime:          "11:00",
		TotalRooms:            "24",
		Facilities:            "Wifi, Pool, Spa",
		MealPlans:             "CP, MAP",
		PetsAllowed:           false,
		ChildrenAllowed:       true,
		AccessibilityFeatures: "Ramp access",
		StreetAddress:         "Beach No. 5, Swaraj Dweep",
		GeoLat:                "11.9761",
		GeoLng:                "92.9876",
	}
	if f != want {
		t.Fatalf("form mismatch:\n got %+v\nwant %+v", f, want)
	}
}

func TestFormFromListing_Defaults(t *testing.T) {
	h := &domain.HotelListing{ServiceID: 9, Name: "Bare", Price: 1200, IslandID: 1, StarRating: 2, PetsAllowed: 1}
	f := app.FormFromListing(h)

	if f.CheckInTime != "14:00" || f.CheckOutTime != "12:00" {
		t.Fatalf("times = %q/%q", f.CheckInTime, f.CheckOutTime)
	}
	if f.TotalRooms != "" || f.GeoLat != "" || f.GeoLng != "" {
		t.Fatalf("absent optionals should be empty: %+v", f)
	}
	if f.Price != "1200" {
		t.Fatalf("price = %q", f.Price)
	}
	if !f.PetsAllowed || f.ChildrenAllowed {
		t.Fatalf("flags = pets %v children %v", f.PetsAllowed, f.ChildrenAllowed)
	}

	h.CheckInTime = ptr("")
	if f := app.FormFromListing(h); f.CheckInTime != "14:00" {
		t.Fatalf("empty check-in should default, got %q", f.CheckInTime)
	}
}

func TestFormFromListing_MalformedArrayFieldIsEmpty(t *testing.T) {
	for _, raw := range []string{"not json", `{"wifi":true}`, `"Wifi"`, "null", `["unterminated"`} {
		h := sampleListing()
		h.Facilities = ptr(raw)
		f := app.FormFromListing(h)
		if f.Facilities != "" {
			t.Errorf("facilities %q -> %q, want empty", raw, f.Facilities)
		}
		if f.Name != "Sea Shell Havelock" || f.MealPlans != "CP, MAP" {
			t.Errorf("other fields must still load for %q: %+v", raw, f)
		}
	}
}

func TestParseArrayField(t *testing.T) {
	got, ok := app.ParseArrayField(`["Wifi", 2, true]`)
	if !ok || !reflect.DeepEqual(got, []string{"Wifi", "2", "true"}) {
		t.Fatalf("got %v, %v", got, ok)
	}
	got, ok = app.ParseArrayField(`[]`)
	if !ok || len(got) != 0 {
		t.Fatalf("empty array: %v, %v", got, ok)
	}
	if _, ok := app.ParseArrayField(`{}`); ok {
		t.Fatalf("object accepted as array")
	}
}

func TestSplitList(t *testing.T) {
	cases := map[string][]string{
		"":                  {},
		" , ,":              {},
		"Wifi":              {"Wifi"},
		" Wifi ,Pool,, Spa": {"Wifi", "Pool", "Spa"},
	}
	for in, want := range cases {
		got := app.SplitList(in)
		if got == nil || !reflect.DeepEqual(got, want) {
			t.Errorf("SplitList(%q) = %#v, want %#v", in, got, want)
		}
	}
}

func TestArrayFieldRoundTrip(t *testing.T) {
	for _, items := range [][]string{
		{},
		{"Wifi"},
		{"Wifi", "Pool", "Airport shuttle"},
	} {
		text := strings.Join(items, ", ")
		if got := app.SplitList(text); !reflect.DeepEqual(got, items) {
			t.Errorf("round trip of %v gave %v", items, got)
		}
		// idempotent: re-joining the split text gives the same text
		if again := strings.Join(app.SplitList(text), ", "); again != text {
			t.Errorf("join(split(%q)) = %q", text, again)
		}
	}
}

func TestSetAndToggle(t *testing.T) {
	var f app.HotelForm
	if !f.Set(app.FieldGeoLat, "11.6") || f.GeoLat != "11.6" {
		t.Fatalf("set geo_lat: %+v", f)
	}
	if f.Set(app.FieldPetsAllowed, "1") {
		t.Fatalf("checkboxes are toggled, not set")
	}
	if f.Set("is_active", "1") {
		t.Fatalf("unknown field accepted")
	}
	if !f.Toggle(app.FieldPetsAllowed) || !f.PetsAllowed {
		t.Fatalf("toggle pets: %+v", f)
	}
	f.Toggle(app.FieldPetsAllowed)
	if f.PetsAllowed {
		t.Fatalf("second toggle should clear")
	}
	if f.Toggle(app.FieldName) {
		t.Fatalf("text field toggled")
	}
}

func TestApplyValues_CheckboxesFollowPresence(t *testing.T) {
	f := app.FormFromListing(sampleListing()) // children allowed, pets not
	f.ApplyValues(url.Values{
		"name":         {"Renamed"},
		"pets_allowed": {"on"},
		"edit_id":      {"abc"},
	})
	if f.Name != "Renamed" {
		t.Fatalf("name = %q", f.Name)
	}
	if !f.PetsAllowed || f.ChildrenAllowed {
		t.Fatalf("pets %v children %v", f.PetsAllowed, f.ChildrenAllowed)
	}
	if f.Description == "" {
		t.Fatalf("fields not posted must be kept")
	}
}
