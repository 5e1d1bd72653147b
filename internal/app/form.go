package app

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"andaman_vendor/internal/domain"
)

const (
	DefaultCheckIn  = "14:00"
	DefaultCheckOut = "12:00"
)

// HotelForm is the editable mirror of a HotelListing.
type HotelForm struct {
	Name                  string
	Description           string
	Price                 string
	CancellationPolicy    string
	Images                string
	IslandID              string
	StarRating            string
	CheckInTime           string
	CheckOutTime          string
	TotalRooms            string
	Facilities            string
	MealPlans             string
	PetsAllowed           bool
	ChildrenAllowed       bool
	AccessibilityFeatures string
	StreetAddress         string
	GeoLat                string
	GeoLng                string
}

// Form field names as posted by the edit page.
const (
	FieldName                  = "name"
	FieldDescription           = "description"
	FieldPrice                 = "price"
	FieldCancellationPolicy    = "cancellation_policy"
	FieldImages                = "images"
	FieldIslandID              = "island_id"
	FieldStarRating            = "star_rating"
	FieldCheckInTime           = "check_in_time"
	FieldCheckOutTime          = "check_out_time"
	FieldTotalRooms            = "total_rooms"
	FieldFacilities            = "facilities"
	FieldMealPlans             = "meal_plans"
	FieldPetsAllowed           = "pets_allowed"
	FieldChildrenAllowed       = "children_allowed"
	FieldAccessibilityFeatures = "accessibility_features"
	FieldStreetAddress         = "street_address"
	FieldGeoLat                = "geo_lat"
	FieldGeoLng                = "geo_lng"
)

// FormFromListing builds a fresh form from a fetched record. It never merges
// into a previous form.
func FormFromListing(h *domain.HotelListing) HotelForm {
	return HotelForm{
		Name:                  h.Name,
		Description:           deref(h.Description),
		Price:                 strconv.FormatFloat(h.Price, 'f', -1, 64),
		CancellationPolicy:    deref(h.CancellationPolicy),
		Images:                deref(h.Images),
		IslandID:              strconv.FormatInt(h.IslandID, 10),
		StarRating:            strconv.Itoa(h.StarRating),
		CheckInTime:           derefOr(h.CheckInTime, DefaultCheckIn),
		CheckOutTime:          derefOr(h.CheckOutTime, DefaultCheckOut),
		TotalRooms:            optInt(h.TotalRooms),
		Facilities:            arrayFieldText(h.ServiceID, FieldFacilities, h.Facilities),
		MealPlans:             arrayFieldText(h.ServiceID, FieldMealPlans, h.MealPlans),
		PetsAllowed:           h.PetsAllowed == 1,
		ChildrenAllowed:       h.ChildrenAllowed == 1,
		AccessibilityFeatures: deref(h.AccessibilityFeatures),
		StreetAddress:         deref(h.StreetAddress),
		GeoLat:                optFloat(h.GeoLat),
		GeoLng:                optFloat(h.GeoLng),
	}
}

// ParseArrayField decodes a stored JSON array. Malformed text or a non-array
// value yields (nil, false) instead of an error.
func ParseArrayField(raw string) ([]string, bool) {
	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case string:
			out = append(out, v)
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out, true
}

func arrayFieldText(serviceID int64, field string, raw *string) string {
	if raw == nil || *raw == "" {
		return ""
	}
	items, ok := ParseArrayField(*raw)
	if !ok {
		log.Warn().
			Int64("service_id", serviceID).
			Str("field", field).
			Msg("stored array field is not a JSON array; editing as empty")
		return ""
	}
	return strings.Join(items, ", ")
}

// SplitList turns the comma-separated editing form back into a list.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (f *HotelForm) strField(name string) *string {
	switch name {
	case FieldName:
		return &f.Name
	case FieldDescription:
		return &f.Description
	case FieldPrice:
		return &f.Price
	case FieldCancellationPolicy:
		return &f.CancellationPolicy
	case FieldImages:
		return &f.Images
	case FieldIslandID:
		return &f.IslandID
	case FieldStarRating:
		return &f.StarRating
	case FieldCheckInTime:
		return &f.CheckInTime
	case FieldCheckOutTime:
		return &f.CheckOutTime
	case FieldTotalRooms:
		return &f.TotalRooms
	case FieldFacilities:
		return &f.Facilities
	case FieldMealPlans:
		return &f.MealPlans
	case FieldAccessibilityFeatures:
		return &f.AccessibilityFeatures
	case FieldStreetAddress:
		return &f.StreetAddress
	case FieldGeoLat:
		return &f.GeoLat
	case FieldGeoLng:
		return &f.GeoLng
	}
	return nil
}

func (f *HotelForm) boolField(name string) *bool {
	switch name {
	case FieldPetsAllowed:
		return &f.PetsAllowed
	case FieldChildrenAllowed:
		return &f.ChildrenAllowed
	}
	return nil
}

// Set replaces a text field. It reports false for unknown or checkbox fields.
func (f *HotelForm) Set(name, value string) bool {
	p := f.strField(name)
	if p == nil {
		return false
	}
	*p = value
	return true
}

// Toggle flips a checkbox field.
func (f *HotelForm) Toggle(name string) bool {
	p := f.boolField(name)
	if p == nil {
		return false
	}
	*p = !*p
	return true
}

var checkboxFields = []string{FieldPetsAllowed, FieldChildrenAllowed}

// ApplyValues applies a posted HTML form. Unchecked checkboxes are not posted,
// so their state is taken from presence.
func (f *HotelForm) ApplyValues(v url.Values) {
	for name, vals := range v {
		if len(vals) == 0 {
			continue
		}
		f.Set(name, vals[0])
	}
	for _, name := range checkboxFields {
		*f.boolField(name) = v.Has(name)
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefOr(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}

func optInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func optFloat(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
