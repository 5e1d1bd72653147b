package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"andaman_vendor/internal/domain"
)

var (
	ErrIslandRequired     = &ValidationError{Field: FieldIslandID, Message: "Please select an island."}
	ErrStarRatingRequired = &ValidationError{Field: FieldStarRating, Message: "Please select a star rating."}
)

// ValidationError rejects a submit before any request is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string       { return fmt.Sprintf("invalid %s: %s", e.Field, e.Message) }
func (e *ValidationError) UserMessage() string { return e.Message }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// BuildUpdate reverses FormFromListing into the PUT body.
func BuildUpdate(f HotelForm) (domain.HotelUpdate, error) {
	if strings.TrimSpace(f.IslandID) == "" {
		return domain.HotelUpdate{}, ErrIslandRequired
	}
	if strings.TrimSpace(f.StarRating) == "" {
		return domain.HotelUpdate{}, ErrStarRatingRequired
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if err != nil {
		return domain.HotelUpdate{}, &ValidationError{Field: FieldPrice, Message: "Price must be a number."}
	}
	island, err := strconv.ParseInt(strings.TrimSpace(f.IslandID), 10, 64)
	if err != nil {
		return domain.HotelUpdate{}, &ValidationError{Field: FieldIslandID, Message: "Island must be a valid selection."}
	}
	stars, err := strconv.Atoi(strings.TrimSpace(f.StarRating))
	if err != nil {
		return domain.HotelUpdate{}, &ValidationError{Field: FieldStarRating, Message: "Star rating must be a whole number."}
	}

	u := domain.HotelUpdate{
		Name:                  f.Name,
		Description:           f.Description,
		Price:                 price,
		CancellationPolicy:    f.CancellationPolicy,
		Images:                f.Images,
		IslandID:              island,
		StarRating:            stars,
		CheckInTime:           f.CheckInTime,
		CheckOutTime:          f.CheckOutTime,
		Facilities:            SplitList(f.Facilities),
		MealPlans:             SplitList(f.MealPlans),
		PetsAllowed:           f.PetsAllowed,
		ChildrenAllowed:       f.ChildrenAllowed,
		AccessibilityFeatures: f.AccessibilityFeatures,
		StreetAddress:         f.StreetAddress,
	}

	if s := strings.TrimSpace(f.TotalRooms); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return domain.HotelUpdate{}, &ValidationError{Field: FieldTotalRooms, Message: "Total rooms must be a whole number."}
		}
		u.TotalRooms = &n
	}
	if u.GeoLat, err = optionalFloat(FieldGeoLat, f.GeoLat); err != nil {
		return domain.HotelUpdate{}, err
	}
	if u.GeoLng, err = optionalFloat(FieldGeoLng, f.GeoLng); err != nil {
		return domain.HotelUpdate{}, err
	}
	return u, nil
}

// optionalFloat maps "" to nil so the field is sent as an explicit null.
func optionalFloat(field, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, &ValidationError{Field: field, Message: "Coordinates must be numbers."}
	}
	return &v, nil
}
