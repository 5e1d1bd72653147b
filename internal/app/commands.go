package app

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"andaman_vendor/internal/domain"
)

var hhmm = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// NewValidator returns a validator that knows the "hhmm" time-of-day tag.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmm.MatchString(fl.Field().String())
	})
	return v
}

// UpdateService serves the listings API write path.
type UpdateService struct {
	q        *QueryService
	repo     domain.ListingStore
	cache    domain.Cache
	validate *validator.Validate
}

func NewUpdateService(q *QueryService, r domain.ListingStore, c domain.Cache) *UpdateService {
	return &UpdateService{q: q, repo: r, cache: c, validate: NewValidator()}
}

// UpdateHotel applies u to a hotel owned by p. A hotel owned by someone else
// reports domain.ErrNotFound, same as a missing one.
func (s *UpdateService) UpdateHotel(ctx context.Context, p domain.Principal, serviceID int64, u domain.HotelUpdate) error {
	if err := s.check(u); err != nil {
		return err
	}
	vendor, err := s.q.authorizeHotelVendor(ctx, p)
	if err != nil {
		return err
	}
	ok, err := s.repo.IslandExists(ctx, u.IslandID)
	if err != nil {
		return err
	}
	if !ok {
		return &ValidationError{Field: FieldIslandID, Message: "Selected island does not exist."}
	}
	if err := s.repo.UpdateHotel(ctx, vendor.ID, serviceID, u); err != nil {
		return err
	}
	// Drop the cached record so the next read reflects the update.
	if s.cache != nil {
		_ = s.cache.Del(ctx, hotelKey(serviceID))
	}
	return nil
}

func (s *UpdateService) check(u domain.HotelUpdate) error {
	if strings.TrimSpace(u.Name) == "" {
		return &ValidationError{Field: FieldName, Message: "Name is required."}
	}
	err := s.validate.Struct(u)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return &ValidationError{Field: fe.Field(), Message: fieldMessage(fe)}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", fe.Field())
	case "hhmm":
		return fmt.Sprintf("%s must be a time in HH:MM format.", fe.Field())
	case "min", "max", "gte", "gt":
		return fmt.Sprintf("%s is out of range.", fe.Field())
	case "latitude", "longitude":
		return fmt.Sprintf("%s is not a valid coordinate.", fe.Field())
	}
	return fmt.Sprintf("%s is invalid.", fe.Field())
}
