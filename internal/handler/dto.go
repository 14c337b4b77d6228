package handler

import (
	"bytes"
	"fmt"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/travelplanner/backend/internal/domain"
	"github.com/travelplanner/backend/internal/service"
)

// flexTime accepts either an RFC 3339 timestamp or a bare YYYY-MM-DD date.
// Clients send both depending on whether a time picker is involved.
type flexTime struct {
	time.Time
}

func (t *flexTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if err := t.Time.UnmarshalJSON(b); err == nil {
		return nil
	}
	var d openapi_types.Date
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("date %s: want YYYY-MM-DD or RFC 3339", b)
	}
	t.Time = d.Time
	return nil
}

// timeOf returns the wrapped time, or the zero time for nil.
func timeOf(t *flexTime) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.Time
}

type signupRequest struct {
	Username    string `json:"username" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	City        string `json:"city" validate:"required"`
	Country     string `json:"country" validate:"required"`
	ProfilePic  string `json:"profilePic"`
}

func (req signupRequest) toInput() service.SignupInput {
	return service.SignupInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		City:        req.City,
		Country:     req.Country,
		ProfilePic:  req.ProfilePic,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createTripRequest struct {
	PlaceName      string    `json:"placeName" validate:"required"`
	StartDate      *flexTime `json:"startDate" validate:"required"`
	EndDate        *flexTime `json:"endDate" validate:"required"`
	NumberOfPeople *int      `json:"numberOfPeople" validate:"required,min=1"`
	Description    string    `json:"description"`
	CreatedBy      string    `json:"createdBy" validate:"required"`
}

// sectionRequest is one element of the itinerary replace body.
// Section, Budget, and Info are optional.
type sectionRequest struct {
	Section    *int      `json:"section"`
	StartDate  *flexTime `json:"startDate" validate:"required"`
	EndDate    *flexTime `json:"endDate" validate:"required"`
	Place      string    `json:"place" validate:"required"`
	Activities []string  `json:"activities" validate:"required"`
	Budget     *float64  `json:"budget"`
	Info       *string   `json:"info"`
}

func (req sectionRequest) toDomain() domain.Section {
	s := domain.Section{
		StartDate:  timeOf(req.StartDate),
		EndDate:    timeOf(req.EndDate),
		Place:      req.Place,
		Activities: req.Activities,
	}
	if req.Section != nil {
		s.Ordinal = *req.Section
	}
	if req.Budget != nil {
		s.Budget = *req.Budget
	}
	if req.Info != nil {
		s.Info = *req.Info
	}
	return s
}

type shareTripRequest struct {
	UserID string `json:"userId" validate:"required"`
	TripID string `json:"tripId" validate:"required"`
}

type addPlaceRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Images      []string `json:"images" validate:"required,min=1,dive,required"`
	Location    string   `json:"location" validate:"required"`
	AddedBy     string   `json:"addedBy" validate:"required"`
}

// updateProfileRequest lists the only fields a profile update may touch.
// password and role in the body are ignored by the decoder.
type updateProfileRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email" validate:"omitempty,email"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	City        *string `json:"city"`
	Country     *string `json:"country"`
	ProfilePic  *string `json:"profilePic"`
}

func (req updateProfileRequest) toPatch() domain.UserPatch {
	return domain.UserPatch{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		City:        req.City,
		Country:     req.Country,
		ProfilePic:  req.ProfilePic,
	}
}

// messageResponse is the {"message": ...} body used by write endpoints,
// optionally carrying one extra keyed payload.
func messageResponse(message, key string, payload any) map[string]any {
	body := map[string]any{"message": message}
	if key != "" {
		body[key] = payload
	}
	return body
}
