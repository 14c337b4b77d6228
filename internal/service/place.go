package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/travelplanner/backend/internal/domain"
	"github.com/travelplanner/backend/internal/repo"
)

// UserLookup resolves the acting user for role checks.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// PlaceService manages admin-curated suggested places.
type PlaceService struct {
	places repo.PlaceRepo
	users  UserLookup
}

// NewPlaceService constructs a PlaceService. users is consulted for the
// adder's role on every write.
func NewPlaceService(places repo.PlaceRepo, users UserLookup) *PlaceService {
	return &PlaceService{places: places, users: users}
}

// Add stores a suggested place on behalf of place.AddedBy.
// Returns domain.ErrValidation for missing fields or no images and
// domain.ErrForbidden unless the adder is an existing admin.
func (s *PlaceService) Add(ctx context.Context, place domain.SuggestedPlace) (domain.SuggestedPlace, error) {
	place.Name = strings.TrimSpace(place.Name)
	place.Description = strings.TrimSpace(place.Description)
	place.Location = strings.TrimSpace(place.Location)
	if err := validatePlace(place); err != nil {
		return domain.SuggestedPlace{}, fmt.Errorf("service.PlaceService.Add: %w", err)
	}

	adder, err := s.users.GetByID(ctx, place.AddedBy)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.SuggestedPlace{}, fmt.Errorf("service.PlaceService.Add: %w: unknown user", domain.ErrForbidden)
	case err != nil:
		return domain.SuggestedPlace{}, fmt.Errorf("service.PlaceService.Add: %w", err)
	case !adder.IsAdmin():
		return domain.SuggestedPlace{}, fmt.Errorf("service.PlaceService.Add: %w: admin role required", domain.ErrForbidden)
	}

	created, err := s.places.Create(ctx, place)
	if err != nil {
		return domain.SuggestedPlace{}, fmt.Errorf("service.PlaceService.Add: %w", err)
	}
	created.Adder = &domain.UserSummary{Username: adder.Username, Role: adder.Role}
	return created, nil
}

// List returns every suggested place.
func (s *PlaceService) List(ctx context.Context) ([]domain.SuggestedPlace, error) {
	places, err := s.places.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.PlaceService.List: %w", err)
	}
	if places == nil {
		return []domain.SuggestedPlace{}, nil
	}
	return places, nil
}

func validatePlace(p domain.SuggestedPlace) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	case p.Description == "":
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	case p.Location == "":
		return fmt.Errorf("%w: location is required", domain.ErrValidation)
	case len(p.Images) == 0:
		return fmt.Errorf("%w: at least one image is required", domain.ErrValidation)
	case p.AddedBy == uuid.Nil:
		return fmt.Errorf("%w: addedBy is required", domain.ErrValidation)
	}
	for i, img := range p.Images {
		if strings.TrimSpace(img) == "" {
			return fmt.Errorf("%w: image %d is empty", domain.ErrValidation, i+1)
		}
	}
	return nil
}
