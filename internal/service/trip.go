package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/travelplanner/backend/internal/domain"
	"github.com/travelplanner/backend/internal/repo"
)

// TripService implements business logic for Trip operations.
// Every trip it returns carries a status derived at the service clock.
type TripService struct {
	repo repo.TripRepo
	now  Clock
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo, now Clock) *TripService {
	return &TripService{repo: r, now: now}
}

// Create validates and persists a new trip.
// Returns domain.ErrValidation for missing fields and domain.ErrNotFound when
// the creator does not exist.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip.PlaceName = strings.TrimSpace(trip.PlaceName)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	created, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created.WithStatus(s.now()), nil
}

// ListByUser returns all of a user's trips.
func (s *TripService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	trips, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListByUser: %w", err)
	}
	return stampStatus(trips, s.now()), nil
}

// ListByUserAndStatus returns a user's trips in the given status, narrowed by
// f. status must be one of upcoming, ongoing, or completed.
func (s *TripService) ListByUserAndStatus(ctx context.Context, userID uuid.UUID, status string, f domain.TripFilter) ([]domain.Trip, error) {
	st, ok := domain.ParseTripStatus(status)
	if !ok {
		return nil, fmt.Errorf("service.TripService.ListByUserAndStatus: %w: invalid status %q", domain.ErrValidation, status)
	}
	if f.MinPeople != nil && f.MaxPeople != nil && *f.MinPeople > *f.MaxPeople {
		return nil, fmt.Errorf("service.TripService.ListByUserAndStatus: %w: minPeople must not exceed maxPeople", domain.ErrValidation)
	}
	f.Status = st
	f.PlaceName = strings.TrimSpace(f.PlaceName)

	now := s.now()
	trips, err := s.repo.ListByUserFiltered(ctx, userID, f, now)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListByUserAndStatus: %w", err)
	}
	return stampStatus(trips, now), nil
}

// Search finds trips whose place name contains query, ignoring case.
// A nil userID searches every user's trips.
func (s *TripService) Search(ctx context.Context, query string, userID *uuid.UUID) ([]domain.Trip, error) {
	trips, err := s.repo.Search(ctx, strings.TrimSpace(query), userID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Search: %w", err)
	}
	return stampStatus(trips, s.now()), nil
}

// validateTrip enforces the trip invariants.
//   - placeName, startDate, endDate, numberOfPeople, and createdBy are required.
//   - numberOfPeople is at least 1.
//   - endDate is not before startDate; a same-day trip is valid.
func validateTrip(t domain.Trip) error {
	switch {
	case t.PlaceName == "":
		return fmt.Errorf("%w: placeName is required", domain.ErrValidation)
	case t.StartDate.IsZero():
		return fmt.Errorf("%w: startDate is required", domain.ErrValidation)
	case t.EndDate.IsZero():
		return fmt.Errorf("%w: endDate is required", domain.ErrValidation)
	case t.NumberOfPeople < 1:
		return fmt.Errorf("%w: numberOfPeople must be at least 1", domain.ErrValidation)
	case t.CreatedBy == uuid.Nil:
		return fmt.Errorf("%w: createdBy is required", domain.ErrValidation)
	case t.EndDate.Before(t.StartDate):
		return fmt.Errorf("%w: endDate must not be before startDate", domain.ErrValidation)
	}
	return nil
}
