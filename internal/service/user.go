package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/travelplanner/backend/internal/domain"
	"github.com/travelplanner/backend/internal/repo"
)

// UserService serves a user's own profile.
type UserService struct {
	users repo.UserRepo
	trips repo.TripRepo
	now   Clock
}

// NewUserService constructs a UserService backed by the provided repos.
func NewUserService(users repo.UserRepo, trips repo.TripRepo, now Clock) *UserService {
	return &UserService{users: users, trips: trips, now: now}
}

// GetProfile returns the user with their trips split by derived status.
func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (domain.Profile, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service.UserService.GetProfile: %w", err)
	}
	trips, err := s.trips.ListByUser(ctx, id)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("service.UserService.GetProfile: trips: %w", err)
	}

	p := domain.Profile{
		User:          u,
		UpcomingTrips: []domain.Trip{},
		CurrentTrips:  []domain.Trip{},
		PastTrips:     []domain.Trip{},
	}
	for _, t := range stampStatus(trips, s.now()) {
		switch t.Status {
		case domain.StatusUpcoming:
			p.UpcomingTrips = append(p.UpcomingTrips, t)
		case domain.StatusOngoing:
			p.CurrentTrips = append(p.CurrentTrips, t)
		case domain.StatusCompleted:
			p.PastTrips = append(p.PastTrips, t)
		}
	}
	return p, nil
}

// UpdateProfile applies patch to the user. Password, role, and id cannot be
// changed here; UserPatch has no fields for them.
// Returns domain.ErrConflict when the new username or email is taken.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error) {
	patch = normalizePatch(patch)
	for name, v := range map[string]*string{"username": patch.Username, "email": patch.Email} {
		if v != nil && *v == "" {
			return domain.User{}, fmt.Errorf("service.UserService.UpdateProfile: %w: %s must not be empty", domain.ErrValidation, name)
		}
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.UpdateProfile: %w", err)
	}

	updated, err := s.users.Update(ctx, patch.Apply(u))
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.UpdateProfile: %w", err)
	}
	return updated, nil
}

// normalizePatch trims the login identifiers and lowercases the email the
// same way Signup does, so Login keeps finding the account.
func normalizePatch(p domain.UserPatch) domain.UserPatch {
	if p.Username != nil {
		username := strings.TrimSpace(*p.Username)
		p.Username = &username
	}
	if p.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*p.Email))
		p.Email = &email
	}
	return p
}
