package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/travelplanner/backend/internal/domain"
	"github.com/travelplanner/backend/internal/repo"
)

// CommunityService publishes trip snapshots to the shared feed.
type CommunityService struct {
	trips    repo.TripRepo
	sections repo.SectionRepo
	messages repo.CommunityRepo
}

// NewCommunityService constructs a CommunityService backed by the provided repos.
func NewCommunityService(trips repo.TripRepo, sections repo.SectionRepo, messages repo.CommunityRepo) *CommunityService {
	return &CommunityService{trips: trips, sections: sections, messages: messages}
}

// ShareTrip copies a trip and its current sections into a new message.
// The message never changes afterwards, whatever happens to the source trip.
// Returns domain.ErrNotFound when the trip or the poster does not exist.
func (s *CommunityService) ShareTrip(ctx context.Context, userID, tripID uuid.UUID) (domain.CommunityMessage, error) {
	if userID == uuid.Nil || tripID == uuid.Nil {
		return domain.CommunityMessage{}, fmt.Errorf("service.CommunityService.ShareTrip: %w: userId and tripId are required", domain.ErrValidation)
	}

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.CommunityMessage{}, fmt.Errorf("service.CommunityService.ShareTrip: trip: %w", err)
	}
	sections, err := s.sections.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.CommunityMessage{}, fmt.Errorf("service.CommunityService.ShareTrip: sections: %w", err)
	}

	msg, err := s.messages.Create(ctx, domain.NewCommunityMessage(userID, trip, sections))
	if err != nil {
		return domain.CommunityMessage{}, fmt.Errorf("service.CommunityService.ShareTrip: %w", err)
	}
	return msg, nil
}

// List returns every message newest first.
func (s *CommunityService) List(ctx context.Context) ([]domain.CommunityMessage, error) {
	msgs, err := s.messages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CommunityService.List: %w", err)
	}
	if msgs == nil {
		return []domain.CommunityMessage{}, nil
	}
	return msgs, nil
}
