package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/travelplanner/backend/internal/domain"
	"github.com/travelplanner/backend/internal/repo"
)

// ItineraryService manages the day-by-day sections of a trip.
type ItineraryService struct {
	sections repo.SectionRepo
}

// NewItineraryService constructs an ItineraryService backed by the provided repo.
func NewItineraryService(sections repo.SectionRepo) *ItineraryService {
	return &ItineraryService{sections: sections}
}

// ReplaceSections swaps a trip's whole itinerary for sections. Readers see
// either the old list or the new one, never a mix.
// Returns domain.ErrValidation for an empty list or an incomplete section and
// domain.ErrNotFound when the trip does not exist.
func (s *ItineraryService) ReplaceSections(ctx context.Context, tripID uuid.UUID, sections []domain.Section) ([]domain.Section, error) {
	if tripID == uuid.Nil {
		return nil, fmt.Errorf("service.ItineraryService.ReplaceSections: %w: tripId is required", domain.ErrValidation)
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("service.ItineraryService.ReplaceSections: %w: at least one section is required", domain.ErrValidation)
	}

	prepared := make([]domain.Section, len(sections))
	for i, sec := range sections {
		sec.Place = strings.TrimSpace(sec.Place)
		if err := validateSection(i, sec); err != nil {
			return nil, fmt.Errorf("service.ItineraryService.ReplaceSections: %w", err)
		}
		if sec.Ordinal == 0 {
			sec.Ordinal = i + 1
		}
		sec.TripID = tripID
		prepared[i] = sec
	}

	saved, err := s.sections.Replace(ctx, tripID, prepared)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ReplaceSections: %w", err)
	}
	return saved, nil
}

// GetSectionsWithSummary returns a trip's sections in ordinal order with the
// derived budget, place, activity, and day totals. An unknown trip yields an
// empty list.
func (s *ItineraryService) GetSectionsWithSummary(ctx context.Context, tripID uuid.UUID) ([]domain.Section, domain.ItinerarySummary, error) {
	sections, err := s.sections.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, domain.ItinerarySummary{}, fmt.Errorf("service.ItineraryService.GetSectionsWithSummary: %w", err)
	}
	if sections == nil {
		sections = []domain.Section{}
	}
	return sections, domain.Summarize(sections), nil
}

// ClearSections removes every section of a trip.
func (s *ItineraryService) ClearSections(ctx context.Context, tripID uuid.UUID) (int64, error) {
	n, err := s.sections.DeleteByTrip(ctx, tripID)
	if err != nil {
		return 0, fmt.Errorf("service.ItineraryService.ClearSections: %w", err)
	}
	return n, nil
}

func validateSection(i int, s domain.Section) error {
	switch {
	case s.Place == "":
		return fmt.Errorf("%w: section %d: place is required", domain.ErrValidation, i+1)
	case s.StartDate.IsZero():
		return fmt.Errorf("%w: section %d: startDate is required", domain.ErrValidation, i+1)
	case s.EndDate.IsZero():
		return fmt.Errorf("%w: section %d: endDate is required", domain.ErrValidation, i+1)
	case s.Activities == nil:
		return fmt.Errorf("%w: section %d: activities is required", domain.ErrValidation, i+1)
	case s.EndDate.Before(s.StartDate):
		return fmt.Errorf("%w: section %d: endDate must not be before startDate", domain.ErrValidation, i+1)
	case s.Budget < 0:
		return fmt.Errorf("%w: section %d: budget must not be negative", domain.ErrValidation, i+1)
	}
	return nil
}
