package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/travelplanner/backend/internal/domain"
	"github.com/travelplanner/backend/internal/repo"
)

// upcomingWindowDays is how far ahead GetUpcoming looks.
const upcomingWindowDays = 30

// CalendarService projects a user's trips onto calendar months.
type CalendarService struct {
	trips repo.TripRepo
	now   Clock
}

// NewCalendarService constructs a CalendarService backed by the provided repo.
func NewCalendarService(trips repo.TripRepo, now Clock) *CalendarService {
	return &CalendarService{trips: trips, now: now}
}

// MonthView returns the user's trips overlapping one month. Nil year or month
// default to the current one; month must be 1..12.
func (s *CalendarService) MonthView(ctx context.Context, userID uuid.UUID, year, month *int) (domain.MonthView, error) {
	now := s.now().UTC()
	y, m := now.Year(), int(now.Month())
	if year != nil {
		y = *year
	}
	if month != nil {
		m = *month
	}
	if m < 1 || m > 12 {
		return domain.MonthView{}, fmt.Errorf("service.CalendarService.MonthView: %w: month must be between 1 and 12", domain.ErrValidation)
	}
	if y < 1 || y > 9999 {
		return domain.MonthView{}, fmt.Errorf("service.CalendarService.MonthView: %w: year out of range", domain.ErrValidation)
	}

	from, to := domain.MonthRange(y, m)
	trips, err := s.trips.ListOverlapping(ctx, userID, from, to)
	if err != nil {
		return domain.MonthView{}, fmt.Errorf("service.CalendarService.MonthView: %w", err)
	}

	view := domain.MonthView{Month: m, Year: y, Events: make([]domain.CalendarEvent, 0, len(trips))}
	for _, t := range trips {
		view.Events = append(view.Events, domain.NewCalendarEvent(t))
	}
	return view, nil
}

// Upcoming returns trips starting within the next 30 days, soonest first.
func (s *CalendarService) Upcoming(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	now := s.now()
	trips, err := s.trips.ListStartingBetween(ctx, userID, now, now.AddDate(0, 0, upcomingWindowDays))
	if err != nil {
		return nil, fmt.Errorf("service.CalendarService.Upcoming: %w", err)
	}
	return stampStatus(trips, now), nil
}
