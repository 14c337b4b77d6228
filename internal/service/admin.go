package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/travelplanner/backend/internal/domain"
	"github.com/travelplanner/backend/internal/repo"
)

const (
	popularCitiesLimit     = 15
	popularActivitiesLimit = 12
	trendMonths            = 6
)

// AdminService backs the admin dashboard and user management.
type AdminService struct {
	users     repo.UserRepo
	trips     repo.TripRepo
	analytics repo.AnalyticsRepo
	now       Clock
}

// NewAdminService constructs an AdminService backed by the provided repos.
func NewAdminService(users repo.UserRepo, trips repo.TripRepo, analytics repo.AnalyticsRepo, now Clock) *AdminService {
	return &AdminService{users: users, trips: trips, analytics: analytics, now: now}
}

// ListUsers returns every user with trip counts, newest registration first.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.UserWithTripCounts, error) {
	users, err := s.users.ListWithTripCounts(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("service.AdminService.ListUsers: %w", err)
	}
	if users == nil {
		return []domain.UserWithTripCounts{}, nil
	}
	return users, nil
}

// ListTrips returns one page of trips, newest first, and the total count.
func (s *AdminService) ListTrips(ctx context.Context, status string, p domain.PaginationParams) ([]domain.AdminTrip, int64, error) {
	now := s.now()
	trips, total, err := s.trips.ListPaged(ctx, status, now, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.AdminService.ListTrips: %w", err)
	}
	out := make([]domain.AdminTrip, len(trips))
	for i, t := range trips {
		t.Trip = t.Trip.WithStatus(now)
		out[i] = t
	}
	return out, total, nil
}

// PopularCities returns the 15 most visited destinations.
func (s *AdminService) PopularCities(ctx context.Context) ([]domain.CityStat, error) {
	cities, err := s.analytics.PopularCities(ctx, popularCitiesLimit)
	if err != nil {
		return nil, fmt.Errorf("service.AdminService.PopularCities: %w", err)
	}
	return cities, nil
}

// PopularActivities returns the 12 most planned activities.
func (s *AdminService) PopularActivities(ctx context.Context) ([]domain.ActivityStat, error) {
	acts, err := s.analytics.PopularActivities(ctx, popularActivitiesLimit)
	if err != nil {
		return nil, fmt.Errorf("service.AdminService.PopularActivities: %w", err)
	}
	return acts, nil
}

// Overview assembles the dashboard. Users created since the first day of the
// previous month count as active; trends start six months back.
func (s *AdminService) Overview(ctx context.Context) (domain.Overview, error) {
	now := s.now()
	var (
		o   domain.Overview
		err error
	)

	if o.Totals, err = s.analytics.Totals(ctx, now, domain.StartOfMonth(now, 1)); err != nil {
		return domain.Overview{}, fmt.Errorf("service.AdminService.Overview: %w", err)
	}
	o.Totals.CompletionRate = domain.CompletionRate(o.Totals.CompletedTrips, o.Totals.Trips)

	since := domain.StartOfMonth(now, trendMonths)
	if o.Trends.UserRegistrations, err = s.analytics.UserTrend(ctx, since); err != nil {
		return domain.Overview{}, fmt.Errorf("service.AdminService.Overview: %w", err)
	}
	if o.Trends.TripCreations, err = s.analytics.TripTrend(ctx, since); err != nil {
		return domain.Overview{}, fmt.Errorf("service.AdminService.Overview: %w", err)
	}
	if o.Budget, err = s.analytics.BudgetStats(ctx); err != nil {
		return domain.Overview{}, fmt.Errorf("service.AdminService.Overview: %w", err)
	}
	if o.Duration, err = s.analytics.DurationStats(ctx); err != nil {
		return domain.Overview{}, fmt.Errorf("service.AdminService.Overview: %w", err)
	}

	sizes, err := s.analytics.PartySizeCounts(ctx)
	if err != nil {
		return domain.Overview{}, fmt.Errorf("service.AdminService.Overview: %w", err)
	}
	o.GroupSizes = groupSizeHistogram(sizes)
	return o, nil
}

// DeleteUser removes a user and everything they own.
// Returns domain.ErrNotFound if the user does not exist.
func (s *AdminService) DeleteUser(ctx context.Context, id uuid.UUID) (domain.UserDeletion, error) {
	del, err := s.users.DeleteCascade(ctx, id)
	if err != nil {
		return domain.UserDeletion{}, fmt.Errorf("service.AdminService.DeleteUser: %w", err)
	}
	return del, nil
}

// groupSizeHistogram buckets party sizes, largest bucket first. Empty buckets
// are omitted.
func groupSizeHistogram(counts map[int]int) []domain.GroupSize {
	buckets := map[string]int{}
	for people, n := range counts {
		buckets[domain.GroupCategory(people)] += n
	}
	out := make([]domain.GroupSize, 0, len(buckets))
	for cat, n := range buckets {
		out = append(out, domain.GroupSize{Category: cat, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}
