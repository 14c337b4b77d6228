package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/travelplanner/backend/internal/domain"
	"github.com/travelplanner/backend/internal/repo"
)

// Hand-written test doubles for the repo interfaces. Each method is a
// function field; set only the ones a test needs.

type mockTripRepo struct {
	create              func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID             func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list                func(ctx context.Context) ([]domain.Trip, error)
	listByUser          func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	listByUserFiltered  func(ctx context.Context, userID uuid.UUID, f domain.TripFilter, now time.Time) ([]domain.Trip, error)
	search              func(ctx context.Context, query string, userID *uuid.UUID) ([]domain.Trip, error)
	listOverlapping     func(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Trip, error)
	listStartingBetween func(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Trip, error)
	listPaged           func(ctx context.Context, status string, now time.Time, p domain.PaginationParams) ([]domain.AdminTrip, int64, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockTripRepo) ListByUserFiltered(ctx context.Context, userID uuid.UUID, f domain.TripFilter, now time.Time) ([]domain.Trip, error) {
	return m.listByUserFiltered(ctx, userID, f, now)
}
func (m *mockTripRepo) Search(ctx context.Context, query string, userID *uuid.UUID) ([]domain.Trip, error) {
	return m.search(ctx, query, userID)
}
func (m *mockTripRepo) ListOverlapping(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Trip, error) {
	return m.listOverlapping(ctx, userID, from, to)
}
func (m *mockTripRepo) ListStartingBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Trip, error) {
	return m.listStartingBetween(ctx, userID, from, to)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, status string, now time.Time, p domain.PaginationParams) ([]domain.AdminTrip, int64, error) {
	return m.listPaged(ctx, status, now, p)
}

type mockUserRepo struct {
	create             func(ctx context.Context, u domain.User) (domain.User, error)
	getByID            func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByEmail         func(ctx context.Context, email string) (domain.User, error)
	update             func(ctx context.Context, u domain.User) (domain.User, error)
	listWithTripCounts func(ctx context.Context, now time.Time) ([]domain.UserWithTripCounts, error)
	deleteCascade      func(ctx context.Context, id uuid.UUID) (domain.UserDeletion, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.create(ctx, u)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) Update(ctx context.Context, u domain.User) (domain.User, error) {
	return m.update(ctx, u)
}
func (m *mockUserRepo) ListWithTripCounts(ctx context.Context, now time.Time) ([]domain.UserWithTripCounts, error) {
	return m.listWithTripCounts(ctx, now)
}
func (m *mockUserRepo) DeleteCascade(ctx context.Context, id uuid.UUID) (domain.UserDeletion, error) {
	return m.deleteCascade(ctx, id)
}

type mockSectionRepo struct {
	replace      func(ctx context.Context, tripID uuid.UUID, sections []domain.Section) ([]domain.Section, error)
	listByTrip   func(ctx context.Context, tripID uuid.UUID) ([]domain.Section, error)
	deleteByTrip func(ctx context.Context, tripID uuid.UUID) (int64, error)
}

func (m *mockSectionRepo) Replace(ctx context.Context, tripID uuid.UUID, sections []domain.Section) ([]domain.Section, error) {
	return m.replace(ctx, tripID, sections)
}
func (m *mockSectionRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Section, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockSectionRepo) DeleteByTrip(ctx context.Context, tripID uuid.UUID) (int64, error) {
	return m.deleteByTrip(ctx, tripID)
}

type mockCommunityRepo struct {
	create func(ctx context.Context, msg domain.CommunityMessage) (domain.CommunityMessage, error)
	list   func(ctx context.Context) ([]domain.CommunityMessage, error)
}

func (m *mockCommunityRepo) Create(ctx context.Context, msg domain.CommunityMessage) (domain.CommunityMessage, error) {
	return m.create(ctx, msg)
}
func (m *mockCommunityRepo) List(ctx context.Context) ([]domain.CommunityMessage, error) {
	return m.list(ctx)
}

type mockPlaceRepo struct {
	create func(ctx context.Context, p domain.SuggestedPlace) (domain.SuggestedPlace, error)
	list   func(ctx context.Context) ([]domain.SuggestedPlace, error)
}

func (m *mockPlaceRepo) Create(ctx context.Context, p domain.SuggestedPlace) (domain.SuggestedPlace, error) {
	return m.create(ctx, p)
}
func (m *mockPlaceRepo) List(ctx context.Context) ([]domain.SuggestedPlace, error) {
	return m.list(ctx)
}

type mockAnalyticsRepo struct {
	popularCities     func(ctx context.Context, limit int) ([]domain.CityStat, error)
	popularActivities func(ctx context.Context, limit int) ([]domain.ActivityStat, error)
	totals            func(ctx context.Context, now, activeSince time.Time) (domain.Totals, error)
	userTrend         func(ctx context.Context, since time.Time) ([]domain.MonthCount, error)
	tripTrend         func(ctx context.Context, since time.Time) ([]domain.MonthCount, error)
	budgetStats       func(ctx context.Context) (domain.BudgetStats, error)
	durationStats     func(ctx context.Context) (domain.DurationStats, error)
	partySizeCounts   func(ctx context.Context) (map[int]int, error)
}

func (m *mockAnalyticsRepo) PopularCities(ctx context.Context, limit int) ([]domain.CityStat, error) {
	return m.popularCities(ctx, limit)
}
func (m *mockAnalyticsRepo) PopularActivities(ctx context.Context, limit int) ([]domain.ActivityStat, error) {
	return m.popularActivities(ctx, limit)
}
func (m *mockAnalyticsRepo) Totals(ctx context.Context, now, activeSince time.Time) (domain.Totals, error) {
	return m.totals(ctx, now, activeSince)
}
func (m *mockAnalyticsRepo) UserTrend(ctx context.Context, since time.Time) ([]domain.MonthCount, error) {
	return m.userTrend(ctx, since)
}
func (m *mockAnalyticsRepo) TripTrend(ctx context.Context, since time.Time) ([]domain.MonthCount, error) {
	return m.tripTrend(ctx, since)
}
func (m *mockAnalyticsRepo) BudgetStats(ctx context.Context) (domain.BudgetStats, error) {
	return m.budgetStats(ctx)
}
func (m *mockAnalyticsRepo) DurationStats(ctx context.Context) (domain.DurationStats, error) {
	return m.durationStats(ctx)
}
func (m *mockAnalyticsRepo) PartySizeCounts(ctx context.Context) (map[int]int, error) {
	return m.partySizeCounts(ctx)
}

// compile-time checks: every mock must satisfy its repo interface.
var (
	_ repo.TripRepo      = (*mockTripRepo)(nil)
	_ repo.UserRepo      = (*mockUserRepo)(nil)
	_ repo.SectionRepo   = (*mockSectionRepo)(nil)
	_ repo.CommunityRepo = (*mockCommunityRepo)(nil)
	_ repo.PlaceRepo     = (*mockPlaceRepo)(nil)
	_ repo.AnalyticsRepo = (*mockAnalyticsRepo)(nil)
)

// fixedClock returns a Clock pinned to t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// memSections is an in-memory SectionRepo keyed by trip, used where a test
// needs replace-then-read behaviour rather than canned answers.
func memSections() *mockSectionRepo {
	store := map[uuid.UUID][]domain.Section{}
	return &mockSectionRepo{
		replace: func(_ context.Context, tripID uuid.UUID, sections []domain.Section) ([]domain.Section, error) {
			saved := make([]domain.Section, len(sections))
			for i, s := range sections {
				s.ID = uuid.New()
				s.Activities = append([]string(nil), s.Activities...)
				saved[i] = s
			}
			store[tripID] = saved
			return saved, nil
		},
		listByTrip: func(_ context.Context, tripID uuid.UUID) ([]domain.Section, error) {
			return append([]domain.Section(nil), store[tripID]...), nil
		},
		deleteByTrip: func(_ context.Context, tripID uuid.UUID) (int64, error) {
			n := int64(len(store[tripID]))
			delete(store, tripID)
			return n, nil
		},
	}
}
