package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/travelplanner/backend/internal/domain"
	"github.com/travelplanner/backend/internal/handler"
	"github.com/travelplanner/backend/internal/service"
)

// Test doubles for the servicer interfaces. Set only the method fields a
// test needs; an unset field panics if called, which fails the test loudly.

type mockAuthServicer struct {
	signup func(ctx context.Context, in service.SignupInput) (domain.User, error)
	login  func(ctx context.Context, email, password string) (domain.User, error)
}

func (m *mockAuthServicer) Signup(ctx context.Context, in service.SignupInput) (domain.User, error) {
	return m.signup(ctx, in)
}
func (m *mockAuthServicer) Login(ctx context.Context, email, password string) (domain.User, error) {
	return m.login(ctx, email, password)
}

type mockUserServicer struct {
	getProfile    func(ctx context.Context, id uuid.UUID) (domain.Profile, error)
	updateProfile func(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error)
}

func (m *mockUserServicer) GetProfile(ctx context.Context, id uuid.UUID) (domain.Profile, error) {
	return m.getProfile(ctx, id)
}
func (m *mockUserServicer) UpdateProfile(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error) {
	return m.updateProfile(ctx, id, patch)
}

type mockTripServicer struct {
	create              func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	listByUser          func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	listByUserAndStatus func(ctx context.Context, userID uuid.UUID, status string, f domain.TripFilter) ([]domain.Trip, error)
	search              func(ctx context.Context, query string, userID *uuid.UUID) ([]domain.Trip, error)
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockTripServicer) ListByUserAndStatus(ctx context.Context, userID uuid.UUID, status string, f domain.TripFilter) ([]domain.Trip, error) {
	return m.listByUserAndStatus(ctx, userID, status, f)
}
func (m *mockTripServicer) Search(ctx context.Context, query string, userID *uuid.UUID) ([]domain.Trip, error) {
	return m.search(ctx, query, userID)
}

type mockItineraryServicer struct {
	replace    func(ctx context.Context, tripID uuid.UUID, sections []domain.Section) ([]domain.Section, error)
	getSummary func(ctx context.Context, tripID uuid.UUID) ([]domain.Section, domain.ItinerarySummary, error)
	clear      func(ctx context.Context, tripID uuid.UUID) (int64, error)
}

func (m *mockItineraryServicer) ReplaceSections(ctx context.Context, tripID uuid.UUID, sections []domain.Section) ([]domain.Section, error) {
	return m.replace(ctx, tripID, sections)
}
func (m *mockItineraryServicer) GetSectionsWithSummary(ctx context.Context, tripID uuid.UUID) ([]domain.Section, domain.ItinerarySummary, error) {
	return m.getSummary(ctx, tripID)
}
func (m *mockItineraryServicer) ClearSections(ctx context.Context, tripID uuid.UUID) (int64, error) {
	return m.clear(ctx, tripID)
}

type mockCommunityServicer struct {
	share func(ctx context.Context, userID, tripID uuid.UUID) (domain.CommunityMessage, error)
	list  func(ctx context.Context) ([]domain.CommunityMessage, error)
}

func (m *mockCommunityServicer) ShareTrip(ctx context.Context, userID, tripID uuid.UUID) (domain.CommunityMessage, error) {
	return m.share(ctx, userID, tripID)
}
func (m *mockCommunityServicer) List(ctx context.Context) ([]domain.CommunityMessage, error) {
	return m.list(ctx)
}

type mockPlaceServicer struct {
	add  func(ctx context.Context, p domain.SuggestedPlace) (domain.SuggestedPlace, error)
	list func(ctx context.Context) ([]domain.SuggestedPlace, error)
}

func (m *mockPlaceServicer) Add(ctx context.Context, p domain.SuggestedPlace) (domain.SuggestedPlace, error) {
	return m.add(ctx, p)
}
func (m *mockPlaceServicer) List(ctx context.Context) ([]domain.SuggestedPlace, error) {
	return m.list(ctx)
}

type mockCalendarServicer struct {
	monthView func(ctx context.Context, userID uuid.UUID, year, month *int) (domain.MonthView, error)
	upcoming  func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
}

func (m *mockCalendarServicer) MonthView(ctx context.Context, userID uuid.UUID, year, month *int) (domain.MonthView, error) {
	return m.monthView(ctx, userID, year, month)
}
func (m *mockCalendarServicer) Upcoming(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return m.upcoming(ctx, userID)
}

type mockAdminServicer struct {
	listUsers         func(ctx context.Context) ([]domain.UserWithTripCounts, error)
	listTrips         func(ctx context.Context, status string, p domain.PaginationParams) ([]domain.AdminTrip, int64, error)
	popularCities     func(ctx context.Context) ([]domain.CityStat, error)
	popularActivities func(ctx context.Context) ([]domain.ActivityStat, error)
	overview          func(ctx context.Context) (domain.Overview, error)
	deleteUser        func(ctx context.Context, id uuid.UUID) (domain.UserDeletion, error)
}

func (m *mockAdminServicer) ListUsers(ctx context.Context) ([]domain.UserWithTripCounts, error) {
	return m.listUsers(ctx)
}
func (m *mockAdminServicer) ListTrips(ctx context.Context, status string, p domain.PaginationParams) ([]domain.AdminTrip, int64, error) {
	return m.listTrips(ctx, status, p)
}
func (m *mockAdminServicer) PopularCities(ctx context.Context) ([]domain.CityStat, error) {
	return m.popularCities(ctx)
}
func (m *mockAdminServicer) PopularActivities(ctx context.Context) ([]domain.ActivityStat, error) {
	return m.popularActivities(ctx)
}
func (m *mockAdminServicer) Overview(ctx context.Context) (domain.Overview, error) {
	return m.overview(ctx)
}
func (m *mockAdminServicer) DeleteUser(ctx context.Context, id uuid.UUID) (domain.UserDeletion, error) {
	return m.deleteUser(ctx, id)
}

type mockExportServicer struct {
	export func(ctx context.Context) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([]domain.ExportRow, error) {
	return m.export(ctx)
}

// compile-time checks: every mock must satisfy its servicer interface.
var (
	_ handler.AuthServicer      = (*mockAuthServicer)(nil)
	_ handler.UserServicer      = (*mockUserServicer)(nil)
	_ handler.TripServicer      = (*mockTripServicer)(nil)
	_ handler.ItineraryServicer = (*mockItineraryServicer)(nil)
	_ handler.CommunityServicer = (*mockCommunityServicer)(nil)
	_ handler.PlaceServicer     = (*mockPlaceServicer)(nil)
	_ handler.CalendarServicer  = (*mockCalendarServicer)(nil)
	_ handler.AdminServicer     = (*mockAdminServicer)(nil)
	_ handler.ExportServicer    = (*mockExportServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given services into its router,
// the same way main.go does in production minus the middleware.
func newHTTPHandler(svc handler.Services) http.Handler {
	return handler.NewServer(svc, nil, nil).Routes()
}

// do sends a request through h and returns the recorder.
func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals the recorder body into a generic map.
func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

// errorCode returns error.code from an error response body.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, rec)
	e, ok := body["error"].(map[string]any)
	require.True(t, ok, "response has no error object: %v", body)
	code, _ := e["code"].(string)
	return code
}

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:             uuid.New(),
		PlaceName:      "Paris",
		StartDate:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		NumberOfPeople: 2,
		CreatedBy:      uuid.New(),
		Status:         domain.StatusUpcoming,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
}
