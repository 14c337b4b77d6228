// Package handler implements the HTTP handlers for the travel planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (auth.go, trip.go, etc.) but share the same Server struct so they can
// reach its dependencies.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/travelplanner/backend/internal/domain"
	"github.com/travelplanner/backend/internal/service"
)

// The servicer interfaces below are defined here, in the consumer package,
// so handler tests can inject mocks without a database.

type AuthServicer interface {
	Signup(ctx context.Context, in service.SignupInput) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
}

type UserServicer interface {
	GetProfile(ctx context.Context, id uuid.UUID) (domain.Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error)
}

type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	ListByUserAndStatus(ctx context.Context, userID uuid.UUID, status string, f domain.TripFilter) ([]domain.Trip, error)
	Search(ctx context.Context, query string, userID *uuid.UUID) ([]domain.Trip, error)
}

type ItineraryServicer interface {
	ReplaceSections(ctx context.Context, tripID uuid.UUID, sections []domain.Section) ([]domain.Section, error)
	GetSectionsWithSummary(ctx context.Context, tripID uuid.UUID) ([]domain.Section, domain.ItinerarySummary, error)
	ClearSections(ctx context.Context, tripID uuid.UUID) (int64, error)
}

type CommunityServicer interface {
	ShareTrip(ctx context.Context, userID, tripID uuid.UUID) (domain.CommunityMessage, error)
	List(ctx context.Context) ([]domain.CommunityMessage, error)
}

type PlaceServicer interface {
	Add(ctx context.Context, place domain.SuggestedPlace) (domain.SuggestedPlace, error)
	List(ctx context.Context) ([]domain.SuggestedPlace, error)
}

type CalendarServicer interface {
	MonthView(ctx context.Context, userID uuid.UUID, year, month *int) (domain.MonthView, error)
	Upcoming(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
}

type AdminServicer interface {
	ListUsers(ctx context.Context) ([]domain.UserWithTripCounts, error)
	ListTrips(ctx context.Context, status string, p domain.PaginationParams) ([]domain.AdminTrip, int64, error)
	PopularCities(ctx context.Context) ([]domain.CityStat, error)
	PopularActivities(ctx context.Context) ([]domain.ActivityStat, error)
	Overview(ctx context.Context) (domain.Overview, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (domain.UserDeletion, error)
}

type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Pinger reports whether the database is reachable. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services bundles every servicer the Server routes to. A nil field is
// allowed in tests that never hit its routes.
type Services struct {
	Auth      AuthServicer
	Users     UserServicer
	Trips     TripServicer
	Itinerary ItineraryServicer
	Community CommunityServicer
	Places    PlaceServicer
	Calendar  CalendarServicer
	Admin     AdminServicer
	Export    ExportServicer
}

// Server holds the dependencies of every HTTP handler.
type Server struct {
	auth      AuthServicer
	users     UserServicer
	trips     TripServicer
	itinerary ItineraryServicer
	community CommunityServicer
	places    PlaceServicer
	calendar  CalendarServicer
	admin     AdminServicer
	export    ExportServicer

	db       Pinger
	openapi  []byte
	validate *validator.Validate
}

// NewServer constructs the Server. db may be nil, in which case /healthz
// only reports that the process is up. openapi is served verbatim at
// /openapi.yaml when non-empty.
func NewServer(svc Services, db Pinger, openapi []byte) *Server {
	return &Server{
		auth:      svc.Auth,
		users:     svc.Users,
		trips:     svc.Trips,
		itinerary: svc.Itinerary,
		community: svc.Community,
		places:    svc.Places,
		calendar:  svc.Calendar,
		admin:     svc.Admin,
		export:    svc.Export,
		db:        db,
		openapi:   openapi,
		validate:  newValidator(),
	}
}

// healthTimeout bounds the database ping behind /healthz.
const healthTimeout = 2 * time.Second

// Routes returns the API router. Middleware is applied by the caller so
// tests exercise handlers without CORS, logging, or rate limiting.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeErrorBody(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeErrorBody(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", s.Signup)
			r.Post("/login", s.Login)
		})

		r.Route("/trip", func(r chi.Router) {
			r.Post("/create", s.CreateTrip)
			r.Get("/search", s.SearchTrips)
			r.Get("/user/{userId}", s.ListUserTrips)
			r.Get("/user/{userId}/{status}", s.ListUserTripsByStatus)
		})

		r.Route("/itinerary", func(r chi.Router) {
			r.Post("/create/{tripId}", s.ReplaceSections)
			r.Get("/trip/{tripId}", s.GetItinerary)
			r.Delete("/trip/{tripId}", s.ClearItinerary)
		})

		r.Route("/community", func(r chi.Router) {
			r.Post("/add", s.ShareTrip)
			r.Get("/fetch", s.ListCommunityMessages)
		})

		r.Post("/suggested-place", s.AddSuggestedPlace)
		r.Get("/suggested-place", s.ListSuggestedPlaces)

		r.Route("/user", func(r chi.Router) {
			r.Get("/profile/{userId}", s.GetProfile)
			r.Put("/update/{userId}", s.UpdateProfile)
		})

		r.Route("/calendar/user/{userId}", func(r chi.Router) {
			r.Get("/", s.GetMonthView)
			r.Get("/upcoming", s.GetUpcoming)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/users", s.AdminListUsers)
			r.Delete("/users/{userId}", s.AdminDeleteUser)
			r.Get("/trips", s.AdminListTrips)
			r.Get("/analytics/cities", s.AdminPopularCities)
			r.Get("/analytics/activities", s.AdminPopularActivities)
			r.Get("/analytics/overview", s.AdminOverview)
			r.Post("/suggested-place", s.AddSuggestedPlace)
			r.Get("/export", s.GetExport)
		})
	})
	return r
}
