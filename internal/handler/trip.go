package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/travelplanner/backend/internal/domain"
)

type tripsResponse struct {
	Trips []domain.Trip `json:"trips"`
}

// CreateTrip handles POST /api/trip/create.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := s.decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	createdBy, err := domain.ParseID("createdBy", req.CreatedBy)
	if err != nil {
		writeError(w, r, err)
		return
	}

	trip, err := s.trips.Create(r.Context(), domain.Trip{
		PlaceName:      req.PlaceName,
		StartDate:      timeOf(req.StartDate),
		EndDate:        timeOf(req.EndDate),
		NumberOfPeople: *req.NumberOfPeople,
		Description:    req.Description,
		CreatedBy:      createdBy,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse("Trip created successfully", "trip", trip))
}

// ListUserTrips handles GET /api/trip/user/{userId}.
func (s *Server) ListUserTrips(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	trips, err := s.trips.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripsResponse{Trips: trips})
}

// ListUserTripsByStatus handles GET /api/trip/user/{userId}/{status}.
// Optional filters: placeName, minPeople, maxPeople, startDate, endDate.
func (s *Server) ListUserTripsByStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	f, err := bindTripFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	trips, err := s.trips.ListByUserAndStatus(r.Context(), userID, chi.URLParam(r, "status"), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripsResponse{Trips: trips})
}

// SearchTrips handles GET /api/trip/search?q=&userId=.
// An empty q returns every trip in scope.
func (s *Server) SearchTrips(w http.ResponseWriter, r *http.Request) {
	var query, rawUID *string
	q := r.URL.Query()
	if err := bindQuery(q, "q", &query); err != nil {
		writeError(w, r, err)
		return
	}
	if err := bindQuery(q, "userId", &rawUID); err != nil {
		writeError(w, r, err)
		return
	}

	var userID *uuid.UUID
	if rawUID != nil && *rawUID != "" {
		id, err := domain.ParseID("userId", *rawUID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		userID = &id
	}

	trips, err := s.trips.Search(r.Context(), deref(query), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripsResponse{Trips: trips})
}

// bindTripFilter reads the optional trip list filters from the query string.
// Dates accept YYYY-MM-DD or RFC 3339.
func bindTripFilter(r *http.Request) (domain.TripFilter, error) {
	var (
		f     domain.TripFilter
		place *string
		start *time.Time
		end   *time.Time
	)
	q := r.URL.Query()
	if err := bindQuery(q, "placeName", &place); err != nil {
		return domain.TripFilter{}, err
	}
	if err := bindQuery(q, "minPeople", &f.MinPeople); err != nil {
		return domain.TripFilter{}, err
	}
	if err := bindQuery(q, "maxPeople", &f.MaxPeople); err != nil {
		return domain.TripFilter{}, err
	}
	if err := bindQuery(q, "startDate", &start); err != nil {
		return domain.TripFilter{}, err
	}
	if err := bindQuery(q, "endDate", &end); err != nil {
		return domain.TripFilter{}, err
	}
	f.PlaceName, f.StartFrom, f.EndBy = deref(place), start, end
	return f, nil
}

// bindQuery binds one optional form-style query parameter. dest must be a
// pointer to a pointer; an absent parameter leaves it nil.
func bindQuery(q url.Values, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, q, dest); err != nil {
		return validationf("invalid %s: %v", name, err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
