package handler

import (
	"net/http"

	"github.com/travelplanner/backend/internal/domain"
)

type adminUsersResponse struct {
	Users      []domain.UserWithTripCounts `json:"users"`
	TotalUsers int                         `json:"totalUsers"`
}

type adminTripsResponse struct {
	Trips       []domain.AdminTrip `json:"trips"`
	TotalTrips  int64              `json:"totalTrips"`
	CurrentPage int                `json:"currentPage"`
	TotalPages  int                `json:"totalPages"`
}

// AdminListUsers handles GET /api/admin/users.
func (s *Server) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.admin.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, adminUsersResponse{Users: users, TotalUsers: len(users)})
}

// AdminListTrips handles GET /api/admin/trips?page=&limit=&status=.
// status "completed" selects finished trips; any other value selects the rest.
func (s *Server) AdminListTrips(w http.ResponseWriter, r *http.Request) {
	var (
		page, limit *int
		status      *string
	)
	q := r.URL.Query()
	if err := bindQuery(q, "page", &page); err != nil {
		writeError(w, r, err)
		return
	}
	if err := bindQuery(q, "limit", &limit); err != nil {
		writeError(w, r, err)
		return
	}
	if err := bindQuery(q, "status", &status); err != nil {
		writeError(w, r, err)
		return
	}

	p := domain.NewPaginationParams(page, limit)
	trips, total, err := s.admin.ListTrips(r.Context(), deref(status), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, adminTripsResponse{
		Trips:       trips,
		TotalTrips:  total,
		CurrentPage: p.Page,
		TotalPages:  p.TotalPages(total),
	})
}

// AdminPopularCities handles GET /api/admin/analytics/cities.
func (s *Server) AdminPopularCities(w http.ResponseWriter, r *http.Request) {
	cities, err := s.admin.PopularCities(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if cities == nil {
		cities = []domain.CityStat{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"cities": cities})
}

// AdminPopularActivities handles GET /api/admin/analytics/activities.
func (s *Server) AdminPopularActivities(w http.ResponseWriter, r *http.Request) {
	acts, err := s.admin.PopularActivities(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if acts == nil {
		acts = []domain.ActivityStat{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"activities": acts})
}

// AdminOverview handles GET /api/admin/analytics/overview.
func (s *Server) AdminOverview(w http.ResponseWriter, r *http.Request) {
	o, err := s.admin.Overview(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"analytics": o})
}

// AdminDeleteUser handles DELETE /api/admin/users/{userId}.
func (s *Server) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	del, err := s.admin.DeleteUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse("User and associated data deleted successfully", "deleted", del))
}
