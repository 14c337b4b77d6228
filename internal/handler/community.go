package handler

import (
	"net/http"

	"github.com/travelplanner/backend/internal/domain"
)

// ShareTrip handles POST /api/community/add.
func (s *Server) ShareTrip(w http.ResponseWriter, r *http.Request) {
	var req shareTripRequest
	if err := s.decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	userID, err := domain.ParseID("userId", req.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	tripID, err := domain.ParseID("tripId", req.TripID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	msg, err := s.community.ShareTrip(r.Context(), userID, tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse("Trip shared to community", "data", msg))
}

// ListCommunityMessages handles GET /api/community/fetch.
func (s *Server) ListCommunityMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.community.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}
