package handler

import (
	"net/http"

	"github.com/travelplanner/backend/internal/domain"
)

// AddSuggestedPlace handles POST /api/suggested-place and its admin alias.
// The role check happens in the service against addedBy.
func (s *Server) AddSuggestedPlace(w http.ResponseWriter, r *http.Request) {
	var req addPlaceRequest
	if err := s.decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	addedBy, err := domain.ParseID("addedBy", req.AddedBy)
	if err != nil {
		writeError(w, r, err)
		return
	}

	place, err := s.places.Add(r.Context(), domain.SuggestedPlace{
		Name:        req.Name,
		Description: req.Description,
		Images:      req.Images,
		Location:    req.Location,
		AddedBy:     addedBy,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse("Suggested place added successfully", "place", place))
}

// ListSuggestedPlaces handles GET /api/suggested-place.
func (s *Server) ListSuggestedPlaces(w http.ResponseWriter, r *http.Request) {
	places, err := s.places.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"places": places})
}
