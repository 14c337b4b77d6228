package handler

import (
	"net/http"

	"github.com/travelplanner/backend/internal/domain"
)

type itineraryResponse struct {
	Sections []domain.Section `json:"sections"`
	domain.ItinerarySummary
}

// ReplaceSections handles POST /api/itinerary/create/{tripId}.
// The body is the trip's complete new section list; it replaces whatever
// was there before.
func (s *Server) ReplaceSections(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var reqs []sectionRequest
	if err := readJSON(r, &reqs); err != nil {
		writeError(w, r, err)
		return
	}
	if len(reqs) == 0 {
		writeError(w, r, validationf("at least one section is required"))
		return
	}

	sections := make([]domain.Section, len(reqs))
	for i, req := range reqs {
		if err := s.validate.Struct(req); err != nil {
			writeError(w, r, validationf("section %d: %s", i+1, formatValidationError(err)))
			return
		}
		sections[i] = req.toDomain()
	}

	saved, err := s.itinerary.ReplaceSections(r.Context(), tripID, sections)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse("Itinerary saved successfully", "sections", saved))
}

// GetItinerary handles GET /api/itinerary/trip/{tripId}.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	sections, summary, err := s.itinerary.GetSectionsWithSummary(r.Context(), tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itineraryResponse{Sections: sections, ItinerarySummary: summary})
}

// ClearItinerary handles DELETE /api/itinerary/trip/{tripId}.
func (s *Server) ClearItinerary(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := s.itinerary.ClearSections(r.Context(), tripID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
