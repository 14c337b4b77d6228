package handler

import "net/http"

// GetMonthView handles GET /api/calendar/user/{userId}?year=&month=.
// Missing year or month default to the current one.
func (s *Server) GetMonthView(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var year, month *int
	q := r.URL.Query()
	if err := bindQuery(q, "year", &year); err != nil {
		writeError(w, r, err)
		return
	}
	if err := bindQuery(q, "month", &month); err != nil {
		writeError(w, r, err)
		return
	}

	view, err := s.calendar.MonthView(r.Context(), userID, year, month)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetUpcoming handles GET /api/calendar/user/{userId}/upcoming.
func (s *Server) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	trips, err := s.calendar.Upcoming(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripsResponse{Trips: trips})
}
