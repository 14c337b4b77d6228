package handler

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/travelplanner/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "place_name", "trip_start_date", "trip_end_date",
	"number_of_people", "created_by",
	"section", "section_place", "section_start_date", "section_end_date",
	"section_budget", "activities",
}

// GetExport handles GET /api/admin/export.
// It returns one row per itinerary section across every trip.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	var format *string
	if err := bindQuery(r.URL.Query(), "format", &format); err != nil {
		writeError(w, r, err)
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	if deref(format) == "csv" {
		writeCSV(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// writeCSV streams rows as an attachment. Activities within a row are
// pipe-separated ("|") to keep each section on a single CSV line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	records := make([][]string, 0, len(rows)+1)
	records = append(records, csvHeaders)
	for _, r := range rows {
		records = append(records, exportRowToCSVRecord(r))
	}
	if err := cw.WriteAll(records); err != nil {
		slog.Error("write csv export", "error", err)
	}
}

// exportRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// A row without a section leaves the section columns empty.
func exportRowToCSVRecord(r domain.ExportRow) []string {
	section, budget := "", ""
	if r.SectionOrdinal != 0 || r.SectionPlace != "" {
		section = strconv.Itoa(r.SectionOrdinal)
		budget = strconv.FormatFloat(r.SectionBudget, 'f', 2, 64)
	}
	return []string{
		r.TripID,
		r.PlaceName,
		r.TripStartDate,
		r.TripEndDate,
		strconv.Itoa(r.NumberOfPeople),
		r.CreatedBy,
		section,
		r.SectionPlace,
		formatOptionalDate(r.SectionStartDate),
		formatOptionalDate(r.SectionEndDate),
		budget,
		strings.Join(r.Activities, "|"),
	}
}

// formatOptionalDate returns t as YYYY-MM-DD, or "" if t is nil.
func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.DateOnly)
}
