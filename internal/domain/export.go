package domain

import "time"

// ExportRow is a single row in the full-data export.
// One row per itinerary section, with trip fields repeated for every section
// of that trip. Trips with no sections yield one row with zero section fields.
type ExportRow struct {
	TripID         string `json:"tripId"`
	PlaceName      string `json:"placeName"`
	TripStartDate  string `json:"tripStartDate"` // 2006-01-02
	TripEndDate    string `json:"tripEndDate"`
	NumberOfPeople int    `json:"numberOfPeople"`
	CreatedBy      string `json:"createdBy"`

	SectionOrdinal   int        `json:"section,omitempty"`
	SectionPlace     string     `json:"sectionPlace,omitempty"`
	SectionStartDate *time.Time `json:"sectionStartDate,omitempty"`
	SectionEndDate   *time.Time `json:"sectionEndDate,omitempty"`
	SectionBudget    float64    `json:"sectionBudget"`

	// Activities are in the order the section lists them.
	Activities []string `json:"activities"`
}
