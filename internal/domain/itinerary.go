package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Section is one segment of a trip's day-by-day plan.
// A trip's sections are only ever written as a whole list; see
// service.ItineraryService.ReplaceSections.
type Section struct {
	ID         uuid.UUID `json:"id"`
	TripID     uuid.UUID `json:"tripId"`
	Ordinal    int       `json:"section"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Place      string    `json:"place"`
	Activities []string  `json:"activities"`
	Budget     float64   `json:"budget"`
	Info       string    `json:"info"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ItinerarySummary holds the figures derived from a trip's section list.
type ItinerarySummary struct {
	TotalBudget     float64 `json:"totalBudget"`
	TotalPlaces     int     `json:"totalPlaces"`
	TotalActivities int     `json:"totalActivities"`
	DaysCovered     int     `json:"daysCovered"`
}

const day = 24 * time.Hour

// Summarize computes the itinerary summary for sections.
// DaysCovered spans the earliest start to the latest end, rounded up to whole
// days, plus one; it is 0 for an empty list.
func Summarize(sections []Section) ItinerarySummary {
	var (
		sum        ItinerarySummary
		places     = map[string]struct{}{}
		activities = map[string]struct{}{}
		minStart   time.Time
		maxEnd     time.Time
	)
	for i, s := range sections {
		sum.TotalBudget += s.Budget
		places[s.Place] = struct{}{}
		for _, a := range s.Activities {
			activities[a] = struct{}{}
		}
		if i == 0 || s.StartDate.Before(minStart) {
			minStart = s.StartDate
		}
		if i == 0 || s.EndDate.After(maxEnd) {
			maxEnd = s.EndDate
		}
	}
	sum.TotalPlaces = len(places)
	sum.TotalActivities = len(activities)
	if len(sections) > 0 {
		sum.DaysCovered = int(math.Ceil(float64(maxEnd.Sub(minStart))/float64(day))) + 1
	}
	return sum
}

// TotalBudget sums the budgets of sections.
func TotalBudget(sections []Section) float64 {
	var total float64
	for _, s := range sections {
		total += s.Budget
	}
	return total
}
