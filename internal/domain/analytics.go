package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// AdminTrip is a trip row for the admin list, joined with its creator.
type AdminTrip struct {
	Trip
	Creator UserSummary `json:"user"`
}

// CityStat aggregates trips by destination name.
type CityStat struct {
	PlaceName   string    `json:"city"`
	VisitCount  int       `json:"visitCount"`
	TotalPeople int       `json:"totalPeople"`
	AvgPeople   float64   `json:"avgPeople"`
	LastVisit   time.Time `json:"lastVisit"`
}

// ActivityStat aggregates itinerary activities. Each activity string on a
// section is one occurrence, and the section's place counts as its location.
type ActivityStat struct {
	ActivityType    string  `json:"activity"`
	Count           int     `json:"count"`
	TotalBudget     float64 `json:"totalBudget"`
	AvgBudget       int     `json:"avgBudget"`
	UniqueLocations int     `json:"uniqueLocations"`
}

// Totals are the headline counts of the admin dashboard.
type Totals struct {
	Users             int     `json:"totalUsers"`
	Trips             int     `json:"totalTrips"`
	CompletedTrips    int     `json:"completedTrips"`
	ActiveUsers       int     `json:"activeUsers"`
	ItinerarySections int     `json:"totalItinerarySections"`
	CommunityMessages int     `json:"totalCommunityMessages"`
	CompletionRate    float64 `json:"completionRate"`
}

// MonthCount is one bucket of a monthly trend series.
type MonthCount struct {
	Year        int `json:"year"`
	Month       int `json:"month"`
	Count       int `json:"count"`
	TotalPeople int `json:"totalPeople,omitempty"`
}

// BudgetStats summarises section budgets. All zero when there are no sections.
type BudgetStats struct {
	Total float64 `json:"totalBudget"`
	Avg   float64 `json:"avgBudget"`
	Max   float64 `json:"maxBudget"`
	Min   float64 `json:"minBudget"`
}

// DurationStats summarises trip lengths in days. All zero when there are no trips.
type DurationStats struct {
	Avg float64 `json:"avgDuration"`
	Max float64 `json:"maxDuration"`
	Min float64 `json:"minDuration"`
}

// GroupSize is one bucket of the party-size histogram.
type GroupSize struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Trends are monthly series ordered by year then month.
type Trends struct {
	UserRegistrations []MonthCount `json:"userRegistrations"`
	TripCreations     []MonthCount `json:"tripCreations"`
}

// Overview is the admin dashboard payload.
type Overview struct {
	Totals     Totals        `json:"overview"`
	Trends     Trends        `json:"trends"`
	Budget     BudgetStats   `json:"budget"`
	Duration   DurationStats `json:"duration"`
	GroupSizes []GroupSize   `json:"groupSizes"`
}

// GroupCategory buckets a party size.
func GroupCategory(people int) string {
	switch {
	case people <= 1:
		return "Solo"
	case people == 2:
		return "Couple"
	case people <= 4:
		return "Small Group"
	case people <= 8:
		return "Medium Group"
	default:
		return "Large Group"
	}
}

// CompletionRate returns completed/total as a percentage rounded to one
// decimal, or 0 when total is 0.
func CompletionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return Round1(float64(completed) / float64(total) * 100)
}

// Round1 rounds f to one decimal place.
func Round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// StartOfMonth returns midnight UTC on the first day of the month that is
// monthsBack months before now's month.
func StartOfMonth(now time.Time, monthsBack int) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month()-time.Month(monthsBack), 1, 0, 0, 0, 0, time.UTC)
}

// UserDeletion reports what a user delete removed.
type UserDeletion struct {
	UserID   uuid.UUID `json:"userId"`
	Trips    int64     `json:"tripsDeleted"`
	Sections int64     `json:"sectionsDeleted"`
	Messages int64     `json:"messagesDeleted"`
}
