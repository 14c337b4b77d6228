package domain

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// CalendarEvent is a trip projected onto a month grid.
// Dates serialize as YYYY-MM-DD.
type CalendarEvent struct {
	ID             uuid.UUID          `json:"id"`
	Title          string             `json:"title"`
	StartDate      openapi_types.Date `json:"startDate"`
	EndDate        openapi_types.Date `json:"endDate"`
	Description    string             `json:"description"`
	NumberOfPeople int                `json:"numberOfPeople"`
	IsMultiDay     bool               `json:"isMultiDay"`
}

// NewCalendarEvent builds the calendar projection of t.
// IsMultiDay compares calendar days in UTC, so a trip starting and ending on
// the same day is single-day regardless of its times.
func NewCalendarEvent(t Trip) CalendarEvent {
	start := truncateDay(t.StartDate)
	end := truncateDay(t.EndDate)
	return CalendarEvent{
		ID:             t.ID,
		Title:          t.PlaceName,
		StartDate:      openapi_types.Date{Time: start},
		EndDate:        openapi_types.Date{Time: end},
		Description:    t.Description,
		NumberOfPeople: t.NumberOfPeople,
		IsMultiDay:     !start.Equal(end),
	}
}

// MonthView is one calendar month of a user's trips.
type MonthView struct {
	Month  int             `json:"month"`
	Year   int             `json:"year"`
	Events []CalendarEvent `json:"events"`
}

// MonthRange returns the half-open range [first day of month, first day of
// next month) in UTC.
func MonthRange(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
