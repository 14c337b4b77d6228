// Package domain contains the core data types for the travel planner API.
// This package depends only on uuid and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus is derived from a trip's dates and the current time. It is
// never persisted, so a trip moves from upcoming to ongoing to completed
// without any write.
type TripStatus string

const (
	StatusUpcoming  TripStatus = "upcoming"
	StatusOngoing   TripStatus = "ongoing"
	StatusCompleted TripStatus = "completed"
)

// ParseTripStatus validates a status taken from a URL or query string.
func ParseTripStatus(s string) (TripStatus, bool) {
	switch st := TripStatus(s); st {
	case StatusUpcoming, StatusOngoing, StatusCompleted:
		return st, true
	}
	return "", false
}

// StatusAt returns the status of a trip spanning [start, end] at instant now.
//   - completed when end is before now
//   - ongoing when start <= now <= end
//   - upcoming otherwise
func StatusAt(start, end, now time.Time) TripStatus {
	switch {
	case end.Before(now):
		return StatusCompleted
	case !start.After(now):
		return StatusOngoing
	default:
		return StatusUpcoming
	}
}

// Trip is a user-created travel plan: a destination, a date range, and a
// party size. A trip is the top-level aggregate; itinerary sections belong to it.
type Trip struct {
	ID             uuid.UUID  `json:"id"`
	PlaceName      string     `json:"placeName"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        time.Time  `json:"endDate"`
	NumberOfPeople int        `json:"numberOfPeople"`
	Description    string     `json:"description"`
	CreatedBy      uuid.UUID  `json:"createdBy"`
	Status         TripStatus `json:"status,omitempty"` // stamped by the service layer, never stored
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// WithStatus returns a copy of t with Status derived at now.
func (t Trip) WithStatus(now time.Time) Trip {
	t.Status = StatusAt(t.StartDate, t.EndDate, now)
	return t
}

// TripFilter narrows a user's trip list. Zero values mean "no constraint".
// StartFrom keeps trips whose start date is on or after it; EndBy keeps
// trips whose end date is on or before it.
type TripFilter struct {
	Status    TripStatus
	PlaceName string
	MinPeople *int
	MaxPeople *int
	StartFrom *time.Time
	EndBy     *time.Time
}
