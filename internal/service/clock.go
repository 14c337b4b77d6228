// Package service contains the business logic for the travel planner API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"time"

	"github.com/travelplanner/backend/internal/domain"
)

// Clock reports the current instant. Trip status, calendar ranges, and
// analytics cutoffs are all computed against it.
type Clock func() time.Time

// SystemClock is the production Clock.
func SystemClock() time.Time {
	return time.Now().UTC()
}

func stampStatus(trips []domain.Trip, now time.Time) []domain.Trip {
	out := make([]domain.Trip, len(trips))
	for i, t := range trips {
		out[i] = t.WithStatus(now)
	}
	return out
}
