package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommunityMessage is an immutable public snapshot of a shared trip.
// Trip and Sections are copies taken at share time, not references: later
// edits to the source trip or its sections never reach the message.
type CommunityMessage struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Trip        Trip      `json:"trip"`
	Sections    []Section `json:"sections"`
	TotalBudget float64   `json:"totalBudget"`
	CreatedAt   time.Time `json:"createdAt"`

	// Author is joined in at read time for display; it is not stored on the message.
	Author *UserSummary `json:"author,omitempty"`
}

// NewCommunityMessage snapshots trip and sections into a message whose total
// budget is fixed at the sum of the copied section budgets.
func NewCommunityMessage(userID uuid.UUID, trip Trip, sections []Section) CommunityMessage {
	snapshot := make([]Section, len(sections))
	for i, s := range sections {
		s.Activities = append([]string(nil), s.Activities...)
		snapshot[i] = s
	}
	trip.Status = ""
	return CommunityMessage{
		UserID:      userID,
		Trip:        trip,
		Sections:    snapshot,
		TotalBudget: TotalBudget(snapshot),
	}
}
