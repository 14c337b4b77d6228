package domain

import (
	"time"

	"github.com/google/uuid"
)

// SuggestedPlace is an admin-curated destination shown to every user.
// Images holds URLs or data URLs; binary storage is not managed here.
type SuggestedPlace struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	Location    string    `json:"location"`
	AddedBy     uuid.UUID `json:"addedBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Adder is joined in at read time; nil when the adding user no longer exists.
	Adder *UserSummary `json:"adder,omitempty"`
}
