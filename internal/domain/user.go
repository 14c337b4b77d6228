package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role values. Any other stored value is treated as a plain user.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered traveller. PasswordHash never leaves the server.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	PhoneNumber  string    `json:"phoneNumber"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	ProfilePic   string    `json:"profilePic,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserSummary is the slice of a user joined onto other records for display.
type UserSummary struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
}

// UserPatch carries a partial profile update. Nil fields are left unchanged.
// Password, role, and id are deliberately absent.
type UserPatch struct {
	Username    *string
	Email       *string
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	City        *string
	Country     *string
	ProfilePic  *string
}

// Apply returns u with every non-nil field of p copied over.
func (p UserPatch) Apply(u User) User {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&u.Username, p.Username)
	set(&u.Email, p.Email)
	set(&u.FirstName, p.FirstName)
	set(&u.LastName, p.LastName)
	set(&u.PhoneNumber, p.PhoneNumber)
	set(&u.City, p.City)
	set(&u.Country, p.Country)
	set(&u.ProfilePic, p.ProfilePic)
	return u
}

// UserWithTripCounts is a user row annotated for the admin user list.
type UserWithTripCounts struct {
	User
	TripCount      int `json:"tripCount"`
	CompletedTrips int `json:"completedTrips"`
}

// Profile is a user with their trips classified by derived status.
type Profile struct {
	User          User   `json:"user"`
	UpcomingTrips []Trip `json:"upcomingTrips"`
	CurrentTrips  []Trip `json:"currentTrips"`
	PastTrips     []Trip `json:"pastTrips"`
}
