package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/travelplanner/backend/internal/domain"
	"github.com/travelplanner/backend/internal/repo"
)

// SignupInput is everything a new account needs. ProfilePic is optional.
type SignupInput struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	City        string
	Country     string
	ProfilePic  string
}

// AuthService registers users and verifies credentials. It issues no tokens.
type AuthService struct {
	users repo.UserRepo
	cost  int
}

// NewAuthService constructs an AuthService. cost is the bcrypt work factor;
// values outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewAuthService(users repo.UserRepo, cost int) *AuthService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, cost: cost}
}

// Signup creates a user with role "user".
// Returns domain.ErrConflict when the username or email is taken.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (domain.User, error) {
	u := domain.User{
		Username:    strings.TrimSpace(in.Username),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		City:        strings.TrimSpace(in.City),
		Country:     strings.TrimSpace(in.Country),
		ProfilePic:  in.ProfilePic,
		Role:        domain.RoleUser,
	}
	if err := validateSignup(u, in.Password); err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Signup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Signup: hash password: %w", err)
	}
	u.PasswordHash = string(hash)

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Signup: %w", err)
	}
	return created, nil
}

// Login returns the user whose email and password match.
// An unknown email and a wrong password both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.User{}, fmt.Errorf("service.AuthService.Login: %w: email and password are required", domain.ErrValidation)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrInvalidCredentials)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Login: %w", domain.ErrInvalidCredentials)
	}
	return u, nil
}

func validateSignup(u domain.User, password string) error {
	required := []struct{ name, value string }{
		{"username", u.Username},
		{"email", u.Email},
		{"password", password},
		{"firstName", u.FirstName},
		{"lastName", u.LastName},
		{"phoneNumber", u.PhoneNumber},
		{"city", u.City},
		{"country", u.Country},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrValidation, f.name)
		}
	}
	if len(password) > 72 {
		return fmt.Errorf("%w: password must be at most 72 bytes", domain.ErrValidation)
	}
	return nil
}
