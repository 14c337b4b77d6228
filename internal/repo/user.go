package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/travelplanner/backend/internal/domain"
)

// UserRepo defines the persistence operations for Users.
type UserRepo interface {
	// Create inserts a user. Returns domain.ErrConflict when the username or
	// email is already taken.
	Create(ctx context.Context, user domain.User) (domain.User, error)

	// GetByID returns domain.ErrNotFound if no user has that ID.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// GetByEmail returns domain.ErrNotFound if no user has that email.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// Update overwrites the profile fields of an existing user. Password and
	// role are never written here.
	Update(ctx context.Context, user domain.User) (domain.User, error)

	// ListWithTripCounts returns every user, newest registration first, with
	// the number of trips they created and how many of those ended before now.
	ListWithTripCounts(ctx context.Context, now time.Time) ([]domain.UserWithTripCounts, error)

	// DeleteCascade removes a user together with their trips, the sections of
	// those trips, and their community messages, all in one transaction.
	DeleteCascade(ctx context.Context, id uuid.UUID) (domain.UserDeletion, error)
}

type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, username, email, password_hash, first_name, last_name,
	phone_number, city, country, profile_pic, role, created_at, updated_at`

func (r *pgUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	q := `
		INSERT INTO users (username, email, password_hash, first_name, last_name,
		                   phone_number, city, country, profile_pic, role)
		VALUES (@username, @email, @password_hash, @first_name, @last_name,
		        @phone_number, @city, @country, @profile_pic, @role)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"username":      user.Username,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"phone_number":  user.PhoneNumber,
		"city":          user.City,
		"country":       user.Country,
		"profile_pic":   user.ProfilePic,
		"role":          user.Role,
	}

	result, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = @id`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE email = @email`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgUserRepo) Update(ctx context.Context, user domain.User) (domain.User, error) {
	q := `
		UPDATE users
		SET username     = @username,
		    email        = @email,
		    first_name   = @first_name,
		    last_name    = @last_name,
		    phone_number = @phone_number,
		    city         = @city,
		    country      = @country,
		    profile_pic  = @profile_pic,
		    updated_at   = now()
		WHERE id = @id
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"id":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"first_name":   user.FirstName,
		"last_name":    user.LastName,
		"phone_number": user.PhoneNumber,
		"city":         user.City,
		"country":      user.Country,
		"profile_pic":  user.ProfilePic,
	}

	result, err := scanUser(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Update: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgUserRepo) ListWithTripCounts(ctx context.Context, now time.Time) ([]domain.UserWithTripCounts, error) {
	const q = `
		SELECT u.id, u.username, u.email, u.password_hash, u.first_name, u.last_name,
		       u.phone_number, u.city, u.country, u.profile_pic, u.role,
		       u.created_at, u.updated_at,
		       COUNT(t.id),
		       COUNT(t.id) FILTER (WHERE t.end_date < @now)
		FROM users u
		LEFT JOIN trips t ON t.created_by = u.id
		GROUP BY u.id
		ORDER BY u.created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"now": now})
	if err != nil {
		return nil, fmt.Errorf("repo.UserRepo.ListWithTripCounts: %w", err)
	}
	users, err := collect(rows, func(s scanner) (domain.UserWithTripCounts, error) {
		var u domain.UserWithTripCounts
		var id pgtype.UUID
		err := s.Scan(&id, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
			&u.PhoneNumber, &u.City, &u.Country, &u.ProfilePic, &u.Role,
			&u.CreatedAt, &u.UpdatedAt, &u.TripCount, &u.CompletedTrips)
		u.ID = uuid.UUID(id.Bytes)
		return u, err
	})
	if err != nil {
		return nil, fmt.Errorf("repo.UserRepo.ListWithTripCounts: scan: %w", err)
	}
	return users, nil
}

// DeleteCascade locks the user row first so a concurrent trip insert for the
// same user fails on the foreign key instead of leaving an orphan.
func (r *pgUserRepo) DeleteCascade(ctx context.Context, id uuid.UUID) (domain.UserDeletion, error) {
	out := domain.UserDeletion{UserID: id}
	args := pgx.NamedArgs{"id": id}

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var locked pgtype.UUID
		if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = @id FOR UPDATE`, args).Scan(&locked); err != nil {
			return mapErr(err)
		}

		tag, err := tx.Exec(ctx, `
			DELETE FROM itinerary_sections
			WHERE trip_id IN (SELECT id FROM trips WHERE created_by = @id)`, args)
		if err != nil {
			return fmt.Errorf("sections: %w", err)
		}
		out.Sections = tag.RowsAffected()

		if tag, err = tx.Exec(ctx, `DELETE FROM trips WHERE created_by = @id`, args); err != nil {
			return fmt.Errorf("trips: %w", err)
		}
		out.Trips = tag.RowsAffected()

		if tag, err = tx.Exec(ctx, `DELETE FROM community_messages WHERE user_id = @id`, args); err != nil {
			return fmt.Errorf("messages: %w", err)
		}
		out.Messages = tag.RowsAffected()

		if _, err = tx.Exec(ctx, `DELETE FROM users WHERE id = @id`, args); err != nil {
			return fmt.Errorf("user: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.UserDeletion{}, fmt.Errorf("repo.UserRepo.DeleteCascade: %w", err)
	}
	return out, nil
}

func scanUser(s scanner) (domain.User, error) {
	var (
		u  domain.User
		id pgtype.UUID
	)
	err := s.Scan(&id, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.PhoneNumber, &u.City, &u.Country, &u.ProfilePic, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, err
	}
	u.ID = uuid.UUID(id.Bytes)
	return u, nil
}
