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

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, so services can be unit-tested with a mock.
//
// Methods that filter by status take now explicitly; status is derived from
// the dates and never stored.
type TripRepo interface {
	// Create inserts a new trip. Returns domain.ErrNotFound when created_by
	// does not reference an existing user.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns every trip ordered by start_date ascending.
	List(ctx context.Context) ([]domain.Trip, error)

	// ListByUser returns a user's trips ordered by start_date ascending.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)

	// ListByUserFiltered applies f to a user's trips. f.Status is evaluated at now.
	ListByUserFiltered(ctx context.Context, userID uuid.UUID, f domain.TripFilter, now time.Time) ([]domain.Trip, error)

	// Search matches query as a case-insensitive substring of place_name,
	// optionally scoped to one user. An empty query matches everything.
	Search(ctx context.Context, query string, userID *uuid.UUID) ([]domain.Trip, error)

	// ListOverlapping returns a user's trips that intersect [from, to).
	ListOverlapping(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Trip, error)

	// ListStartingBetween returns a user's trips with from <= start_date <= to,
	// ordered by start_date ascending.
	ListStartingBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Trip, error)

	// ListPaged returns one page of trips joined with their creators, newest
	// first, and the total matching count. An empty status matches every trip;
	// "completed" matches trips that ended before now and any other status
	// matches trips that have not.
	ListPaged(ctx context.Context, status string, now time.Time, p domain.PaginationParams) ([]domain.AdminTrip, int64, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, place_name, start_date, end_date, number_of_people,
	description, created_by, created_at, updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	q := `
		INSERT INTO trips (place_name, start_date, end_date, number_of_people, description, created_by)
		VALUES (@place_name, @start_date, @end_date, @number_of_people, @description, @created_by)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"place_name":       trip.PlaceName,
		"start_date":       trip.StartDate,
		"end_date":         trip.EndDate,
		"number_of_people": trip.NumberOfPeople,
		"description":      trip.Description,
		"created_by":       trip.CreatedBy,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", mapErr(err))
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", mapErr(err))
	}
	return result, nil
}

func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips ORDER BY start_date, id`
	return r.queryTrips(ctx, "List", q, nil)
}

func (r *pgTripRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE created_by = @user_id ORDER BY start_date, id`
	return r.queryTrips(ctx, "ListByUser", q, pgx.NamedArgs{"user_id": userID})
}

func (r *pgTripRepo) ListByUserFiltered(ctx context.Context, userID uuid.UUID, f domain.TripFilter, now time.Time) ([]domain.Trip, error) {
	q := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE created_by = @user_id
		  AND (@status::text = ''
		       OR (@status = 'completed' AND end_date < @now)
		       OR (@status = 'ongoing'   AND start_date <= @now AND end_date >= @now)
		       OR (@status = 'upcoming'  AND start_date > @now))
		  AND (@place_name::text = '' OR place_name ILIKE @place_pattern ESCAPE '\')
		  AND (@min_people::int IS NULL OR number_of_people >= @min_people)
		  AND (@max_people::int IS NULL OR number_of_people <= @max_people)
		  AND (@start_from::timestamptz IS NULL OR start_date >= @start_from)
		  AND (@end_by::timestamptz IS NULL OR end_date <= @end_by)
		ORDER BY start_date, id`

	args := pgx.NamedArgs{
		"user_id":       userID,
		"status":        string(f.Status),
		"now":           now,
		"place_name":    f.PlaceName,
		"place_pattern": containsPattern(f.PlaceName),
		"min_people":    f.MinPeople,
		"max_people":    f.MaxPeople,
		"start_from":    f.StartFrom,
		"end_by":        f.EndBy,
	}
	return r.queryTrips(ctx, "ListByUserFiltered", q, args)
}

func (r *pgTripRepo) Search(ctx context.Context, query string, userID *uuid.UUID) ([]domain.Trip, error) {
	q := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE place_name ILIKE @pattern ESCAPE '\'
		  AND (@user_id::uuid IS NULL OR created_by = @user_id)
		ORDER BY start_date, id`

	args := pgx.NamedArgs{"pattern": containsPattern(query), "user_id": userID}
	return r.queryTrips(ctx, "Search", q, args)
}

func (r *pgTripRepo) ListOverlapping(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Trip, error) {
	q := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE created_by = @user_id
		  AND start_date < @to
		  AND end_date >= @from
		ORDER BY start_date, id`

	args := pgx.NamedArgs{"user_id": userID, "from": from, "to": to}
	return r.queryTrips(ctx, "ListOverlapping", q, args)
}

func (r *pgTripRepo) ListStartingBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Trip, error) {
	q := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE created_by = @user_id
		  AND start_date BETWEEN @from AND @to
		ORDER BY start_date, id`

	args := pgx.NamedArgs{"user_id": userID, "from": from, "to": to}
	return r.queryTrips(ctx, "ListStartingBetween", q, args)
}

func (r *pgTripRepo) ListPaged(ctx context.Context, status string, now time.Time, p domain.PaginationParams) ([]domain.AdminTrip, int64, error) {
	const where = `
		WHERE @status::text = ''
		   OR (@status = 'completed' AND t.end_date < @now)
		   OR (@status <> 'completed' AND t.end_date >= @now)`

	args := pgx.NamedArgs{
		"status": status,
		"now":    now,
		"limit":  p.Limit,
		"offset": p.Offset(),
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM trips t`+where, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	q := `
		SELECT t.id, t.place_name, t.start_date, t.end_date, t.number_of_people,
		       t.description, t.created_by, t.created_at, t.updated_at,
		       u.username, u.first_name, u.last_name, u.email
		FROM trips t
		JOIN users u ON u.id = t.created_by` + where + `
		ORDER BY t.created_at DESC, t.id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	trips, err := collect(rows, func(s scanner) (domain.AdminTrip, error) {
		var (
			at        domain.AdminTrip
			id, owner pgtype.UUID
		)
		err := s.Scan(&id, &at.PlaceName, &at.StartDate, &at.EndDate, &at.NumberOfPeople,
			&at.Description, &owner, &at.CreatedAt, &at.UpdatedAt,
			&at.Creator.Username, &at.Creator.FirstName, &at.Creator.LastName, &at.Creator.Email)
		at.ID = uuid.UUID(id.Bytes)
		at.CreatedBy = uuid.UUID(owner.Bytes)
		return at, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
	}
	return trips, total, nil
}

func (r *pgTripRepo) queryTrips(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.Trip, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.%s: %w", op, err)
	}
	trips, err := collect(rows, scanTrip)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.%s: scan: %w", op, err)
	}
	return trips, nil
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		id, owner pgtype.UUID
	)
	err := s.Scan(&id, &t.PlaceName, &t.StartDate, &t.EndDate, &t.NumberOfPeople,
		&t.Description, &owner, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Trip{}, err
	}
	t.ID = uuid.UUID(id.Bytes)
	t.CreatedBy = uuid.UUID(owner.Bytes)
	return t, nil
}
