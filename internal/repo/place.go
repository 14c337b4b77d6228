package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/travelplanner/backend/internal/domain"
)

// PlaceRepo stores admin-curated suggested places.
type PlaceRepo interface {
	Create(ctx context.Context, place domain.SuggestedPlace) (domain.SuggestedPlace, error)

	// List returns every place newest first. Adder is nil when the adding
	// user has since been deleted.
	List(ctx context.Context) ([]domain.SuggestedPlace, error)
}

type pgPlaceRepo struct {
	db db
}

// NewPlaceRepo constructs a PlaceRepo backed by the provided db connection.
func NewPlaceRepo(db db) PlaceRepo {
	return &pgPlaceRepo{db: db}
}

func (r *pgPlaceRepo) Create(ctx context.Context, place domain.SuggestedPlace) (domain.SuggestedPlace, error) {
	const q = `
		INSERT INTO suggested_places (name, description, images, location, added_by)
		VALUES (@name, @description, @images, @location, @added_by)
		RETURNING id, name, description, images, location, added_by, created_at, updated_at`

	args := pgx.NamedArgs{
		"name":        place.Name,
		"description": place.Description,
		"images":      place.Images,
		"location":    place.Location,
		"added_by":    place.AddedBy,
	}

	var (
		p           domain.SuggestedPlace
		id, addedBy pgtype.UUID
	)
	err := r.db.QueryRow(ctx, q, args).Scan(&id, &p.Name, &p.Description, &p.Images,
		&p.Location, &addedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.SuggestedPlace{}, fmt.Errorf("repo.PlaceRepo.Create: %w", mapErr(err))
	}
	p.ID = uuid.UUID(id.Bytes)
	p.AddedBy = uuid.UUID(addedBy.Bytes)
	return p, nil
}

func (r *pgPlaceRepo) List(ctx context.Context) ([]domain.SuggestedPlace, error) {
	const q = `
		SELECT p.id, p.name, p.description, p.images, p.location, p.added_by,
		       p.created_at, p.updated_at, u.username, u.role
		FROM suggested_places p
		LEFT JOIN users u ON u.id = p.added_by
		ORDER BY p.created_at DESC, p.id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.PlaceRepo.List: %w", err)
	}
	places, err := collect(rows, func(s scanner) (domain.SuggestedPlace, error) {
		var (
			p              domain.SuggestedPlace
			id, addedBy    pgtype.UUID
			username, role pgtype.Text
		)
		err := s.Scan(&id, &p.Name, &p.Description, &p.Images, &p.Location, &addedBy,
			&p.CreatedAt, &p.UpdatedAt, &username, &role)
		if err != nil {
			return domain.SuggestedPlace{}, err
		}
		p.ID = uuid.UUID(id.Bytes)
		p.AddedBy = uuid.UUID(addedBy.Bytes)
		if username.Valid {
			p.Adder = &domain.UserSummary{Username: username.String, Role: role.String}
		}
		return p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("repo.PlaceRepo.List: scan: %w", err)
	}
	return places, nil
}
