package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/travelplanner/backend/internal/domain"
)

// SectionRepo defines the persistence operations for itinerary sections.
// Sections are always written as a whole list per trip.
type SectionRepo interface {
	// Replace deletes every section of tripID and inserts sections in one
	// transaction. The trip row is locked first, so concurrent replaces of the
	// same trip serialize and the last to commit wins.
	// Returns domain.ErrNotFound if the trip does not exist.
	Replace(ctx context.Context, tripID uuid.UUID, sections []domain.Section) ([]domain.Section, error)

	// ListByTrip returns the sections of a trip ordered by ordinal.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Section, error)

	// DeleteByTrip removes every section of a trip and reports how many went.
	DeleteByTrip(ctx context.Context, tripID uuid.UUID) (int64, error)
}

type pgSectionRepo struct {
	db db
}

// NewSectionRepo constructs a SectionRepo backed by the provided db connection.
func NewSectionRepo(db db) SectionRepo {
	return &pgSectionRepo{db: db}
}

const sectionColumns = `id, trip_id, section, start_date, end_date, place,
	activities, budget, info, created_at, updated_at`

func (r *pgSectionRepo) Replace(ctx context.Context, tripID uuid.UUID, sections []domain.Section) ([]domain.Section, error) {
	insert := `
		INSERT INTO itinerary_sections (trip_id, section, start_date, end_date, place, activities, budget, info)
		VALUES (@trip_id, @section, @start_date, @end_date, @place, @activities, @budget, @info)
		RETURNING ` + sectionColumns

	var out []domain.Section
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var locked pgtype.UUID
		err := tx.QueryRow(ctx, `SELECT id FROM trips WHERE id = @id FOR UPDATE`,
			pgx.NamedArgs{"id": tripID}).Scan(&locked)
		if err != nil {
			return mapErr(err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM itinerary_sections WHERE trip_id = @trip_id`,
			pgx.NamedArgs{"trip_id": tripID}); err != nil {
			return fmt.Errorf("delete: %w", err)
		}

		batch := &pgx.Batch{}
		for _, s := range sections {
			batch.Queue(insert, pgx.NamedArgs{
				"trip_id":    tripID,
				"section":    s.Ordinal,
				"start_date": s.StartDate,
				"end_date":   s.EndDate,
				"place":      s.Place,
				"activities": s.Activities,
				"budget":     s.Budget,
				"info":       s.Info,
			})
		}

		br := tx.SendBatch(ctx, batch)
		out = make([]domain.Section, 0, len(sections))
		for range sections {
			sec, err := scanSection(br.QueryRow())
			if err != nil {
				_ = br.Close()
				return fmt.Errorf("insert: %w", err)
			}
			out = append(out, sec)
		}
		return br.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("repo.SectionRepo.Replace: %w", err)
	}
	return out, nil
}

func (r *pgSectionRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Section, error) {
	q := `
		SELECT ` + sectionColumns + `
		FROM itinerary_sections
		WHERE trip_id = @trip_id
		ORDER BY section, start_date`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.SectionRepo.ListByTrip: %w", err)
	}
	sections, err := collect(rows, scanSection)
	if err != nil {
		return nil, fmt.Errorf("repo.SectionRepo.ListByTrip: scan: %w", err)
	}
	return sections, nil
}

func (r *pgSectionRepo) DeleteByTrip(ctx context.Context, tripID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM itinerary_sections WHERE trip_id = @trip_id`,
		pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return 0, fmt.Errorf("repo.SectionRepo.DeleteByTrip: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanSection(s scanner) (domain.Section, error) {
	var (
		sec      domain.Section
		id, trip pgtype.UUID
	)
	err := s.Scan(&id, &trip, &sec.Ordinal, &sec.StartDate, &sec.EndDate, &sec.Place,
		&sec.Activities, &sec.Budget, &sec.Info, &sec.CreatedAt, &sec.UpdatedAt)
	if err != nil {
		return domain.Section{}, err
	}
	sec.ID = uuid.UUID(id.Bytes)
	sec.TripID = uuid.UUID(trip.Bytes)
	return sec, nil
}
