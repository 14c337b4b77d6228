package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/travelplanner/backend/internal/domain"
)

// CommunityRepo stores shared trip snapshots. Messages are insert-only.
type CommunityRepo interface {
	// Create stores msg. Returns domain.ErrNotFound when the poster does not exist.
	Create(ctx context.Context, msg domain.CommunityMessage) (domain.CommunityMessage, error)

	// List returns every message newest first, with the poster joined in.
	List(ctx context.Context) ([]domain.CommunityMessage, error)
}

type pgCommunityRepo struct {
	db db
}

// NewCommunityRepo constructs a CommunityRepo backed by the provided db connection.
func NewCommunityRepo(db db) CommunityRepo {
	return &pgCommunityRepo{db: db}
}

func (r *pgCommunityRepo) Create(ctx context.Context, msg domain.CommunityMessage) (domain.CommunityMessage, error) {
	trip, err := json.Marshal(msg.Trip)
	if err != nil {
		return domain.CommunityMessage{}, fmt.Errorf("repo.CommunityRepo.Create: encode trip: %w", err)
	}
	sections, err := json.Marshal(msg.Sections)
	if err != nil {
		return domain.CommunityMessage{}, fmt.Errorf("repo.CommunityRepo.Create: encode sections: %w", err)
	}

	const q = `
		INSERT INTO community_messages (user_id, trip, sections, total_budget)
		VALUES (@user_id, @trip, @sections, @total_budget)
		RETURNING id, created_at`

	args := pgx.NamedArgs{
		"user_id":      msg.UserID,
		"trip":         trip,
		"sections":     sections,
		"total_budget": msg.TotalBudget,
	}

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q, args).Scan(&id, &msg.CreatedAt); err != nil {
		return domain.CommunityMessage{}, fmt.Errorf("repo.CommunityRepo.Create: %w", mapErr(err))
	}
	msg.ID = uuid.UUID(id.Bytes)
	return msg, nil
}

func (r *pgCommunityRepo) List(ctx context.Context) ([]domain.CommunityMessage, error) {
	const q = `
		SELECT m.id, m.user_id, m.trip, m.sections, m.total_budget, m.created_at,
		       u.username, u.first_name, u.last_name
		FROM community_messages m
		JOIN users u ON u.id = m.user_id
		ORDER BY m.created_at DESC, m.id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.CommunityRepo.List: %w", err)
	}
	msgs, err := collect(rows, scanCommunityMessage)
	if err != nil {
		return nil, fmt.Errorf("repo.CommunityRepo.List: scan: %w", err)
	}
	return msgs, nil
}

func scanCommunityMessage(s scanner) (domain.CommunityMessage, error) {
	var (
		m              domain.CommunityMessage
		id, user       pgtype.UUID
		trip, sections []byte
		author         domain.UserSummary
	)
	err := s.Scan(&id, &user, &trip, &sections, &m.TotalBudget, &m.CreatedAt,
		&author.Username, &author.FirstName, &author.LastName)
	if err != nil {
		return domain.CommunityMessage{}, err
	}
	if err := json.Unmarshal(trip, &m.Trip); err != nil {
		return domain.CommunityMessage{}, fmt.Errorf("decode trip: %w", err)
	}
	if err := json.Unmarshal(sections, &m.Sections); err != nil {
		return domain.CommunityMessage{}, fmt.Errorf("decode sections: %w", err)
	}
	m.ID = uuid.UUID(id.Bytes)
	m.UserID = uuid.UUID(user.Bytes)
	m.Author = &author
	return m, nil
}
