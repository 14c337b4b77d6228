package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/travelplanner/backend/internal/domain"
)

// AnalyticsRepo runs the read-only aggregates behind the admin dashboard.
type AnalyticsRepo interface {
	// PopularCities groups trips by place name, most visited first.
	PopularCities(ctx context.Context, limit int) ([]domain.CityStat, error)

	// PopularActivities counts every activity string of every section, most
	// frequent first.
	PopularActivities(ctx context.Context, limit int) ([]domain.ActivityStat, error)

	// Totals counts rows across the store. Trips ending before now are
	// completed; users created at or after activeSince are active.
	Totals(ctx context.Context, now, activeSince time.Time) (domain.Totals, error)

	// UserTrend and TripTrend bucket creations by calendar month from since on.
	UserTrend(ctx context.Context, since time.Time) ([]domain.MonthCount, error)
	TripTrend(ctx context.Context, since time.Time) ([]domain.MonthCount, error)

	BudgetStats(ctx context.Context) (domain.BudgetStats, error)
	DurationStats(ctx context.Context) (domain.DurationStats, error)

	// PartySizeCounts maps number_of_people to how many trips have it.
	PartySizeCounts(ctx context.Context) (map[int]int, error)
}

type pgAnalyticsRepo struct {
	db db
}

// NewAnalyticsRepo constructs an AnalyticsRepo backed by the provided db connection.
func NewAnalyticsRepo(db db) AnalyticsRepo {
	return &pgAnalyticsRepo{db: db}
}

func (r *pgAnalyticsRepo) PopularCities(ctx context.Context, limit int) ([]domain.CityStat, error) {
	const q = `
		SELECT place_name,
		       COUNT(*),
		       SUM(number_of_people),
		       ROUND(AVG(number_of_people), 1)::float8,
		       MAX(start_date)
		FROM trips
		GROUP BY place_name
		ORDER BY COUNT(*) DESC, place_name
		LIMIT @limit`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.AnalyticsRepo.PopularCities: %w", err)
	}
	cities, err := collect(rows, func(s scanner) (domain.CityStat, error) {
		var c domain.CityStat
		err := s.Scan(&c.PlaceName, &c.VisitCount, &c.TotalPeople, &c.AvgPeople, &c.LastVisit)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("repo.AnalyticsRepo.PopularCities: scan: %w", err)
	}
	return cities, nil
}

func (r *pgAnalyticsRepo) PopularActivities(ctx context.Context, limit int) ([]domain.ActivityStat, error) {
	const q = `
		SELECT a.activity,
		       COUNT(*),
		       COALESCE(SUM(s.budget), 0)::float8,
		       ROUND(COALESCE(AVG(s.budget), 0))::int,
		       COUNT(DISTINCT s.place)
		FROM itinerary_sections s
		CROSS JOIN LATERAL unnest(s.activities) AS a(activity)
		GROUP BY a.activity
		ORDER BY COUNT(*) DESC, a.activity
		LIMIT @limit`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.AnalyticsRepo.PopularActivities: %w", err)
	}
	acts, err := collect(rows, func(s scanner) (domain.ActivityStat, error) {
		var a domain.ActivityStat
		err := s.Scan(&a.ActivityType, &a.Count, &a.TotalBudget, &a.AvgBudget, &a.UniqueLocations)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("repo.AnalyticsRepo.PopularActivities: scan: %w", err)
	}
	return acts, nil
}

func (r *pgAnalyticsRepo) Totals(ctx context.Context, now, activeSince time.Time) (domain.Totals, error) {
	const q = `
		SELECT (SELECT COUNT(*) FROM users),
		       (SELECT COUNT(*) FROM trips),
		       (SELECT COUNT(*) FROM trips WHERE end_date < @now),
		       (SELECT COUNT(*) FROM users WHERE created_at >= @active_since),
		       (SELECT COUNT(*) FROM itinerary_sections),
		       (SELECT COUNT(*) FROM community_messages)`

	var t domain.Totals
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"now": now, "active_since": activeSince}).
		Scan(&t.Users, &t.Trips, &t.CompletedTrips, &t.ActiveUsers, &t.ItinerarySections, &t.CommunityMessages)
	if err != nil {
		return domain.Totals{}, fmt.Errorf("repo.AnalyticsRepo.Totals: %w", err)
	}
	return t, nil
}

func (r *pgAnalyticsRepo) UserTrend(ctx context.Context, since time.Time) ([]domain.MonthCount, error) {
	const q = `
		SELECT EXTRACT(YEAR FROM created_at AT TIME ZONE 'UTC')::int  AS y,
		       EXTRACT(MONTH FROM created_at AT TIME ZONE 'UTC')::int AS m,
		       COUNT(*),
		       0
		FROM users
		WHERE created_at >= @since
		GROUP BY y, m
		ORDER BY y, m`
	return r.trend(ctx, "UserTrend", q, since)
}

func (r *pgAnalyticsRepo) TripTrend(ctx context.Context, since time.Time) ([]domain.MonthCount, error) {
	const q = `
		SELECT EXTRACT(YEAR FROM created_at AT TIME ZONE 'UTC')::int  AS y,
		       EXTRACT(MONTH FROM created_at AT TIME ZONE 'UTC')::int AS m,
		       COUNT(*),
		       SUM(number_of_people)
		FROM trips
		WHERE created_at >= @since
		GROUP BY y, m
		ORDER BY y, m`
	return r.trend(ctx, "TripTrend", q, since)
}

func (r *pgAnalyticsRepo) trend(ctx context.Context, op, q string, since time.Time) ([]domain.MonthCount, error) {
	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"since": since})
	if err != nil {
		return nil, fmt.Errorf("repo.AnalyticsRepo.%s: %w", op, err)
	}
	out, err := collect(rows, func(s scanner) (domain.MonthCount, error) {
		var m domain.MonthCount
		err := s.Scan(&m.Year, &m.Month, &m.Count, &m.TotalPeople)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("repo.AnalyticsRepo.%s: scan: %w", op, err)
	}
	return out, nil
}

func (r *pgAnalyticsRepo) BudgetStats(ctx context.Context) (domain.BudgetStats, error) {
	const q = `
		SELECT COALESCE(SUM(budget), 0)::float8,
		       COALESCE(AVG(budget), 0)::float8,
		       COALESCE(MAX(budget), 0)::float8,
		       COALESCE(MIN(budget), 0)::float8
		FROM itinerary_sections`

	var b domain.BudgetStats
	if err := r.db.QueryRow(ctx, q).Scan(&b.Total, &b.Avg, &b.Max, &b.Min); err != nil {
		return domain.BudgetStats{}, fmt.Errorf("repo.AnalyticsRepo.BudgetStats: %w", err)
	}
	return b, nil
}

// DurationStats measures (end - start) in fractional days.
func (r *pgAnalyticsRepo) DurationStats(ctx context.Context) (domain.DurationStats, error) {
	const q = `
		SELECT COALESCE(AVG(d), 0)::float8,
		       COALESCE(MAX(d), 0)::float8,
		       COALESCE(MIN(d), 0)::float8
		FROM (SELECT EXTRACT(EPOCH FROM end_date - start_date) / 86400 AS d FROM trips) durations`

	var d domain.DurationStats
	if err := r.db.QueryRow(ctx, q).Scan(&d.Avg, &d.Max, &d.Min); err != nil {
		return domain.DurationStats{}, fmt.Errorf("repo.AnalyticsRepo.DurationStats: %w", err)
	}
	return d, nil
}

func (r *pgAnalyticsRepo) PartySizeCounts(ctx context.Context) (map[int]int, error) {
	const q = `SELECT number_of_people, COUNT(*) FROM trips GROUP BY number_of_people`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.AnalyticsRepo.PartySizeCounts: %w", err)
	}
	defer rows.Close()

	counts := map[int]int{}
	for rows.Next() {
		var people, n int
		if err := rows.Scan(&people, &n); err != nil {
			return nil, fmt.Errorf("repo.AnalyticsRepo.PartySizeCounts: scan: %w", err)
		}
		counts[people] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.AnalyticsRepo.PartySizeCounts: rows: %w", err)
	}
	return counts, nil
}
