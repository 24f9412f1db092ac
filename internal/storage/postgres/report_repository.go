package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/app"
	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportRepository serves the read-only aggregation queries. Nothing
// here mutates state; every query is a plain fold over committed rows.
type ReportRepository struct {
	pool *pgxpool.Pool
}

func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

func (r *ReportRepository) CountEvents(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM events`)
}

func (r *ReportRepository) CountRegistrations(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM registrations`)
}

func (r *ReportRepository) CountRegistrationsByStatus(ctx context.Context, status domain.RegistrationStatus) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM registrations WHERE status = $1`, status)
}

func (r *ReportRepository) CountEventsByType(ctx context.Context) (map[domain.EventType]int, error) {
	const query = `SELECT type, COUNT(*) FROM events GROUP BY type`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count events by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.EventType]int)
	for rows.Next() {
		var t domain.EventType
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("scan type count: %w", err)
		}
		counts[t] = n
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate type counts: %w", rows.Err())
	}
	return counts, nil
}

func (r *ReportRepository) RegistrationsPerEvent(ctx context.Context, limit int) ([]app.EventRegistrationCount, error) {
	// Ties break by event id so repeated runs return the same order.
	query := `
SELECT e.id, e.title, COUNT(reg.id)
FROM events e
JOIN registrations reg ON reg.event_id = e.id
GROUP BY e.id, e.title
ORDER BY COUNT(reg.id) DESC, e.id ASC`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("registrations per event: %w", err)
	}
	defer rows.Close()

	var out []app.EventRegistrationCount
	for rows.Next() {
		var row app.EventRegistrationCount
		if err := rows.Scan(&row.EventID, &row.Title, &row.Registrations); err != nil {
			return nil, fmt.Errorf("scan event count: %w", err)
		}
		out = append(out, row)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate event counts: %w", rows.Err())
	}
	return out, nil
}

func (r *ReportRepository) CategoryDistribution(ctx context.Context) ([]app.CategoryCount, error) {
	const query = `SELECT category, COUNT(*) FROM events GROUP BY category ORDER BY category ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("category distribution: %w", err)
	}
	defer rows.Close()

	var out []app.CategoryCount
	for rows.Next() {
		var row app.CategoryCount
		if err := rows.Scan(&row.Category, &row.Count); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		out = append(out, row)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate category counts: %w", rows.Err())
	}
	return out, nil
}

func (r *ReportRepository) MonthlyCounts(ctx context.Context, limit int) ([]app.MonthlyCount, error) {
	// Newest buckets first so LIMIT keeps the most recent months; the
	// service reverses into chronological order.
	const query = `
SELECT EXTRACT(YEAR FROM registration_date)::int,
	EXTRACT(MONTH FROM registration_date)::int,
	COUNT(*)
FROM registrations
GROUP BY 1, 2
ORDER BY 1 DESC, 2 DESC
LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("monthly counts: %w", err)
	}
	defer rows.Close()

	var out []app.MonthlyCount
	for rows.Next() {
		var year, month, n int
		if err := rows.Scan(&year, &month, &n); err != nil {
			return nil, fmt.Errorf("scan monthly count: %w", err)
		}
		out = append(out, app.MonthlyCount{
			Year:          year,
			Month:         time.Month(month),
			Registrations: n,
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate monthly counts: %w", rows.Err())
	}
	return out, nil
}

func (r *ReportRepository) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
