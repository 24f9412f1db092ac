package postgres

import (
	"context"
	"fmt"

	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegistrationRepository backs the admission side: pending inserts and
// read accessors. The duplicate rule lives in a partial unique index on
// (event_id, lower(email)) over pending/approved rows, so two concurrent
// submissions cannot both pass a check-then-insert.
type RegistrationRepository struct {
	pool *pgxpool.Pool
}

func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

func (r *RegistrationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

const registrationColumns = `id, event_id, student_id, name, email, college, department, year,
status, approval_date, registration_date`

func scanRegistration(row pgx.Row) (domain.Registration, error) {
	var reg domain.Registration
	err := row.Scan(
		&reg.ID, &reg.EventID, &reg.StudentID, &reg.Name, &reg.Email,
		&reg.College, &reg.Department, &reg.Year, &reg.Status,
		&reg.ApprovalDate, &reg.RegistrationDate,
	)
	return reg, err
}

func (r *RegistrationRepository) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	event, err := scanEvent(r.queryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Event{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (r *RegistrationRepository) CreateRegistration(ctx context.Context, reg domain.Registration) error {
	const stmt = `
INSERT INTO registrations (id, event_id, student_id, name, email, college, department, year,
	status, registration_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.exec(ctx, stmt,
		reg.ID, reg.EventID, reg.StudentID, reg.Name, reg.Email,
		reg.College, reg.Department, reg.Year, reg.Status, reg.RegistrationDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateRegistration
		}
		if isForeignKeyViolation(err) {
			return domain.ErrEventNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

func (r *RegistrationRepository) GetRegistration(ctx context.Context, id string) (domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	reg, err := scanRegistration(r.queryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Registration{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Registration{}, domain.ErrRegistrationNotFound
		}
		return domain.Registration{}, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	query := `SELECT ` + registrationColumns + `
FROM registrations WHERE event_id = $1
ORDER BY registration_date DESC, id ASC`
	return r.list(ctx, query, eventID)
}

func (r *RegistrationRepository) ListByEmail(ctx context.Context, email string) ([]domain.Registration, error) {
	query := `SELECT ` + registrationColumns + `
FROM registrations WHERE lower(email) = lower($1)
ORDER BY registration_date DESC, id ASC`
	return r.list(ctx, query, email)
}

func (r *RegistrationRepository) ListByStatus(ctx context.Context, status domain.RegistrationStatus) ([]domain.Registration, error) {
	query := `SELECT ` + registrationColumns + `
FROM registrations WHERE status = $1
ORDER BY registration_date DESC, id ASC`
	return r.list(ctx, query, status)
}

func (r *RegistrationRepository) StatusesByEmail(ctx context.Context, email string) (map[string]domain.RegistrationStatus, error) {
	// The active-uniqueness index allows one rejected row plus one
	// pending/approved row per event; the later submission wins the map.
	const query = `
SELECT event_id, status
FROM registrations
WHERE lower(email) = lower($1)
ORDER BY registration_date ASC`

	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("statuses by email: %w", err)
	}
	defer rows.Close()

	statuses := make(map[string]domain.RegistrationStatus)
	for rows.Next() {
		var eventID string
		var status domain.RegistrationStatus
		if err := rows.Scan(&eventID, &status); err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		statuses[eventID] = status
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate statuses: %w", rows.Err())
	}
	return statuses, nil
}

func (r *RegistrationRepository) list(ctx context.Context, query string, args ...any) ([]domain.Registration, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	if rows.Err() != nil {
		if isInvalidUUID(rows.Err()) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("iterate registrations: %w", rows.Err())
	}
	return regs, nil
}

func (r *RegistrationRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *RegistrationRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
