package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ApprovalRepository carries the approve/reject transaction: the status
// flip and the capacity increment run on the same tx-carrying context,
// so a failed slot reservation rolls the flip back.
type ApprovalRepository struct {
	pool *pgxpool.Pool
}

func NewApprovalRepository(pool *pgxpool.Pool) *ApprovalRepository {
	return &ApprovalRepository{pool: pool}
}

func (r *ApprovalRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *ApprovalRepository) GetRegistrationForUpdate(ctx context.Context, id string) (domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1 FOR UPDATE`
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

func (r *ApprovalRepository) MarkApproved(ctx context.Context, id string, at time.Time) error {
	const stmt = `
UPDATE registrations
SET status = 'approved', approval_date = $2
WHERE id = $1 AND status = 'pending'`

	tag, err := r.exec(ctx, stmt, id, at)
	if err != nil {
		return fmt.Errorf("mark approved: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.transitionFailure(ctx, id)
	}
	return nil
}

func (r *ApprovalRepository) MarkRejected(ctx context.Context, id string) error {
	const stmt = `
UPDATE registrations
SET status = 'rejected'
WHERE id = $1 AND status = 'pending'`

	tag, err := r.exec(ctx, stmt, id)
	if err != nil {
		return fmt.Errorf("mark rejected: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.transitionFailure(ctx, id)
	}
	return nil
}

// transitionFailure disambiguates a zero-row transition: the record is
// either absent or already terminal.
func (r *ApprovalRepository) transitionFailure(ctx context.Context, id string) error {
	var exists bool
	if err := r.queryRow(ctx, `SELECT EXISTS (SELECT 1 FROM registrations WHERE id = $1)`, id).Scan(&exists); err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("check registration: %w", err)
	}
	if !exists {
		return domain.ErrRegistrationNotFound
	}
	return domain.ErrAlreadyFinalized
}

// ReserveSlot is the ledger's compare-and-increment. The conditional
// UPDATE takes the event row lock, so concurrent reservations against
// the last slot serialize and exactly one succeeds.
func (r *ApprovalRepository) ReserveSlot(ctx context.Context, eventID string) error {
	const stmt = `
UPDATE events
SET booked_slots = booked_slots + 1
WHERE id = $1 AND booked_slots < total_slots AND registration_closed = FALSE`

	tag, err := r.exec(ctx, stmt, eventID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("reserve slot: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var total, booked int
	var closed bool
	err = r.queryRow(ctx,
		`SELECT total_slots, booked_slots, registration_closed FROM events WHERE id = $1`,
		eventID,
	).Scan(&total, &booked, &closed)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("inspect event: %w", err)
	}
	if closed {
		return domain.ErrRegistrationClosed
	}
	return domain.ErrEventFull
}

func (r *ApprovalRepository) ReleaseSlot(ctx context.Context, eventID string) error {
	const stmt = `
UPDATE events
SET booked_slots = booked_slots - 1
WHERE id = $1 AND booked_slots > 0`

	tag, err := r.exec(ctx, stmt, eventID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("release slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.queryRow(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, eventID).Scan(&exists); err != nil {
			return fmt.Errorf("check event: %w", err)
		}
		if !exists {
			return domain.ErrEventNotFound
		}
		// Nothing booked; releasing below zero would break the ledger.
		return domain.ErrLedgerDrift
	}
	return nil
}

// VerifyLedger recomputes the core invariant for one event:
// booked_slots == count of approved registrations.
func (r *ApprovalRepository) VerifyLedger(ctx context.Context, eventID string) error {
	const query = `
SELECT e.booked_slots,
	(SELECT COUNT(*) FROM registrations reg WHERE reg.event_id = e.id AND reg.status = 'approved')
FROM events e
WHERE e.id = $1`

	var booked, approved int
	if err := r.queryRow(ctx, query, eventID).Scan(&booked, &approved); err != nil {
		if err == pgx.ErrNoRows {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("verify ledger: %w", err)
	}
	if booked != approved {
		return fmt.Errorf("%w: booked=%d approved=%d event=%s", domain.ErrLedgerDrift, booked, approved, eventID)
	}
	return nil
}

func (r *ApprovalRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ApprovalRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
