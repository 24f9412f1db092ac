package postgres

import (
	"context"
	"fmt"

	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LetterRepository fetches the joined registration+event row the letter
// read model needs in one round trip.
type LetterRepository struct {
	pool *pgxpool.Pool
}

func NewLetterRepository(pool *pgxpool.Pool) *LetterRepository {
	return &LetterRepository{pool: pool}
}

func (r *LetterRepository) GetRegistrationWithEvent(ctx context.Context, registrationID string) (domain.Registration, domain.Event, error) {
	const query = `
SELECT reg.id, reg.event_id, reg.student_id, reg.name, reg.email, reg.college,
	reg.department, reg.year, reg.status, reg.approval_date, reg.registration_date,
	e.id, e.title, e.description, e.date, e.category, e.type, e.location, e.venue,
	e.total_slots, e.booked_slots, e.visible, e.registration_closed, e.created_at
FROM registrations reg
JOIN events e ON e.id = reg.event_id
WHERE reg.id = $1`

	var reg domain.Registration
	var event domain.Event
	err := r.pool.QueryRow(ctx, query, registrationID).Scan(
		&reg.ID, &reg.EventID, &reg.StudentID, &reg.Name, &reg.Email,
		&reg.College, &reg.Department, &reg.Year, &reg.Status,
		&reg.ApprovalDate, &reg.RegistrationDate,
		&event.ID, &event.Title, &event.Description, &event.Date,
		&event.Category, &event.Type, &event.Location, &event.Venue,
		&event.TotalSlots, &event.BookedSlots, &event.Visible,
		&event.RegistrationClosed, &event.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Registration{}, domain.Event{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Registration{}, domain.Event{}, domain.ErrRegistrationNotFound
		}
		return domain.Registration{}, domain.Event{}, fmt.Errorf("get registration with event: %w", err)
	}
	return reg, event, nil
}
