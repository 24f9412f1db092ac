package app

import (
	"context"
	"strings"

	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/clock"
	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/domain"
)

type RegistrationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	CreateRegistration(ctx context.Context, reg domain.Registration) error
	GetRegistration(ctx context.Context, id string) (domain.Registration, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Registration, error)
	ListByStatus(ctx context.Context, status domain.RegistrationStatus) ([]domain.Registration, error)
	StatusesByEmail(ctx context.Context, email string) (map[string]domain.RegistrationStatus, error)
}

// RegistrationService is the admission side of the workflow: it creates
// pending registrations and never touches the capacity ledger.
type RegistrationService struct {
	repo  RegistrationRepository
	clock clock.Clock
}

func NewRegistrationService(repo RegistrationRepository, clk clock.Clock) *RegistrationService {
	return &RegistrationService{
		repo:  repo,
		clock: clk,
	}
}

type SubmitRegistrationInput struct {
	EventID    string
	Name       string
	Email      string
	College    string
	Department string
	Year       string
}

// Submit admits a registration request in status pending. The full/closed
// checks here are advisory fast paths; the authoritative capacity check
// happens when an admin approves. Duplicate admission is enforced by the
// store's uniqueness constraint, not by a check-then-insert.
func (s *RegistrationService) Submit(ctx context.Context, actor domain.Actor, in SubmitRegistrationInput) (domain.Registration, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.College = strings.TrimSpace(in.College)
	in.Department = strings.TrimSpace(in.Department)
	in.Year = strings.TrimSpace(in.Year)
	if in.EventID == "" {
		return domain.Registration{}, domain.ErrInvalidID
	}
	if in.Name == "" || in.Email == "" || in.College == "" || in.Department == "" || in.Year == "" {
		return domain.Registration{}, domain.ErrMissingField
	}

	reg := domain.Registration{
		ID:               newUUID(),
		EventID:          in.EventID,
		StudentID:        actor.StudentID,
		Name:             in.Name,
		Email:            in.Email,
		College:          in.College,
		Department:       in.Department,
		Year:             in.Year,
		Status:           domain.StatusPending,
		RegistrationDate: s.clock.Now(),
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetEvent(txCtx, in.EventID)
		if err != nil {
			return err
		}
		if event.RegistrationClosed {
			return domain.ErrRegistrationClosed
		}
		if event.IsFull() {
			return domain.ErrEventFull
		}
		return s.repo.CreateRegistration(txCtx, reg)
	})
	if err != nil {
		return domain.Registration{}, err
	}
	return reg, nil
}

// ListForEvent returns an event's registrations, admin only.
func (s *RegistrationService) ListForEvent(ctx context.Context, actor domain.Actor, eventID string) ([]domain.Registration, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if eventID == "" {
		return nil, domain.ErrInvalidID
	}
	if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListByEvent(ctx, eventID)
}

// ListOwn returns the calling participant's registrations.
func (s *RegistrationService) ListOwn(ctx context.Context, actor domain.Actor) ([]domain.Registration, error) {
	return s.repo.ListByEmail(ctx, strings.ToLower(strings.TrimSpace(actor.Email)))
}

// ListByStatus returns registrations in the given status, admin only.
// An empty status means the pending approval queue.
func (s *RegistrationService) ListByStatus(ctx context.Context, actor domain.Actor, status domain.RegistrationStatus) ([]domain.Registration, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if status == "" {
		status = domain.StatusPending
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListByStatus(ctx, status)
}

// Get returns a single registration. Participants may only read their own.
func (s *RegistrationService) Get(ctx context.Context, actor domain.Actor, id string) (domain.Registration, error) {
	if id == "" {
		return domain.Registration{}, domain.ErrInvalidID
	}
	reg, err := s.repo.GetRegistration(ctx, id)
	if err != nil {
		return domain.Registration{}, err
	}
	if !actor.IsAdmin() && !strings.EqualFold(reg.Email, actor.Email) {
		return domain.Registration{}, domain.ErrForbidden
	}
	return reg, nil
}

// StatusMap returns event id -> status for the calling participant.
func (s *RegistrationService) StatusMap(ctx context.Context, actor domain.Actor) (map[string]domain.RegistrationStatus, error) {
	return s.repo.StatusesByEmail(ctx, strings.ToLower(strings.TrimSpace(actor.Email)))
}
