package app

import (
	"context"
	"strings"
	"time"

	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/domain"
)

type LetterRepository interface {
	GetRegistrationWithEvent(ctx context.Context, registrationID string) (domain.Registration, domain.Event, error)
}

// ApprovalLetter is the read model consumed by the downstream letter
// renderer: everything it needs without further lookups.
type ApprovalLetter struct {
	ReferenceCode string
	EventTitle    string
	EventDate     time.Time
	EventCategory domain.EventCategory
	StudentID     string
	Name          string
	Email         string
	College       string
	Department    string
	Year          string
	ApprovalDate  time.Time
}

type LetterService struct {
	repo LetterRepository
}

func NewLetterService(repo LetterRepository) *LetterService {
	return &LetterService{repo: repo}
}

// LetterData assembles the approval-letter read model. Only approved
// registrations produce a letter; participants may only fetch their own.
func (s *LetterService) LetterData(ctx context.Context, actor domain.Actor, registrationID string) (ApprovalLetter, error) {
	if registrationID == "" {
		return ApprovalLetter{}, domain.ErrInvalidID
	}
	reg, event, err := s.repo.GetRegistrationWithEvent(ctx, registrationID)
	if err != nil {
		return ApprovalLetter{}, err
	}
	if !actor.IsAdmin() && !strings.EqualFold(reg.Email, actor.Email) {
		return ApprovalLetter{}, domain.ErrForbidden
	}
	if reg.Status != domain.StatusApproved || reg.ApprovalDate == nil {
		return ApprovalLetter{}, domain.ErrLetterNotAvailable
	}

	return ApprovalLetter{
		ReferenceCode: referenceCode(reg.ID),
		EventTitle:    event.Title,
		EventDate:     event.Date,
		EventCategory: event.Category,
		StudentID:     reg.StudentID,
		Name:          reg.Name,
		Email:         reg.Email,
		College:       reg.College,
		Department:    reg.Department,
		Year:          reg.Year,
		ApprovalDate:  *reg.ApprovalDate,
	}, nil
}

// referenceCode derives a short human-readable reference from the
// registration id, e.g. "APR-1A2B3C4D".
func referenceCode(registrationID string) string {
	compact := strings.ReplaceAll(registrationID, "-", "")
	if len(compact) > 8 {
		compact = compact[len(compact)-8:]
	}
	return "APR-" + strings.ToUpper(compact)
}
