package app

import (
	"context"
	"time"

	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/clock"
	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/domain"
)

type ApprovalRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetRegistrationForUpdate(ctx context.Context, id string) (domain.Registration, error)
	MarkApproved(ctx context.Context, id string, at time.Time) error
	MarkRejected(ctx context.Context, id string) error
	// ReserveSlot atomically increments booked_slots only while
	// booked_slots < total_slots and registration is open.
	ReserveSlot(ctx context.Context, eventID string) error
	// ReleaseSlot compensates a committed reservation; administrative
	// correction only, never part of the normal workflow.
	ReleaseSlot(ctx context.Context, eventID string) error
}

// ApprovalService resolves pending registrations to a terminal outcome.
// Approval and the capacity reservation commit as one transaction: either
// the status flips and a slot is consumed, or neither is observable.
type ApprovalService struct {
	repo  ApprovalRepository
	clock clock.Clock
}

func NewApprovalService(repo ApprovalRepository, clk clock.Clock) *ApprovalService {
	return &ApprovalService{
		repo:  repo,
		clock: clk,
	}
}

// Approve transitions a pending registration to approved and consumes one
// capacity unit. Concurrent approvals racing for the last slot resolve to
// exactly one winner; the loser gets ErrEventFull and its registration
// stays pending.
func (s *ApprovalService) Approve(ctx context.Context, actor domain.Actor, registrationID string) (domain.Registration, error) {
	if !actor.IsAdmin() {
		return domain.Registration{}, domain.ErrForbidden
	}
	if registrationID == "" {
		return domain.Registration{}, domain.ErrInvalidID
	}

	now := s.clock.Now()
	var result domain.Registration

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		reg, err := s.repo.GetRegistrationForUpdate(txCtx, registrationID)
		if err != nil {
			return err
		}
		if reg.Status.Terminal() {
			return domain.ErrAlreadyFinalized
		}

		// Status flip first, then the conditional increment. A failed
		// increment aborts the transaction, rolling the flip back.
		if err := s.repo.MarkApproved(txCtx, registrationID, now); err != nil {
			return err
		}
		if err := s.repo.ReserveSlot(txCtx, reg.EventID); err != nil {
			return err
		}

		reg.Status = domain.StatusApproved
		reg.ApprovalDate = &now
		result = reg
		return nil
	})
	if err != nil {
		return domain.Registration{}, err
	}
	return result, nil
}

// Reject transitions a pending registration to rejected. The ledger is
// untouched: a rejected registration never held capacity.
func (s *ApprovalService) Reject(ctx context.Context, actor domain.Actor, registrationID string) (domain.Registration, error) {
	if !actor.IsAdmin() {
		return domain.Registration{}, domain.ErrForbidden
	}
	if registrationID == "" {
		return domain.Registration{}, domain.ErrInvalidID
	}

	var result domain.Registration
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		reg, err := s.repo.GetRegistrationForUpdate(txCtx, registrationID)
		if err != nil {
			return err
		}
		if reg.Status.Terminal() {
			return domain.ErrAlreadyFinalized
		}
		if err := s.repo.MarkRejected(txCtx, registrationID); err != nil {
			return err
		}
		reg.Status = domain.StatusRejected
		result = reg
		return nil
	})
	if err != nil {
		return domain.Registration{}, err
	}
	return result, nil
}

// ReleaseSlot is the administrative correction path for a previously
// committed reservation. Approved registrations themselves are final.
func (s *ApprovalService) ReleaseSlot(ctx context.Context, actor domain.Actor, eventID string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if eventID == "" {
		return domain.ErrInvalidID
	}
	return s.repo.ReleaseSlot(ctx, eventID)
}
