package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/domain"
	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/testutil"
	"github.com/google/uuid"
)

func TestApprovalRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewApprovalRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("MarkApproved flips pending only", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		eventID := testutil.InsertEvent(t, ctx, pool, testutil.EventSeed{Title: "Hack Night"})
		regID := testutil.InsertRegistration(t, ctx, pool, eventID, "ravi@college.edu", domain.StatusPending)

		at := time.Now().UTC().Truncate(time.Microsecond)
		if err := repo.MarkApproved(ctx, regID, at); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := repo.MarkApproved(ctx, regID, at); err != domain.ErrAlreadyFinalized {
			t.Fatalf("expected ErrAlreadyFinalized, got %v", err)
		}
		if err := repo.MarkApproved(ctx, uuid.NewString(), at); err != domain.ErrRegistrationNotFound {
			t.Fatalf("expected ErrRegistrationNotFound, got %v", err)
		}
	})

	t.Run("MarkRejected is terminal", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		eventID := testutil.InsertEvent(t, ctx, pool, testutil.EventSeed{Title: "Hack Night"})
		regID := testutil.InsertRegistration(t, ctx, pool, eventID, "ravi@college.edu", domain.StatusPending)

		if err := repo.MarkRejected(ctx, regID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := repo.MarkRejected(ctx, regID); err != domain.ErrAlreadyFinalized {
			t.Fatalf("expected ErrAlreadyFinalized, got %v", err)
		}
		if err := repo.MarkApproved(ctx, regID, time.Now().UTC()); err != domain.ErrAlreadyFinalized {
			t.Fatalf("expected ErrAlreadyFinalized, got %v", err)
		}
	})

	t.Run("ReserveSlot stops at capacity", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		eventID := testutil.InsertEvent(t, ctx, pool, testutil.EventSeed{Title: "Hack Night", TotalSlots: 2})

		if err := repo.ReserveSlot(ctx, eventID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := repo.ReserveSlot(ctx, eventID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := repo.ReserveSlot(ctx, eventID); err != domain.ErrEventFull {
			t.Fatalf("expected ErrEventFull, got %v", err)
		}
		if err := repo.ReserveSlot(ctx, uuid.NewString()); err != domain.ErrEventNotFound {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})

	t.Run("ReserveSlot refuses closed events", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		eventID := testutil.InsertEvent(t, ctx, pool, testutil.EventSeed{
			Title: "Hack Night", TotalSlots: 5, RegistrationClosed: true,
		})

		if err := repo.ReserveSlot(ctx, eventID); err != domain.ErrRegistrationClosed {
			t.Fatalf("expected ErrRegistrationClosed, got %v", err)
		}
	})

	t.Run("failed reservation rolls back the status flip", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		eventID := testutil.InsertEvent(t, ctx, pool, testutil.EventSeed{
			Title: "Hack Night", TotalSlots: 1, BookedSlots: 1,
		})
		regID := testutil.InsertRegistration(t, ctx, pool, eventID, "ravi@college.edu", domain.StatusPending)

		err := repo.WithTx(ctx, func(txCtx context.Context) error {
			if err := repo.MarkApproved(txCtx, regID, time.Now().UTC()); err != nil {
				return err
			}
			return repo.ReserveSlot(txCtx, eventID)
		})
		if err != domain.ErrEventFull {
			t.Fatalf("expected ErrEventFull, got %v", err)
		}

		reg, err := repo.GetRegistrationForUpdate(ctx, regID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if reg.Status != domain.StatusPending {
			t.Fatalf("expected registration still pending, got %s", reg.Status)
		}
	})

	t.Run("concurrent approvals of the last slot admit exactly one", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		eventID := testutil.InsertEvent(t, ctx, pool, testutil.EventSeed{Title: "Hack Night", TotalSlots: 1})
		firstID := testutil.InsertRegistration(t, ctx, pool, eventID, "ravi@college.edu", domain.StatusPending)
		secondID := testutil.InsertRegistration(t, ctx, pool, eventID, "meena@college.edu", domain.StatusPending)

		approve := func(regID string) error {
			return repo.WithTx(ctx, func(txCtx context.Context) error {
				reg, err := repo.GetRegistrationForUpdate(txCtx, regID)
				if err != nil {
					return err
				}
				if reg.Status.Terminal() {
					return domain.ErrAlreadyFinalized
				}
				if err := repo.MarkApproved(txCtx, regID, time.Now().UTC()); err != nil {
					return err
				}
				return repo.ReserveSlot(txCtx, reg.EventID)
			})
		}

		errs := make(chan error, 2)
		var wg sync.WaitGroup
		for _, id := range []string{firstID, secondID} {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				errs <- approve(id)
			}(id)
		}
		wg.Wait()
		close(errs)

		var wins, fulls int
		for err := range errs {
			switch {
			case err == nil:
				wins++
			case errors.Is(err, domain.ErrEventFull):
				fulls++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if wins != 1 || fulls != 1 {
			t.Fatalf("expected one winner and one conflict, got %d wins and %d fulls", wins, fulls)
		}

		if err := repo.VerifyLedger(ctx, eventID); err != nil {
			t.Fatalf("ledger drifted: %v", err)
		}
	})

	t.Run("ReleaseSlot guards the floor", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		eventID := testutil.InsertEvent(t, ctx, pool, testutil.EventSeed{Title: "Hack Night", TotalSlots: 5, BookedSlots: 1})

		if err := repo.ReleaseSlot(ctx, eventID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := repo.ReleaseSlot(ctx, eventID); !errors.Is(err, domain.ErrLedgerDrift) {
			t.Fatalf("expected ErrLedgerDrift, got %v", err)
		}
		if err := repo.ReleaseSlot(ctx, uuid.NewString()); err != domain.ErrEventNotFound {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})

	t.Run("VerifyLedger reports drift", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		eventID := testutil.InsertEvent(t, ctx, pool, testutil.EventSeed{Title: "Hack Night", TotalSlots: 5, BookedSlots: 2})
		testutil.InsertRegistration(t, ctx, pool, eventID, "ravi@college.edu", domain.StatusApproved)

		if err := repo.VerifyLedger(ctx, eventID); !errors.Is(err, domain.ErrLedgerDrift) {
			t.Fatalf("expected ErrLedgerDrift, got %v", err)
		}

		if err := repo.ReleaseSlot(ctx, eventID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := repo.VerifyLedger(ctx, eventID); err != nil {
			t.Fatalf("expected ledger consistent, got %v", err)
		}
	})
}
