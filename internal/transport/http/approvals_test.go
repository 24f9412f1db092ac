package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/domain"
)

func TestHandleApproveRegistration(t *testing.T) {
	t.Parallel()

	approvedAt := time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC)
	approved := domain.Registration{
		ID:           "reg-1",
		EventID:      "event-1",
		Status:       domain.StatusApproved,
		ApprovalDate: &approvedAt,
	}

	tests := []struct {
		name           string
		actor          domain.Actor
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			actor:          testAdmin,
			expectedStatus: http.StatusOK,
			expectedSubstr: `"status":"approved"`,
		},
		{
			name:           "non-admin forbidden",
			actor:          testStudent,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "anonymous rejected",
			actor:          domain.Actor{},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "not found",
			actor:          testAdmin,
			serviceErr:     domain.ErrRegistrationNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "already finalized",
			actor:          testAdmin,
			serviceErr:     domain.ErrAlreadyFinalized,
			expectedStatus: http.StatusConflict,
			expectedSubstr: `"code":"already_finalized"`,
		},
		{
			name:           "event full",
			actor:          testAdmin,
			serviceErr:     domain.ErrEventFull,
			expectedStatus: http.StatusConflict,
			expectedSubstr: `"code":"event_full"`,
		},
		{
			name:           "internal error",
			actor:          testAdmin,
			serviceErr:     errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubApprovalService{reg: approved, err: tt.serviceErr}
			req := withActor(httptest.NewRequest(http.MethodPost, "/registrations/reg-1/approve", nil), tt.actor)
			req = withURLParam(req, "id", "reg-1")
			rec := httptest.NewRecorder()

			HandleApproveRegistration(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

func TestHandleRejectRegistration(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		svc := &stubApprovalService{reg: domain.Registration{ID: "reg-1", Status: domain.StatusRejected}}
		req := withActor(httptest.NewRequest(http.MethodPost, "/registrations/reg-1/reject", nil), testAdmin)
		req = withURLParam(req, "id", "reg-1")
		rec := httptest.NewRecorder()

		HandleRejectRegistration(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"status":"rejected"`) {
			t.Fatalf("unexpected body %q", rec.Body.String())
		}
	})

	t.Run("already finalized", func(t *testing.T) {
		svc := &stubApprovalService{err: domain.ErrAlreadyFinalized}
		req := withActor(httptest.NewRequest(http.MethodPost, "/registrations/reg-1/reject", nil), testAdmin)
		req = withURLParam(req, "id", "reg-1")
		rec := httptest.NewRecorder()

		HandleRejectRegistration(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

func TestHandleReleaseSlot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		actor          domain.Actor
		serviceErr     error
		expectedStatus int
	}{
		{name: "success", actor: testAdmin, expectedStatus: http.StatusNoContent},
		{name: "non-admin forbidden", actor: testStudent, expectedStatus: http.StatusForbidden},
		{name: "nothing to release", actor: testAdmin, serviceErr: domain.ErrLedgerDrift, expectedStatus: http.StatusInternalServerError},
		{name: "unknown event", actor: testAdmin, serviceErr: domain.ErrEventNotFound, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubApprovalService{err: tt.serviceErr}
			req := withActor(httptest.NewRequest(http.MethodPost, "/events/event-1/release-slot", nil), tt.actor)
			req = withURLParam(req, "id", "event-1")
			rec := httptest.NewRecorder()

			HandleReleaseSlot(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

type stubApprovalService struct {
	reg domain.Registration
	err error
}

func (s *stubApprovalService) Approve(_ context.Context, _ domain.Actor, _ string) (domain.Registration, error) {
	if s.err != nil {
		return domain.Registration{}, s.err
	}
	return s.reg, nil
}

func (s *stubApprovalService) Reject(_ context.Context, _ domain.Actor, _ string) (domain.Registration, error) {
	if s.err != nil {
		return domain.Registration{}, s.err
	}
	return s.reg, nil
}

func (s *stubApprovalService) ReleaseSlot(_ context.Context, _ domain.Actor, _ string) error {
	return s.err
}
