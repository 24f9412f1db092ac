package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/app"
	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/domain"
)

func TestHandleLetterData(t *testing.T) {
	t.Parallel()

	letter := app.ApprovalLetter{
		ReferenceCode: "APR-C3D4E5F6",
		EventTitle:    "Hack Night",
		EventDate:     time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC),
		EventCategory: domain.CategoryHackathon,
		StudentID:     "STU-042",
		Name:          "Ravi Kumar",
		Email:         "ravi@college.edu",
		ApprovalDate:  time.Date(2026, 3, 15, 11, 0, 0, 0, time.UTC),
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
			actor:          testStudent,
			expectedStatus: http.StatusOK,
			expectedSubstr: `"reference_code":"APR-C3D4E5F6"`,
		},
		{
			name:           "anonymous rejected",
			actor:          domain.Actor{},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "not approved",
			actor:          testStudent,
			serviceErr:     domain.ErrLetterNotAvailable,
			expectedStatus: http.StatusConflict,
			expectedSubstr: `"code":"letter_not_available"`,
		},
		{
			name:           "not owner",
			actor:          testStudent,
			serviceErr:     domain.ErrForbidden,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "not found",
			actor:          testStudent,
			serviceErr:     domain.ErrRegistrationNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubLetterService{letter: letter, err: tt.serviceErr}
			req := withActor(httptest.NewRequest(http.MethodGet, "/letters/reg-1", nil), tt.actor)
			req = withURLParam(req, "id", "reg-1")
			rec := httptest.NewRecorder()

			HandleLetterData(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

type stubLetterService struct {
	letter app.ApprovalLetter
	err    error
}

func (s *stubLetterService) LetterData(_ context.Context, _ domain.Actor, _ string) (app.ApprovalLetter, error) {
	if s.err != nil {
		return app.ApprovalLetter{}, s.err
	}
	return s.letter, nil
}
