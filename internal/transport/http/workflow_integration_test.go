package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/app"
	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/clock"
	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/domain"
	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/storage/postgres"
	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/testutil"
)

func TestAdmissionWorkflow_HTTPIntegration(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	sysClock := clock.NewSystem()
	eventSvc := app.NewEventService(postgres.NewEventRepository(pool), sysClock)
	registrationSvc := app.NewRegistrationService(postgres.NewRegistrationRepository(pool), sysClock)
	approvalSvc := app.NewApprovalService(postgres.NewApprovalRepository(pool), sysClock)
	letterSvc := app.NewLetterService(postgres.NewLetterRepository(pool))
	reportSvc := app.NewReportService(postgres.NewReportRepository(pool))

	handler := NewRouter(Services{
		Catalog:       eventSvc,
		EventAdmin:    eventSvc,
		Admission:     registrationSvc,
		Registrations: registrationSvc,
		Approvals:     approvalSvc,
		Reports:       reportSvc,
		Letters:       letterSvc,
	}, log.Default(), nil)

	asStudent := func(req *http.Request) *http.Request {
		req.Header.Set(actorIDHeader, "actor-1")
		req.Header.Set(actorEmailHeader, "ravi@college.edu")
		req.Header.Set(studentIDHeader, "STU-000042")
		return req
	}
	asAdmin := func(req *http.Request) *http.Request {
		req.Header.Set(actorIDHeader, "admin-1")
		req.Header.Set(actorEmailHeader, "admin@college.edu")
		req.Header.Set(actorRoleHeader, string(domain.RoleAdmin))
		return req
	}

	// Admin creates an event with a single slot.
	createBody := `{"title":"Hack Night","date":"2026-04-02T09:00:00Z","category":"hackathon","location":"Main Block","venue":"Lab 3","total_slots":1}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, asAdmin(httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(createBody))))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create event: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var event eventResponse
	if err := json.NewDecoder(rec.Body).Decode(&event); err != nil {
		t.Fatalf("decode event: %v", err)
	}

	// Student submits; the registration lands pending without consuming
	// the slot.
	submitBody := `{"event_id":"` + event.ID + `","name":"Ravi Kumar","email":"ravi@college.edu","college":"GPCET","department":"CSE","year":"3"}`
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, asStudent(httptest.NewRequest(http.MethodPost, "/registrations", bytes.NewBufferString(submitBody))))
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var reg registrationResponse
	if err := json.NewDecoder(rec.Body).Decode(&reg); err != nil {
		t.Fatalf("decode registration: %v", err)
	}
	if reg.Status != string(domain.StatusPending) {
		t.Fatalf("expected pending, got %s", reg.Status)
	}

	var booked int
	if err := pool.QueryRow(ctx, `SELECT booked_slots FROM events WHERE id = $1`, event.ID).Scan(&booked); err != nil {
		t.Fatalf("query booked: %v", err)
	}
	if booked != 0 {
		t.Fatalf("expected 0 booked slots after submit, got %d", booked)
	}

	// Resubmission while pending conflicts.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, asStudent(httptest.NewRequest(http.MethodPost, "/registrations", bytes.NewBufferString(submitBody))))
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate submit: expected 409, got %d", rec.Code)
	}

	// Letter is not available before approval.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, asStudent(httptest.NewRequest(http.MethodGet, "/letters/"+reg.ID, nil)))
	if rec.Code != http.StatusConflict {
		t.Fatalf("letter before approval: expected 409, got %d", rec.Code)
	}

	// Students may not approve.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, asStudent(httptest.NewRequest(http.MethodPut, "/registrations/"+reg.ID+"/approve", nil)))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("student approve: expected 403, got %d", rec.Code)
	}

	// Admin approves; the slot is consumed atomically with the flip.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, asAdmin(httptest.NewRequest(http.MethodPut, "/registrations/"+reg.ID+"/approve", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var approved registrationResponse
	if err := json.NewDecoder(rec.Body).Decode(&approved); err != nil {
		t.Fatalf("decode approved: %v", err)
	}
	if approved.Status != string(domain.StatusApproved) || approved.ApprovalDate == nil {
		t.Fatalf("unexpected approved registration: %+v", approved)
	}

	if err := pool.QueryRow(ctx, `SELECT booked_slots FROM events WHERE id = $1`, event.ID).Scan(&booked); err != nil {
		t.Fatalf("query booked: %v", err)
	}
	if booked != 1 {
		t.Fatalf("expected 1 booked slot after approval, got %d", booked)
	}

	// A second approval attempt conflicts.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, asAdmin(httptest.NewRequest(http.MethodPut, "/registrations/"+reg.ID+"/approve", nil)))
	if rec.Code != http.StatusConflict {
		t.Fatalf("re-approve: expected 409, got %d", rec.Code)
	}

	// The participant fetches the approval letter.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, asStudent(httptest.NewRequest(http.MethodGet, "/letters/"+reg.ID, nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("letter: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var letter letterResponse
	if err := json.NewDecoder(rec.Body).Decode(&letter); err != nil {
		t.Fatalf("decode letter: %v", err)
	}
	if letter.EventTitle != "Hack Night" || letter.ReferenceCode == "" {
		t.Fatalf("unexpected letter: %+v", letter)
	}

	// The status map reflects the approval.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, asStudent(httptest.NewRequest(http.MethodGet, "/registrations/my-status", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status map: expected 200, got %d", rec.Code)
	}
	var statuses map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&statuses); err != nil {
		t.Fatalf("decode statuses: %v", err)
	}
	if statuses[event.ID] != string(domain.StatusApproved) {
		t.Fatalf("expected approved in status map, got %+v", statuses)
	}

	// Admin statistics see the approved registration.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/analytics/stats", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d", rec.Code)
	}
	var sum summaryResponse
	if err := json.NewDecoder(rec.Body).Decode(&sum); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if sum.TotalEvents != 1 || sum.ApprovedCount != 1 || sum.MostRegisteredEvent != "Hack Night" {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}
