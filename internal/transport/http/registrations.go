package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/app"
	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/domain"
	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/monitoring"
	"github.com/go-chi/chi/v5"
)

// RegistrationAdmission is the minimal interface needed to submit a
// registration.
type RegistrationAdmission interface {
	Submit(ctx context.Context, actor domain.Actor, in app.SubmitRegistrationInput) (domain.Registration, error)
}

// RegistrationQueries is the minimal interface for registration reads.
type RegistrationQueries interface {
	ListForEvent(ctx context.Context, actor domain.Actor, eventID string) ([]domain.Registration, error)
	ListOwn(ctx context.Context, actor domain.Actor) ([]domain.Registration, error)
	ListByStatus(ctx context.Context, actor domain.Actor, status domain.RegistrationStatus) ([]domain.Registration, error)
	Get(ctx context.Context, actor domain.Actor, id string) (domain.Registration, error)
	StatusMap(ctx context.Context, actor domain.Actor) (map[string]domain.RegistrationStatus, error)
}

type registrationResponse struct {
	ID               string     `json:"id"`
	EventID          string     `json:"event_id"`
	StudentID        string     `json:"student_id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	College          string     `json:"college"`
	Department       string     `json:"department"`
	Year             string     `json:"year"`
	Status           string     `json:"status"`
	ApprovalDate     *time.Time `json:"approval_date,omitempty"`
	RegistrationDate time.Time  `json:"registration_date"`
}

func toRegistrationResponse(reg domain.Registration) registrationResponse {
	return registrationResponse{
		ID:               reg.ID,
		EventID:          reg.EventID,
		StudentID:        reg.StudentID,
		Name:             reg.Name,
		Email:            reg.Email,
		College:          reg.College,
		Department:       reg.Department,
		Year:             reg.Year,
		Status:           string(reg.Status),
		ApprovalDate:     reg.ApprovalDate,
		RegistrationDate: reg.RegistrationDate,
	}
}

func writeRegistrationList(w http.ResponseWriter, regs []domain.Registration) {
	resp := make([]registrationResponse, 0, len(regs))
	for _, reg := range regs {
		resp = append(resp, toRegistrationResponse(reg))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

type submitRegistrationRequest struct {
	EventID    string `json:"event_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	College    string `json:"college"`
	Department string `json:"department"`
	Year       string `json:"year"`
}

// HandleSubmitRegistration admits a registration request in status
// pending. Capacity is not consumed here.
func HandleSubmitRegistration(svc RegistrationAdmission) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		var req submitRegistrationRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		reg, err := svc.Submit(r.Context(), actor, app.SubmitRegistrationInput{
			EventID:    req.EventID,
			Name:       req.Name,
			Email:      req.Email,
			College:    req.College,
			Department: req.Department,
			Year:       req.Year,
		})
		if err != nil {
			monitoring.RecordAdmission(admissionOutcome(err))
			writeDomainError(w, err)
			return
		}
		monitoring.RecordAdmission(monitoring.OutcomeAccepted)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(toRegistrationResponse(reg))
	}
}

func admissionOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateRegistration):
		return monitoring.OutcomeDuplicate
	case errors.Is(err, domain.ErrEventFull):
		return monitoring.OutcomeFull
	case errors.Is(err, domain.ErrRegistrationClosed):
		return monitoring.OutcomeClosed
	default:
		return monitoring.OutcomeError
	}
}

// HandleListRegistrations returns an event's registrations for admins
// (?event_id=...) or the caller's own registrations otherwise.
func HandleListRegistrations(svc RegistrationQueries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		if eventID := r.URL.Query().Get("event_id"); eventID != "" && actor.IsAdmin() {
			regs, err := svc.ListForEvent(r.Context(), actor, eventID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeRegistrationList(w, regs)
			return
		}

		regs, err := svc.ListOwn(r.Context(), actor)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeRegistrationList(w, regs)
	}
}

// HandleListByStatus serves the admin approval queue; the status query
// parameter defaults to pending.
func HandleListByStatus(svc RegistrationQueries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAdmin(w, r)
		if !ok {
			return
		}
		regs, err := svc.ListByStatus(r.Context(), actor, domain.RegistrationStatus(r.URL.Query().Get("status")))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeRegistrationList(w, regs)
	}
}

// HandleStatusMap returns event id -> status for the calling participant.
func HandleStatusMap(svc RegistrationQueries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}
		statuses, err := svc.StatusMap(r.Context(), actor)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(statuses)
	}
}

func HandleGetRegistration(svc RegistrationQueries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}
		reg, err := svc.Get(r.Context(), actor, chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(toRegistrationResponse(reg))
	}
}
