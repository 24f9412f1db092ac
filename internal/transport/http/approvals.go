package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/domain"
	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/monitoring"
	"github.com/go-chi/chi/v5"
)

// ApprovalWorkflow is the minimal interface needed to resolve pending
// registrations.
type ApprovalWorkflow interface {
	Approve(ctx context.Context, actor domain.Actor, registrationID string) (domain.Registration, error)
	Reject(ctx context.Context, actor domain.Actor, registrationID string) (domain.Registration, error)
	ReleaseSlot(ctx context.Context, actor domain.Actor, eventID string) error
}

// HandleApproveRegistration flips a pending registration to approved and
// consumes one capacity unit atomically. Racing into a full event yields
// an explicit conflict.
func HandleApproveRegistration(svc ApprovalWorkflow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAdmin(w, r)
		if !ok {
			return
		}

		reg, err := svc.Approve(r.Context(), actor, chi.URLParam(r, "id"))
		if err != nil {
			monitoring.RecordApproval("conflict")
			writeDomainError(w, err)
			return
		}
		monitoring.RecordApproval("ok")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(toRegistrationResponse(reg))
	}
}

func HandleRejectRegistration(svc ApprovalWorkflow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAdmin(w, r)
		if !ok {
			return
		}

		reg, err := svc.Reject(r.Context(), actor, chi.URLParam(r, "id"))
		if err != nil {
			monitoring.RecordRejection("conflict")
			writeDomainError(w, err)
			return
		}
		monitoring.RecordRejection("ok")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(toRegistrationResponse(reg))
	}
}

// HandleReleaseSlot is the administrative correction path for a
// previously committed reservation; not part of the normal workflow.
func HandleReleaseSlot(svc ApprovalWorkflow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAdmin(w, r)
		if !ok {
			return
		}
		if err := svc.ReleaseSlot(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
