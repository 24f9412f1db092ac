package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/app"
	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/domain"
	"github.com/go-chi/chi/v5"
)

// LetterProvider is the minimal interface for the approval-letter read
// model consumed by the downstream document renderer.
type LetterProvider interface {
	LetterData(ctx context.Context, actor domain.Actor, registrationID string) (app.ApprovalLetter, error)
}

type letterResponse struct {
	ReferenceCode string    `json:"reference_code"`
	EventTitle    string    `json:"event_title"`
	EventDate     time.Time `json:"event_date"`
	EventCategory string    `json:"event_category"`
	StudentID     string    `json:"student_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	College       string    `json:"college"`
	Department    string    `json:"department"`
	Year          string    `json:"year"`
	ApprovalDate  time.Time `json:"approval_date"`
}

func HandleLetterData(svc LetterProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		letter, err := svc.LetterData(r.Context(), actor, chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(letterResponse{
			ReferenceCode: letter.ReferenceCode,
			EventTitle:    letter.EventTitle,
			EventDate:     letter.EventDate,
			EventCategory: string(letter.EventCategory),
			StudentID:     letter.StudentID,
			Name:          letter.Name,
			Email:         letter.Email,
			College:       letter.College,
			Department:    letter.Department,
			Year:          letter.Year,
			ApprovalDate:  letter.ApprovalDate,
		})
	}
}
