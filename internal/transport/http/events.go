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

// EventCatalog is the minimal interface needed for event reads.
type EventCatalog interface {
	ListEvents(ctx context.Context, actor domain.Actor, filter app.EventFilter) ([]domain.Event, error)
	GetEvent(ctx context.Context, id string) (domain.Event, error)
}

// EventAdmin is the minimal interface needed for event administration.
type EventAdmin interface {
	CreateEvent(ctx context.Context, actor domain.Actor, in app.CreateEventInput) (domain.Event, error)
	UpdateEvent(ctx context.Context, actor domain.Actor, id string, in app.UpdateEventInput) (domain.Event, error)
	EditCapacity(ctx context.Context, actor domain.Actor, id string, newTotal int) error
	DeleteEvent(ctx context.Context, actor domain.Actor, id string) error
}

type eventResponse struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Date               time.Time `json:"date"`
	Category           string    `json:"category"`
	Type               string    `json:"type"`
	Location           string    `json:"location"`
	Venue              string    `json:"venue"`
	TotalSlots         int       `json:"total_slots"`
	BookedSlots        int       `json:"booked_slots"`
	SlotsRemaining     int       `json:"slots_remaining"`
	Visible            bool      `json:"visible"`
	RegistrationClosed bool      `json:"registration_closed"`
	CreatedAt          time.Time `json:"created_at"`
}

func toEventResponse(event domain.Event) eventResponse {
	return eventResponse{
		ID:                 event.ID,
		Title:              event.Title,
		Description:        event.Description,
		Date:               event.Date,
		Category:           string(event.Category),
		Type:               string(event.Type),
		Location:           event.Location,
		Venue:              event.Venue,
		TotalSlots:         event.TotalSlots,
		BookedSlots:        event.BookedSlots,
		SlotsRemaining:     event.SlotsRemaining(),
		Visible:            event.Visible,
		RegistrationClosed: event.RegistrationClosed,
		CreatedAt:          event.CreatedAt,
	}
}

// HandleListEvents lists events, optionally filtered by category/type.
// Hidden events only appear for admin actors.
func HandleListEvents(svc EventCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter app.EventFilter
		if v := r.URL.Query().Get("category"); v != "" {
			category := domain.EventCategory(v)
			if !category.Valid() {
				writeError(w, http.StatusBadRequest, codeInvalidCategory, domain.ErrInvalidCategory.Error())
				return
			}
			filter.Category = &category
		}
		if v := r.URL.Query().Get("type"); v != "" {
			eventType := domain.EventType(v)
			if !eventType.Valid() {
				writeError(w, http.StatusBadRequest, codeInvalidCategory, domain.ErrInvalidCategory.Error())
				return
			}
			filter.Type = &eventType
		}

		events, err := svc.ListEvents(r.Context(), actorFromContext(r.Context()), filter)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]eventResponse, 0, len(events))
		for _, event := range events {
			resp = append(resp, toEventResponse(event))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func HandleGetEvent(svc EventCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := svc.GetEvent(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(toEventResponse(event))
	}
}

type createEventRequest struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	Date               string `json:"date"`
	Category           string `json:"category"`
	Type               string `json:"type"`
	Location           string `json:"location"`
	Venue              string `json:"venue"`
	TotalSlots         int    `json:"total_slots"`
	Visible            *bool  `json:"visible"`
	RegistrationClosed bool   `json:"registration_closed"`
}

func HandleCreateEvent(svc EventAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAdmin(w, r)
		if !ok {
			return
		}

		var req createEventRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		date, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidDate, "invalid date format")
			return
		}

		event, err := svc.CreateEvent(r.Context(), actor, app.CreateEventInput{
			Title:              req.Title,
			Description:        req.Description,
			Date:               date,
			Category:           domain.EventCategory(req.Category),
			Type:               domain.EventType(req.Type),
			Location:           req.Location,
			Venue:              req.Venue,
			TotalSlots:         req.TotalSlots,
			Visible:            req.Visible,
			RegistrationClosed: req.RegistrationClosed,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(toEventResponse(event))
	}
}

type updateEventRequest struct {
	Title              *string `json:"title"`
	Description        *string `json:"description"`
	Date               *string `json:"date"`
	Category           *string `json:"category"`
	Type               *string `json:"type"`
	Location           *string `json:"location"`
	Venue              *string `json:"venue"`
	Visible            *bool   `json:"visible"`
	RegistrationClosed *bool   `json:"registration_closed"`
}

func HandleUpdateEvent(svc EventAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAdmin(w, r)
		if !ok {
			return
		}

		var req updateEventRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		in := app.UpdateEventInput{
			Title:              req.Title,
			Description:        req.Description,
			Location:           req.Location,
			Venue:              req.Venue,
			Visible:            req.Visible,
			RegistrationClosed: req.RegistrationClosed,
		}
		if req.Date != nil {
			date, err := time.Parse(time.RFC3339, *req.Date)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidDate, "invalid date format")
				return
			}
			in.Date = &date
		}
		if req.Category != nil {
			category := domain.EventCategory(*req.Category)
			in.Category = &category
		}
		if req.Type != nil {
			eventType := domain.EventType(*req.Type)
			in.Type = &eventType
		}

		event, err := svc.UpdateEvent(r.Context(), actor, chi.URLParam(r, "id"), in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(toEventResponse(event))
	}
}

type editCapacityRequest struct {
	TotalSlots int `json:"total_slots"`
}

// HandleEditCapacity changes an event's total slots; edits below the
// booked count are rejected with a conflict.
func HandleEditCapacity(svc EventAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAdmin(w, r)
		if !ok {
			return
		}

		var req editCapacityRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		if err := svc.EditCapacity(r.Context(), actor, chi.URLParam(r, "id"), req.TotalSlots); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func HandleDeleteEvent(svc EventAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAdmin(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteEvent(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
