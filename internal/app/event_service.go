package app

import (
	"context"
	"strings"
	"time"

	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/clock"
	"github.com/Sai-Reddy-026/Campus-Event-Organising-System/internal/domain"
)

type EventRepository interface {
	CreateEvent(ctx context.Context, event domain.Event) error
	ListEvents(ctx context.Context, filter EventFilter) ([]domain.Event, error)
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	UpdateEvent(ctx context.Context, event domain.Event) error
	DeleteEvent(ctx context.Context, id string) error
	SetTotalSlots(ctx context.Context, id string, newTotal int) error
}

// EventFilter narrows event listings. VisibleOnly is forced for
// non-admin callers.
type EventFilter struct {
	Category    *domain.EventCategory
	Type        *domain.EventType
	VisibleOnly bool
}

type EventService struct {
	repo  EventRepository
	clock clock.Clock
}

func NewEventService(repo EventRepository, clk clock.Clock) *EventService {
	return &EventService{
		repo:  repo,
		clock: clk,
	}
}

type CreateEventInput struct {
	Title              string
	Description        string
	Date               time.Time
	Category           domain.EventCategory
	Type               domain.EventType
	Location           string
	Venue              string
	TotalSlots         int
	Visible            *bool
	RegistrationClosed bool
}

func (s *EventService) CreateEvent(ctx context.Context, actor domain.Actor, in CreateEventInput) (domain.Event, error) {
	if !actor.IsAdmin() {
		return domain.Event{}, domain.ErrForbidden
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return domain.Event{}, domain.ErrTitleRequired
	}
	if !in.Category.Valid() {
		return domain.Event{}, domain.ErrInvalidCategory
	}
	if in.TotalSlots < 1 {
		return domain.Event{}, domain.ErrInvalidCapacity
	}
	eventType := in.Type
	if eventType == "" {
		eventType = domain.TypeOwnCollege
	}
	if !eventType.Valid() {
		return domain.Event{}, domain.ErrInvalidCategory
	}
	visible := true
	if in.Visible != nil {
		visible = *in.Visible
	}

	event := domain.Event{
		ID:                 newUUID(),
		Title:              in.Title,
		Description:        in.Description,
		Date:               in.Date,
		Category:           in.Category,
		Type:               eventType,
		Location:           in.Location,
		Venue:              in.Venue,
		TotalSlots:         in.TotalSlots,
		BookedSlots:        0,
		Visible:            visible,
		RegistrationClosed: in.RegistrationClosed,
		CreatedAt:          s.clock.Now(),
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

// ListEvents returns events matching the filter. Hidden events are only
// listed for admin actors.
func (s *EventService) ListEvents(ctx context.Context, actor domain.Actor, filter EventFilter) ([]domain.Event, error) {
	if !actor.IsAdmin() {
		filter.VisibleOnly = true
	}
	return s.repo.ListEvents(ctx, filter)
}

func (s *EventService) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	if id == "" {
		return domain.Event{}, domain.ErrInvalidID
	}
	return s.repo.GetEvent(ctx, id)
}

type UpdateEventInput struct {
	Title              *string
	Description        *string
	Date               *time.Time
	Category           *domain.EventCategory
	Type               *domain.EventType
	Location           *string
	Venue              *string
	Visible            *bool
	RegistrationClosed *bool
}

// UpdateEvent applies a partial edit. Capacity changes go through
// EditCapacity so the booked-slots guard cannot be bypassed.
func (s *EventService) UpdateEvent(ctx context.Context, actor domain.Actor, id string, in UpdateEventInput) (domain.Event, error) {
	if !actor.IsAdmin() {
		return domain.Event{}, domain.ErrForbidden
	}
	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return domain.Event{}, domain.ErrTitleRequired
		}
		event.Title = title
	}
	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.Date != nil {
		event.Date = *in.Date
	}
	if in.Category != nil {
		if !in.Category.Valid() {
			return domain.Event{}, domain.ErrInvalidCategory
		}
		event.Category = *in.Category
	}
	if in.Type != nil {
		if !in.Type.Valid() {
			return domain.Event{}, domain.ErrInvalidCategory
		}
		event.Type = *in.Type
	}
	if in.Location != nil {
		event.Location = *in.Location
	}
	if in.Venue != nil {
		event.Venue = *in.Venue
	}
	if in.Visible != nil {
		event.Visible = *in.Visible
	}
	if in.RegistrationClosed != nil {
		event.RegistrationClosed = *in.RegistrationClosed
	}

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

// EditCapacity changes an event's total slots. Edits that would drop the
// total below the already-booked count are rejected rather than resolved.
func (s *EventService) EditCapacity(ctx context.Context, actor domain.Actor, id string, newTotal int) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if id == "" {
		return domain.ErrInvalidID
	}
	if newTotal < 1 {
		return domain.ErrInvalidCapacity
	}
	return s.repo.SetTotalSlots(ctx, id, newTotal)
}

func (s *EventService) DeleteEvent(ctx context.Context, actor domain.Actor, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if id == "" {
		return domain.ErrInvalidID
	}
	return s.repo.DeleteEvent(ctx, id)
}
