package domain

import "errors"

var (
	// Not found.
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")

	// Conflicts.
	ErrEventFull             = errors.New("event is fully booked")
	ErrRegistrationClosed    = errors.New("registration is closed for this event")
	ErrDuplicateRegistration = errors.New("already registered for this event")
	ErrAlreadyFinalized      = errors.New("registration already approved or rejected")
	ErrDuplicateTitle        = errors.New("an event with this title already exists")
	ErrCapacityBelowBooked   = errors.New("total slots cannot drop below booked slots")
	ErrEventHasRegistrations = errors.New("event has registrations and cannot be deleted")

	// Validation.
	ErrTitleRequired   = errors.New("event title is required")
	ErrInvalidCategory = errors.New("invalid event category")
	ErrInvalidCapacity = errors.New("total slots must be at least 1")
	ErrMissingField    = errors.New("all registration fields are required")
	ErrInvalidID       = errors.New("invalid id")

	// Authorization.
	ErrForbidden = errors.New("forbidden")

	// Letters are only produced for approved registrations.
	ErrLetterNotAvailable = errors.New("letter is only available for approved registrations")

	// ErrLedgerDrift signals that booked_slots no longer matches the count
	// of approved registrations. Fatal for the triggering operation.
	ErrLedgerDrift = errors.New("booked slots diverged from approved registrations")
)
