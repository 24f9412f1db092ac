package domain

import "time"

type EventCategory string

const (
	CategoryHackathon   EventCategory = "hackathon"
	CategoryGame        EventCategory = "game"
	CategoryCelebration EventCategory = "celebration"
)

// Valid reports whether the category is one of the known values.
func (c EventCategory) Valid() bool {
	switch c {
	case CategoryHackathon, CategoryGame, CategoryCelebration:
		return true
	}
	return false
}

type EventType string

const (
	TypeOwnCollege   EventType = "our_college"
	TypeOtherCollege EventType = "other_college"
)

func (t EventType) Valid() bool {
	return t == TypeOwnCollege || t == TypeOtherCollege
}

// Event represents a schedulable activity with finite participant capacity.
// BookedSlots is mutated only by the approval workflow; the invariant
// 0 <= BookedSlots <= TotalSlots holds after every committed operation.
type Event struct {
	ID                 string
	Title              string
	Description        string
	Date               time.Time
	Category           EventCategory
	Type               EventType
	Location           string
	Venue              string
	TotalSlots         int
	BookedSlots        int
	Visible            bool
	RegistrationClosed bool
	CreatedAt          time.Time
}

// SlotsRemaining returns the number of unconsumed capacity units.
func (e Event) SlotsRemaining() int {
	return e.TotalSlots - e.BookedSlots
}

// IsFull reports whether the event has no remaining capacity.
func (e Event) IsFull() bool {
	return e.BookedSlots >= e.TotalSlots
}
