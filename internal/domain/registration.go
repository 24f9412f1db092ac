package domain

import "time"

type RegistrationStatus string

const (
	StatusPending  RegistrationStatus = "pending"
	StatusApproved RegistrationStatus = "approved"
	StatusRejected RegistrationStatus = "rejected"
)

func (s RegistrationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted.
func (s RegistrationStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Registration is a participant's request to occupy one capacity unit of
// an event. StudentID is a snapshot of the participant's issued enrollment
// id at submission time; later reassignment does not alter it. Records are
// never deleted.
type Registration struct {
	ID               string
	EventID          string
	StudentID        string
	Name             string
	Email            string
	College          string
	Department       string
	Year             string
	Status           RegistrationStatus
	ApprovalDate     *time.Time
	RegistrationDate time.Time
}
