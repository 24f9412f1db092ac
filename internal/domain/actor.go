package domain

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Actor is the authenticated caller handed over by the upstream identity
// layer. StudentID carries the issued enrollment id for student actors.
type Actor struct {
	ID        string
	Email     string
	StudentID string
	Role      Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
