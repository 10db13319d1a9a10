package domain

import "time"

// Role is the authorization role carried in the bearer token.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleOrganizer Role = "ORGANIZER"
	RoleAttendee  Role = "ATTENDEE"
)

// User is an account known to the system. The booking core only reads
// users; account management lives with the identity collaborator.
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName returns the display name used on invoices.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Actor is the authenticated caller of a service operation, as extracted
// from the verified bearer token.
type Actor struct {
	UserID string
	Email  string
	Role   Role
}

// CanBook reports whether the actor may create bookings.
func (a Actor) CanBook() bool {
	return a.Role == RoleAttendee || a.Role == RoleAdmin
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
