package auth

import "github.com/angelmondragon/warungsunda-backend/pkg/enums"

// Actor identifies who is performing an action.
type Actor struct {
	UserID string
	Role   enums.UserRole
}

// IsStaff reports whether the actor may operate the kitchen and menu.
func (a Actor) IsStaff() bool {
	return a.Role.IsStaff()
}

// IsZero reports whether the actor is unauthenticated.
func (a Actor) IsZero() bool {
	return a.UserID == ""
}

// CanAccessCustomer reports whether the actor may act on customerID's records.
func (a Actor) CanAccessCustomer(customerID string) bool {
	if a.IsZero() {
		return false
	}
	return a.IsStaff() || a.UserID == customerID
}
