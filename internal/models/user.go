package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role drives what the UI offers a user; the backend enforces it.
type Role string

const (
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
	RoleDentist Role = "dentist"
	RoleBanned  Role = "banned"
)

// AssignableRoles are the roles an admin can pick in the user editor.
var AssignableRoles = []Role{RoleUser, RoleAdmin, RoleBanned}

// Assignable reports whether r may be set through the user editor.
func (r Role) Assignable() bool {
	for _, a := range AssignableRoles {
		if r == a {
			return true
		}
	}
	return false
}

type User struct {
	ID        primitive.ObjectID `json:"_id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Telephone string             `json:"telephone"`
	Role      Role               `json:"role"`
	DentistID string             `json:"dentist_id,omitempty"` // set for dentist-role accounts
}
