package models

// Role is the authorization role of an Identity.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Identity is a user profile as held by the client. It never carries a
// password; passwords only travel inside UserInput.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Login string `json:"login"`
	Role  Role   `json:"role"`
}

// IsAdmin reports whether the identity bypasses video allow-lists.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// UserInput is the writable shape of a user for register and update.
// Password may be empty on update, meaning "unchanged".
type UserInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Login    string `json:"login" validate:"required"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role" validate:"required,oneof=admin user"`
}

// InputFromIdentity returns the writable fields of i, with no password.
func InputFromIdentity(i Identity) UserInput {
	return UserInput{Name: i.Name, Email: i.Email, Login: i.Login, Role: i.Role}
}
