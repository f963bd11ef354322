package models

// User represents an application account managed from the dashboard.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// EntityID implements Entity.
func (u User) EntityID() string { return u.ID }

// SearchFields implements Entity. Users are filterable by username, role
// and identifier.
func (u User) SearchFields() []string {
	return []string{u.Username, string(u.Role), u.ID}
}

// CreateUserRequest holds the payload for creating accounts. The password is
// required on creation.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"required,oneof=admin user"`
}

// UpdateUserRequest holds the payload for editing accounts. An empty
// password means "do not change" and is elided from the wire payload.
type UpdateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role" validate:"required,oneof=admin user"`
}
