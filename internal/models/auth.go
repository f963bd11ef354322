package models

// Role represents the application roles returned by the backend.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Identity describes the authenticated user.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Session pairs an identity with its bearer credential. Both fields are set
// together or not at all; a partial session is never persisted.
type Session struct {
	Identity   *Identity `json:"identity"`
	Credential string    `json:"credential"`
}

// Valid reports whether the session holds a complete identity+credential pair.
func (s *Session) Valid() bool {
	return s != nil && s.Identity != nil && s.Credential != ""
}

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest holds the signup payload. The Role discriminant selects
// which role-specific field is required: carrera for alumnos, especialidad
// for maestros.
type RegisterRequest struct {
	Username          string `json:"username" validate:"required"`
	Password          string `json:"password" validate:"required"`
	ConfirmarPassword string `json:"-" validate:"required,eqfield=Password"`
	Role              string `json:"role" validate:"required,oneof=alumno maestro"`
	Nombre            string `json:"nombre" validate:"required"`
	Apellido          string `json:"apellido" validate:"required"`
	Email             string `json:"email" validate:"required,email"`
	Genero            string `json:"genero,omitempty"`
	Telefono          string `json:"telefono,omitempty"`
	Carrera           string `json:"carrera,omitempty" validate:"required_if=Role alumno"`
	Especialidad      string `json:"especialidad,omitempty" validate:"required_if=Role maestro"`
}

// AuthUser is the user record embedded in auth responses.
type AuthUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// AuthResponse is the backend reply to login and register.
type AuthResponse struct {
	User  AuthUser `json:"user"`
	Token string   `json:"token"`
}
