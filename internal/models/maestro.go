package models

// Maestro represents a teacher.
type Maestro struct {
	ID           string `json:"_id"`
	Nombre       string `json:"nombre"`
	Apellido     string `json:"apellido"`
	Email        string `json:"email"`
	Telefono     string `json:"telefono"`
	Especialidad string `json:"especialidad"`
}

// EntityID implements Entity.
func (m Maestro) EntityID() string { return m.ID }

// SearchFields implements Entity. Maestros additionally match on specialty.
func (m Maestro) SearchFields() []string {
	return []string{m.Nombre, m.Apellido, m.Email, m.Especialidad}
}

// MaestroDraft holds the editable fields for creating or updating a maestro.
type MaestroDraft struct {
	Nombre       string `json:"nombre" validate:"required"`
	Apellido     string `json:"apellido" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Telefono     string `json:"telefono,omitempty"`
	Especialidad string `json:"especialidad" validate:"required"`
}
