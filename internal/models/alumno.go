package models

import "strings"

// Alumno represents a student registered in the institution. Field names
// follow the backend wire contract.
type Alumno struct {
	ID       string `json:"_id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Genero   string `json:"genero"`
	Telefono string `json:"telefono"`
	Email    string `json:"email"`
	Carrera  string `json:"carrera"`
	Estado   string `json:"estado"`
}

// EntityID implements Entity.
func (a Alumno) EntityID() string { return a.ID }

// SearchFields implements Entity. Alumnos are filterable by name, surname
// and email.
func (a Alumno) SearchFields() []string {
	return []string{a.Nombre, a.Apellido, a.Email}
}

// AlumnoDraft holds the editable fields for creating or updating an alumno.
type AlumnoDraft struct {
	Nombre   string `json:"nombre" validate:"required"`
	Apellido string `json:"apellido" validate:"required"`
	Genero   string `json:"genero,omitempty"`
	Telefono string `json:"telefono,omitempty"`
	Email    string `json:"email" validate:"required,email"`
	Carrera  string `json:"carrera" validate:"required"`
	Estado   string `json:"estado,omitempty"`
}

// Normalize trims whitespace from the free-text fields, matching what the
// forms submit.
func (d *AlumnoDraft) Normalize() {
	d.Nombre = strings.TrimSpace(d.Nombre)
	d.Apellido = strings.TrimSpace(d.Apellido)
	d.Telefono = strings.TrimSpace(d.Telefono)
	d.Email = strings.TrimSpace(d.Email)
}
