package models

import "strconv"

// Carrera represents an academic program. Alumnos carries the ids of
// students enrolled in the program when the backend includes them.
type Carrera struct {
	ID          string   `json:"_id"`
	Nombre      string   `json:"nombre"`
	Descripcion string   `json:"descripcion"`
	Duracion    int      `json:"duracion"`
	Modalidad   string   `json:"modalidad"`
	Alumnos     []string `json:"alumnos,omitempty"`
}

// EntityID implements Entity.
func (c Carrera) EntityID() string { return c.ID }

// TieneAlumnos reports whether any student is enrolled in the program.
func (c Carrera) TieneAlumnos() bool { return len(c.Alumnos) > 0 }

// SearchFields implements Entity. Programs match on name, description,
// modality, duration rendered as text, and the con/sin alumnos label.
func (c Carrera) SearchFields() []string {
	label := "sin alumnos"
	if c.TieneAlumnos() {
		label = "con alumnos"
	}
	return []string{c.Nombre, c.Descripcion, c.Modalidad, strconv.Itoa(c.Duracion), label}
}

// CarreraDraft holds the editable fields for creating or updating a carrera.
type CarreraDraft struct {
	Nombre      string `json:"nombre" validate:"required"`
	Descripcion string `json:"descripcion" validate:"required"`
	Duracion    int    `json:"duracion" validate:"required,min=1"`
	Modalidad   string `json:"modalidad" validate:"required"`
}
