package models

// Reinscripcion represents one re-enrollment record in a student's history.
// Records are append-only; the most recent one is treated as the current
// enrollment status.
type Reinscripcion struct {
	ID                 string `json:"_id"`
	AlumnoID           string `json:"alumnoId"`
	Semestre           string `json:"semestre"`
	FechaReinscripcion string `json:"fechaReinscripcion"`
	Estado             string `json:"estado"`
	Observaciones      string `json:"observaciones"`
}

// EntityID implements Entity.
func (r Reinscripcion) EntityID() string { return r.ID }

// SearchFields implements Entity.
func (r Reinscripcion) SearchFields() []string {
	return []string{r.AlumnoID, r.Semestre, r.Estado, r.Observaciones}
}

// ReinscripcionDraft holds the editable fields of a re-enrollment record.
type ReinscripcionDraft struct {
	AlumnoID           string `json:"alumnoId" validate:"required"`
	Semestre           string `json:"semestre" validate:"required"`
	FechaReinscripcion string `json:"fechaReinscripcion" validate:"required"`
	Estado             string `json:"estado,omitempty"`
	Observaciones      string `json:"observaciones,omitempty"`
}
