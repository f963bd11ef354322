package resource

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/amnotwallas/estudiantes-frontend/internal/models"
	appErrors "github.com/amnotwallas/estudiantes-frontend/pkg/errors"
)

// ReinscripcionesClient manages re-enrollment records.
type ReinscripcionesClient struct {
	api       api
	validator *validator.Validate
}

// NewReinscripcionesClient constructs the client.
func NewReinscripcionesClient(api api, validate *validator.Validate) *ReinscripcionesClient {
	if validate == nil {
		validate = validator.New()
	}
	return &ReinscripcionesClient{api: api, validator: validate}
}

// List fetches every reinscripcion.
func (c *ReinscripcionesClient) List(ctx context.Context) ([]models.Reinscripcion, error) {
	var records []models.Reinscripcion
	if err := c.api.GetJSON(ctx, "/reinscripciones", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ByAlumno fetches the re-enrollment history of one student, oldest first.
// The last record reflects the current enrollment status.
func (c *ReinscripcionesClient) ByAlumno(ctx context.Context, alumnoID string) ([]models.Reinscripcion, error) {
	if alumnoID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "alumno id is required")
	}
	var records []models.Reinscripcion
	if err := c.api.GetJSON(ctx, "/reinscripciones/alumno/"+escape(alumnoID), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Create appends a new record to a student's history.
func (c *ReinscripcionesClient) Create(ctx context.Context, draft models.ReinscripcionDraft) (*models.Reinscripcion, error) {
	if draft.Estado == "" {
		draft.Estado = "activo"
	}
	if err := c.validator.Struct(draft); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "completa todos los campos requeridos")
	}

	created := &models.Reinscripcion{}
	if err := c.api.PostJSON(ctx, "/reinscripciones", draft, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update edits an existing record.
func (c *ReinscripcionesClient) Update(ctx context.Context, id string, draft models.ReinscripcionDraft) (*models.Reinscripcion, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "reinscripcion id is required")
	}
	if err := c.validator.Struct(draft); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "completa todos los campos requeridos")
	}

	updated := &models.Reinscripcion{}
	if err := c.api.PutJSON(ctx, "/reinscripciones/"+escape(id), draft, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a record.
func (c *ReinscripcionesClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "reinscripcion id is required")
	}
	return c.api.Delete(ctx, "/reinscripciones/"+escape(id))
}
