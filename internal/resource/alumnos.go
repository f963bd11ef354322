package resource

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/amnotwallas/estudiantes-frontend/internal/models"
	appErrors "github.com/amnotwallas/estudiantes-frontend/pkg/errors"
)

// AlumnosClient manages student records.
type AlumnosClient struct {
	api       api
	validator *validator.Validate
}

// NewAlumnosClient constructs the client.
func NewAlumnosClient(api api, validate *validator.Validate) *AlumnosClient {
	if validate == nil {
		validate = validator.New()
	}
	return &AlumnosClient{api: api, validator: validate}
}

// List fetches every alumno.
func (c *AlumnosClient) List(ctx context.Context) ([]models.Alumno, error) {
	var alumnos []models.Alumno
	if err := c.api.GetJSON(ctx, "/alumnos", &alumnos); err != nil {
		return nil, err
	}
	return alumnos, nil
}

// ByCarrera fetches the alumnos enrolled in the named program.
func (c *AlumnosClient) ByCarrera(ctx context.Context, nombre string) ([]models.Alumno, error) {
	var alumnos []models.Alumno
	if err := c.api.GetJSON(ctx, "/alumnos/carrera/"+escape(nombre), &alumnos); err != nil {
		return nil, err
	}
	return alumnos, nil
}

// Create registers a new alumno. Required fields are validated before any
// request is issued; estado defaults to "activo".
func (c *AlumnosClient) Create(ctx context.Context, draft models.AlumnoDraft) (*models.Alumno, error) {
	draft.Normalize()
	if draft.Estado == "" {
		draft.Estado = "activo"
	}
	if err := c.validator.Struct(draft); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "completa todos los campos requeridos")
	}

	created := &models.Alumno{}
	if err := c.api.PostJSON(ctx, "/alumnos", draft, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update replaces the editable fields of an existing alumno.
func (c *AlumnosClient) Update(ctx context.Context, id string, draft models.AlumnoDraft) (*models.Alumno, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "alumno id is required")
	}
	draft.Normalize()
	if err := c.validator.Struct(draft); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "completa todos los campos requeridos")
	}

	updated := &models.Alumno{}
	if err := c.api.PutJSON(ctx, "/alumnos/"+escape(id), draft, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Patch applies a partial update, sending only non-empty fields. Used by
// bulk edit, where untouched columns must keep their per-row values.
func (c *AlumnosClient) Patch(ctx context.Context, id string, fields map[string]interface{}) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "alumno id is required")
	}
	payload := prunePatch(fields)
	if len(payload) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "no fields to update")
	}
	return c.api.PutJSON(ctx, "/alumnos/"+escape(id), payload, nil)
}

// Delete removes an alumno.
func (c *AlumnosClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "alumno id is required")
	}
	return c.api.Delete(ctx, "/alumnos/"+escape(id))
}
