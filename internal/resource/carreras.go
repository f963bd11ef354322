package resource

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/amnotwallas/estudiantes-frontend/internal/models"
	appErrors "github.com/amnotwallas/estudiantes-frontend/pkg/errors"
)

// CarrerasClient manages academic programs.
type CarrerasClient struct {
	api       api
	validator *validator.Validate
}

// NewCarrerasClient constructs the client.
func NewCarrerasClient(api api, validate *validator.Validate) *CarrerasClient {
	if validate == nil {
		validate = validator.New()
	}
	return &CarrerasClient{api: api, validator: validate}
}

// List fetches every carrera.
func (c *CarrerasClient) List(ctx context.Context) ([]models.Carrera, error) {
	var carreras []models.Carrera
	if err := c.api.GetJSON(ctx, "/carreras", &carreras); err != nil {
		return nil, err
	}
	return carreras, nil
}

// Create registers a new carrera.
func (c *CarrerasClient) Create(ctx context.Context, draft models.CarreraDraft) (*models.Carrera, error) {
	if err := c.validator.Struct(draft); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "completa todos los campos requeridos")
	}

	created := &models.Carrera{}
	if err := c.api.PostJSON(ctx, "/carreras", draft, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update replaces the editable fields of an existing carrera.
func (c *CarrerasClient) Update(ctx context.Context, id string, draft models.CarreraDraft) (*models.Carrera, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "carrera id is required")
	}
	if err := c.validator.Struct(draft); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "completa todos los campos requeridos")
	}

	updated := &models.Carrera{}
	if err := c.api.PutJSON(ctx, "/carreras/"+escape(id), draft, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Patch applies a partial update with only the provided fields. Duration
// travels as a number when present.
func (c *CarrerasClient) Patch(ctx context.Context, id string, fields map[string]interface{}) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "carrera id is required")
	}
	payload := prunePatch(fields)
	if len(payload) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "no fields to update")
	}
	return c.api.PutJSON(ctx, "/carreras/"+escape(id), payload, nil)
}

// Delete removes a carrera.
func (c *CarrerasClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "carrera id is required")
	}
	return c.api.Delete(ctx, "/carreras/"+escape(id))
}
