package resource

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/amnotwallas/estudiantes-frontend/internal/models"
	appErrors "github.com/amnotwallas/estudiantes-frontend/pkg/errors"
)

// MaestrosClient manages teacher records.
type MaestrosClient struct {
	api       api
	validator *validator.Validate
}

// NewMaestrosClient constructs the client.
func NewMaestrosClient(api api, validate *validator.Validate) *MaestrosClient {
	if validate == nil {
		validate = validator.New()
	}
	return &MaestrosClient{api: api, validator: validate}
}

// List fetches every maestro.
func (c *MaestrosClient) List(ctx context.Context) ([]models.Maestro, error) {
	var maestros []models.Maestro
	if err := c.api.GetJSON(ctx, "/maestros", &maestros); err != nil {
		return nil, err
	}
	return maestros, nil
}

// Create registers a new maestro.
func (c *MaestrosClient) Create(ctx context.Context, draft models.MaestroDraft) (*models.Maestro, error) {
	if err := c.validator.Struct(draft); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "completa todos los campos requeridos")
	}

	created := &models.Maestro{}
	if err := c.api.PostJSON(ctx, "/maestros", draft, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update replaces the editable fields of an existing maestro.
func (c *MaestrosClient) Update(ctx context.Context, id string, draft models.MaestroDraft) (*models.Maestro, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "maestro id is required")
	}
	if err := c.validator.Struct(draft); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "completa todos los campos requeridos")
	}

	updated := &models.Maestro{}
	if err := c.api.PutJSON(ctx, "/maestros/"+escape(id), draft, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Patch applies a partial update with only the non-empty fields.
func (c *MaestrosClient) Patch(ctx context.Context, id string, fields map[string]interface{}) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "maestro id is required")
	}
	payload := prunePatch(fields)
	if len(payload) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "no fields to update")
	}
	return c.api.PutJSON(ctx, "/maestros/"+escape(id), payload, nil)
}

// Delete removes a maestro.
func (c *MaestrosClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "maestro id is required")
	}
	return c.api.Delete(ctx, "/maestros/"+escape(id))
}
