package resource

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/amnotwallas/estudiantes-frontend/internal/models"
	appErrors "github.com/amnotwallas/estudiantes-frontend/pkg/errors"
)

// UsersClient manages application accounts.
type UsersClient struct {
	api       api
	validator *validator.Validate
}

// NewUsersClient constructs the client.
func NewUsersClient(api api, validate *validator.Validate) *UsersClient {
	if validate == nil {
		validate = validator.New()
	}
	return &UsersClient{api: api, validator: validate}
}

// List fetches every user.
func (c *UsersClient) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.api.GetJSON(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Create registers a new account. The password is required here, unlike on
// update where an empty one means "unchanged".
func (c *UsersClient) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	if err := c.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "completa todos los campos requeridos")
	}

	created := &models.User{}
	if err := c.api.PostJSON(ctx, "/users", req, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update edits an account. An empty Password is elided from the payload so
// the backend keeps the stored one.
func (c *UsersClient) Update(ctx context.Context, id string, req models.UpdateUserRequest) (*models.User, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "user id is required")
	}
	if err := c.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "completa todos los campos requeridos")
	}

	updated := &models.User{}
	if err := c.api.PutJSON(ctx, "/users/"+escape(id), req, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an account.
func (c *UsersClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "user id is required")
	}
	return c.api.Delete(ctx, "/users/"+escape(id))
}
