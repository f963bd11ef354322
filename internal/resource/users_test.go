package resource

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amnotwallas/estudiantes-frontend/internal/models"
	appErrors "github.com/amnotwallas/estudiantes-frontend/pkg/errors"
)

func TestUsersCreateRequiresPassword(t *testing.T) {
	api := newMockAPI()
	client := NewUsersClient(api, nil)

	_, err := client.Create(context.Background(), models.CreateUserRequest{
		Username: "admin2",
		Role:     models.RoleAdmin,
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Empty(t, api.calls)
}

func TestUsersCreateSendsPayload(t *testing.T) {
	api := newMockAPI()
	api.respond("/users", `{"_id":"u2","username":"admin2","role":"admin"}`)
	client := NewUsersClient(api, nil)

	created, err := client.Create(context.Background(), models.CreateUserRequest{
		Username: "admin2",
		Password: "secret123",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "u2", created.ID)
	assert.Equal(t, "POST", api.lastCall(t).method)
}

func TestUsersUpdateElidesEmptyPassword(t *testing.T) {
	api := newMockAPI()
	client := NewUsersClient(api, nil)

	_, err := client.Update(context.Background(), "u1", models.UpdateUserRequest{
		Username: "admin1",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)

	// the wire payload must not carry a password key at all
	raw, err := json.Marshal(api.lastCall(t).body)
	require.NoError(t, err)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.NotContains(t, payload, "password")
	assert.Equal(t, "admin1", payload["username"])
}

func TestUsersUpdateKeepsProvidedPassword(t *testing.T) {
	api := newMockAPI()
	client := NewUsersClient(api, nil)

	_, err := client.Update(context.Background(), "u1", models.UpdateUserRequest{
		Username: "admin1",
		Password: "nuevo-secreto",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)

	raw, err := json.Marshal(api.lastCall(t).body)
	require.NoError(t, err)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "nuevo-secreto", payload["password"])
}

func TestUsersUpdateRejectsUnknownRole(t *testing.T) {
	api := newMockAPI()
	client := NewUsersClient(api, nil)

	_, err := client.Update(context.Background(), "u1", models.UpdateUserRequest{
		Username: "admin1",
		Role:     "superadmin",
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Empty(t, api.calls)
}

func TestUsersDeleteEscapesID(t *testing.T) {
	api := newMockAPI()
	client := NewUsersClient(api, nil)

	require.NoError(t, client.Delete(context.Background(), "u 1"))
	assert.Equal(t, "/users/u%201", api.lastCall(t).path)
}
