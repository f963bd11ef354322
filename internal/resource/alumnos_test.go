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

// recordedCall captures one request handed to the gateway mock.
type recordedCall struct {
	method string
	path   string
	body   interface{}
}

// mockAPI records calls and replays canned JSON responses keyed by path.
type mockAPI struct {
	calls     []recordedCall
	responses map[string]string
	err       error
}

func newMockAPI() *mockAPI {
	return &mockAPI{responses: make(map[string]string)}
}

func (m *mockAPI) respond(path, body string) { m.responses[path] = body }

func (m *mockAPI) record(method, path string, body, out interface{}) error {
	m.calls = append(m.calls, recordedCall{method: method, path: path, body: body})
	if m.err != nil {
		return m.err
	}
	if out == nil {
		return nil
	}
	raw, ok := m.responses[path]
	if !ok {
		return nil
	}
	return json.Unmarshal([]byte(raw), out)
}

func (m *mockAPI) GetJSON(ctx context.Context, path string, out interface{}) error {
	return m.record("GET", path, nil, out)
}

func (m *mockAPI) PostJSON(ctx context.Context, path string, body, out interface{}) error {
	return m.record("POST", path, body, out)
}

func (m *mockAPI) PutJSON(ctx context.Context, path string, body, out interface{}) error {
	return m.record("PUT", path, body, out)
}

func (m *mockAPI) Delete(ctx context.Context, path string) error {
	return m.record("DELETE", path, nil, nil)
}

func (m *mockAPI) lastCall(t *testing.T) recordedCall {
	t.Helper()
	require.NotEmpty(t, m.calls)
	return m.calls[len(m.calls)-1]
}

func validAlumnoDraft() models.AlumnoDraft {
	return models.AlumnoDraft{
		Nombre:   "Ana",
		Apellido: "García",
		Email:    "ana@example.com",
		Carrera:  "Sistemas",
	}
}

func TestAlumnosCreateValidatesBeforeNetwork(t *testing.T) {
	api := newMockAPI()
	client := NewAlumnosClient(api, nil)

	draft := validAlumnoDraft()
	draft.Nombre = ""
	_, err := client.Create(context.Background(), draft)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Empty(t, api.calls)
}

func TestAlumnosCreateRejectsBadEmail(t *testing.T) {
	api := newMockAPI()
	client := NewAlumnosClient(api, nil)

	draft := validAlumnoDraft()
	draft.Email = "no-es-un-correo"
	_, err := client.Create(context.Background(), draft)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Empty(t, api.calls)
}

func TestAlumnosCreateTrimsAndDefaultsEstado(t *testing.T) {
	api := newMockAPI()
	api.respond("/alumnos", `{"_id":"a1","nombre":"Ana"}`)
	client := NewAlumnosClient(api, nil)

	draft := validAlumnoDraft()
	draft.Nombre = "  Ana  "
	created, err := client.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "a1", created.ID)

	sent := api.lastCall(t).body.(models.AlumnoDraft)
	assert.Equal(t, "Ana", sent.Nombre)
	assert.Equal(t, "activo", sent.Estado)
}

func TestAlumnosByCarreraEscapesPath(t *testing.T) {
	api := newMockAPI()
	api.respond("/alumnos/carrera/Ingenier%C3%ADa%20Civil", `[{"_id":"a1"}]`)
	client := NewAlumnosClient(api, nil)

	alumnos, err := client.ByCarrera(context.Background(), "Ingeniería Civil")
	require.NoError(t, err)
	require.Len(t, alumnos, 1)
	assert.Equal(t, "/alumnos/carrera/Ingenier%C3%ADa%20Civil", api.lastCall(t).path)
}

func TestAlumnosPatchDropsEmptyFields(t *testing.T) {
	api := newMockAPI()
	client := NewAlumnosClient(api, nil)

	err := client.Patch(context.Background(), "a1", map[string]interface{}{
		"carrera": "Mecatrónica",
		"estado":  "",
	})
	require.NoError(t, err)

	call := api.lastCall(t)
	assert.Equal(t, "PUT", call.method)
	assert.Equal(t, "/alumnos/a1", call.path)
	assert.Equal(t, map[string]interface{}{"carrera": "Mecatrónica"}, call.body)
}

func TestAlumnosPatchAllFieldsEmpty(t *testing.T) {
	api := newMockAPI()
	client := NewAlumnosClient(api, nil)

	err := client.Patch(context.Background(), "a1", map[string]interface{}{"estado": ""})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Empty(t, api.calls)
}

func TestAlumnosDeleteRequiresID(t *testing.T) {
	api := newMockAPI()
	client := NewAlumnosClient(api, nil)

	err := client.Delete(context.Background(), "")
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Empty(t, api.calls)

	require.NoError(t, client.Delete(context.Background(), "a1"))
	assert.Equal(t, "/alumnos/a1", api.lastCall(t).path)
}

func TestAlumnosListPropagatesGatewayError(t *testing.T) {
	api := newMockAPI()
	api.err = appErrors.Request(500, "error interno")
	client := NewAlumnosClient(api, nil)

	_, err := client.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error interno")
}
