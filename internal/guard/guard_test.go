package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amnotwallas/estudiantes-frontend/internal/models"
	appErrors "github.com/amnotwallas/estudiantes-frontend/pkg/errors"
)

type fakeSessions struct {
	session *models.Session
}

func (f *fakeSessions) Current() *models.Session { return f.session }

func adminSession() *models.Session {
	return &models.Session{
		Identity:   &models.Identity{ID: "u1", Username: "admin1", Role: models.RoleAdmin},
		Credential: "tok-123",
	}
}

func TestAuthorizeWithoutSession(t *testing.T) {
	g := New(&fakeSessions{})

	err := g.Authorize(Screen{Name: "alumnos"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthenticated))
	assert.Contains(t, err.Error(), "alumnos")
}

func TestAuthorizeWithSession(t *testing.T) {
	g := New(&fakeSessions{session: adminSession()})
	assert.NoError(t, g.Authorize(Screen{Name: "alumnos"}))
}

func TestAuthorizeRoleAllowed(t *testing.T) {
	g := New(&fakeSessions{session: adminSession()})
	assert.NoError(t, g.Authorize(Screen{Name: "usuarios", Roles: []models.Role{models.RoleAdmin}}))
}

func TestAuthorizeRoleDenied(t *testing.T) {
	sessions := &fakeSessions{session: &models.Session{
		Identity:   &models.Identity{ID: "u2", Username: "alumno1", Role: models.RoleUser},
		Credential: "tok-456",
	}}
	g := New(sessions)

	err := g.Authorize(Screen{Name: "usuarios", Roles: []models.Role{models.RoleAdmin}})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}

func TestAuthorizeReevaluatesOnEveryDispatch(t *testing.T) {
	sessions := &fakeSessions{session: adminSession()}
	g := New(sessions)
	require.NoError(t, g.Authorize(Screen{Name: "alumnos"}))

	// session expired between navigations
	sessions.session = nil
	err := g.Authorize(Screen{Name: "alumnos"})
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthenticated))
}

func TestAuthorizePartialSessionTreatedAsAnonymous(t *testing.T) {
	sessions := &fakeSessions{session: &models.Session{Credential: "tok-789"}}
	g := New(sessions)

	err := g.Authorize(Screen{Name: "carreras"})
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthenticated))
}
