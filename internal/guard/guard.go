// Package guard gates access to management screens on session state.
package guard

import (
	"github.com/amnotwallas/estudiantes-frontend/internal/models"
	appErrors "github.com/amnotwallas/estudiantes-frontend/pkg/errors"
)

// SessionSource is the read-only slice of the session store the guard uses.
type SessionSource interface {
	Current() *models.Session
}

// Screen names a protected destination and, optionally, the roles allowed
// to enter it. An empty role list means any authenticated identity.
type Screen struct {
	Name  string
	Roles []models.Role
}

// Guard authorizes navigation. It is a pure read of the session store,
// re-evaluated on every dispatch; no network calls.
type Guard struct {
	sessions SessionSource
}

// New constructs a Guard.
func New(sessions SessionSource) *Guard {
	return &Guard{sessions: sessions}
}

// Authorize allows the screen when an identity is present and, if the
// screen declares roles, the identity holds one of them.
func (g *Guard) Authorize(screen Screen) error {
	sess := g.sessions.Current()
	if !sess.Valid() {
		return appErrors.Clone(appErrors.ErrUnauthenticated, "inicia sesión para acceder a "+screen.Name)
	}
	if len(screen.Roles) == 0 {
		return nil
	}
	for _, role := range screen.Roles {
		if sess.Identity.Role == role {
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrForbidden, "tu rol no tiene acceso a "+screen.Name)
}
