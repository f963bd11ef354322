// Package cli binds the management screens to the terminal: every verb maps
// to one list-controller flow, gated by the route guard.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/amnotwallas/estudiantes-frontend/internal/controller"
	"github.com/amnotwallas/estudiantes-frontend/internal/gateway"
	"github.com/amnotwallas/estudiantes-frontend/internal/guard"
	"github.com/amnotwallas/estudiantes-frontend/internal/models"
	"github.com/amnotwallas/estudiantes-frontend/internal/resource"
	"github.com/amnotwallas/estudiantes-frontend/internal/session"
	"github.com/amnotwallas/estudiantes-frontend/pkg/config"
	"github.com/amnotwallas/estudiantes-frontend/pkg/export"
	"github.com/amnotwallas/estudiantes-frontend/pkg/storage"
)

// userDraft is the single editable shape shared by the create and edit user
// forms; an empty password on edit means "do not change".
type userDraft struct {
	Username string
	Password string
	Role     string
}

// App is the composition root: every controller receives its dependencies
// here, explicitly. Nothing reaches for ambient globals.
type App struct {
	cfg      *config.Config
	logger   *zap.Logger
	sessions *session.Store
	guard    *guard.Guard
	out      io.Writer

	usersAPI    *resource.UsersClient
	alumnosAPI  *resource.AlumnosClient
	maestrosAPI *resource.MaestrosClient
	carrerasAPI *resource.CarrerasClient
	reinsAPI    *resource.ReinscripcionesClient

	users    *controller.List[models.User, userDraft]
	alumnos  *controller.List[models.Alumno, models.AlumnoDraft]
	maestros *controller.List[models.Maestro, models.MaestroDraft]
	carreras *controller.List[models.Carrera, models.CarreraDraft]
	reins    *controller.List[models.Reinscripcion, models.ReinscripcionDraft]
	intake   *controller.Intake

	exports *storage.LocalStorage
}

// New wires the application. The gateway already carries the configured
// base URL; no screen holds its own.
func New(cfg *config.Config, logger *zap.Logger, sessions *session.Store, gw *gateway.Client, out io.Writer) (*App, error) {
	validate := validator.New()

	exports, err := storage.NewLocalStorage(cfg.Export.Dir)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		logger:   logger,
		sessions: sessions,
		guard:    guard.New(sessions),
		out:      out,
		exports:  exports,

		usersAPI:    resource.NewUsersClient(gw, validate),
		alumnosAPI:  resource.NewAlumnosClient(gw, validate),
		maestrosAPI: resource.NewMaestrosClient(gw, validate),
		carrerasAPI: resource.NewCarrerasClient(gw, validate),
		reinsAPI:    resource.NewReinscripcionesClient(gw, validate),
	}

	a.users = controller.NewList[models.User, userDraft]("users", controller.Ops[models.User, userDraft]{
		Fetch: a.usersAPI.List,
		Create: func(ctx context.Context, d userDraft) (*models.User, error) {
			return a.usersAPI.Create(ctx, models.CreateUserRequest{Username: d.Username, Password: d.Password, Role: models.Role(d.Role)})
		},
		Update: func(ctx context.Context, id string, d userDraft) (*models.User, error) {
			return a.usersAPI.Update(ctx, id, models.UpdateUserRequest{Username: d.Username, Password: d.Password, Role: models.Role(d.Role)})
		},
		Remove: a.usersAPI.Delete,
	}, logger)

	a.alumnos = controller.NewList[models.Alumno, models.AlumnoDraft]("alumnos", controller.Ops[models.Alumno, models.AlumnoDraft]{
		Fetch:  a.alumnosAPI.List,
		Create: a.alumnosAPI.Create,
		Update: a.alumnosAPI.Update,
		Remove: a.alumnosAPI.Delete,
		Patch:  a.alumnosAPI.Patch,
	}, logger)

	a.maestros = controller.NewList[models.Maestro, models.MaestroDraft]("maestros", controller.Ops[models.Maestro, models.MaestroDraft]{
		Fetch:  a.maestrosAPI.List,
		Create: a.maestrosAPI.Create,
		Update: a.maestrosAPI.Update,
		Remove: a.maestrosAPI.Delete,
		Patch:  a.maestrosAPI.Patch,
	}, logger)

	a.carreras = controller.NewList[models.Carrera, models.CarreraDraft]("carreras", controller.Ops[models.Carrera, models.CarreraDraft]{
		Fetch:  a.carrerasAPI.List,
		Create: a.carrerasAPI.Create,
		Update: a.carrerasAPI.Update,
		Remove: a.carrerasAPI.Delete,
		Patch:  a.carrerasAPI.Patch,
	}, logger)

	a.reins = controller.NewList[models.Reinscripcion, models.ReinscripcionDraft]("reinscripciones", controller.Ops[models.Reinscripcion, models.ReinscripcionDraft]{
		Fetch:  a.reinsAPI.List,
		Create: a.reinsAPI.Create,
		Update: a.reinsAPI.Update,
		Remove: a.reinsAPI.Delete,
	}, logger)

	a.intake = controller.NewIntake(a.alumnosAPI, a.reinsAPI, validate, logger)

	return a, nil
}

// Run dispatches one command invocation.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return nil
	}

	verb, rest := args[0], args[1:]
	switch verb {
	case "login":
		return a.runLogin(ctx, rest)
	case "register":
		return a.runRegister(ctx, rest)
	case "logout":
		a.sessions.Logout()
		fmt.Fprintln(a.out, "sesión cerrada")
		return nil
	case "whoami":
		return a.runWhoami()
	case "users":
		return a.runUsers(ctx, rest)
	case "alumnos":
		return a.runAlumnos(ctx, rest)
	case "maestros":
		return a.runMaestros(ctx, rest)
	case "carreras":
		return a.runCarreras(ctx, rest)
	case "reinscripciones":
		return a.runReinscripciones(ctx, rest)
	default:
		a.usage()
		return fmt.Errorf("unknown command %q", verb)
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, `usage: estudiantes <command> [flags]

  login -u <usuario> -p <contraseña>
  register [flags]
  logout
  whoami

  users|alumnos|maestros|carreras|reinscripciones <verb> [flags]
    verbs: list, create, update, delete, bulk-update, export
  alumnos by-carrera <nombre>
  reinscripciones by-alumno <alumnoId>
  reinscripciones inscribir [flags]`)
}

func (a *App) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.out)
	username := fs.String("u", "", "usuario")
	password := fs.String("p", "", "contraseña")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := a.sessions.Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "sesión iniciada como %s (%s)\n", sess.Identity.Username, sess.Identity.Role)
	return nil
}

func (a *App) runRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(a.out)
	req := models.RegisterRequest{}
	fs.StringVar(&req.Username, "u", "", "usuario")
	fs.StringVar(&req.Password, "p", "", "contraseña")
	fs.StringVar(&req.ConfirmarPassword, "confirm", "", "confirmar contraseña")
	fs.StringVar(&req.Role, "tipo", "", "alumno|maestro")
	fs.StringVar(&req.Nombre, "nombre", "", "nombre")
	fs.StringVar(&req.Apellido, "apellido", "", "apellido")
	fs.StringVar(&req.Email, "email", "", "email")
	fs.StringVar(&req.Genero, "genero", "", "género")
	fs.StringVar(&req.Telefono, "telefono", "", "teléfono")
	fs.StringVar(&req.Carrera, "carrera", "", "carrera (alumnos)")
	fs.StringVar(&req.Especialidad, "especialidad", "", "especialidad (maestros)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := a.sessions.Register(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "registro completado, sesión iniciada como %s\n", sess.Identity.Username)
	return nil
}

func (a *App) runWhoami() error {
	sess := a.sessions.Current()
	if !sess.Valid() {
		fmt.Fprintln(a.out, "sin sesión activa")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s, id %s)\n", sess.Identity.Username, sess.Identity.Role, sess.Identity.ID)
	if claims, err := a.sessions.TokenClaims(); err == nil {
		if exp, expErr := claims.GetExpirationTime(); expErr == nil && exp != nil {
			fmt.Fprintf(a.out, "token expira: %s\n", exp.Time.Format(time.RFC3339))
		}
	}
	return nil
}

// authorize gates every management verb on the session, like the router
// guard in front of each protected screen.
func (a *App) authorize(name string) error {
	return a.guard.Authorize(guard.Screen{Name: name})
}

func (a *App) saveExport(name string, format export.Format, table export.Table) error {
	data, err := export.Render(format, table)
	if err != nil {
		return err
	}
	filename := fmt.Sprintf("%s-%s.%s", name, time.Now().Format("20060102-150405"), format.Extension())
	path, err := a.exports.Save(filename, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "exportado a %s\n", path)
	return nil
}

func parsePatchFlags(pairs []string) (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid field %q, expected campo=valor", pair)
		}
		fields[key] = value
	}
	return fields, nil
}

// multiFlag collects repeated -set flags.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}
