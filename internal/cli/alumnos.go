package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/amnotwallas/estudiantes-frontend/internal/models"
	"github.com/amnotwallas/estudiantes-frontend/pkg/export"
)

func (a *App) runAlumnos(ctx context.Context, args []string) error {
	if err := a.authorize("alumnos"); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("alumnos: missing verb")
	}

	verb, rest := args[0], args[1:]
	switch verb {
	case "list":
		return a.alumnosList(ctx, rest)
	case "by-carrera":
		return a.alumnosByCarrera(ctx, rest)
	case "create":
		return a.alumnosCreate(ctx, rest)
	case "update":
		return a.alumnosUpdate(ctx, rest)
	case "delete":
		return a.alumnosDelete(ctx, rest)
	case "bulk-update":
		return a.alumnosBulkUpdate(ctx, rest)
	case "export":
		return a.alumnosExport(ctx, rest)
	default:
		return fmt.Errorf("alumnos: unknown verb %q", verb)
	}
}

func (a *App) alumnosList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("alumnos list", flag.ContinueOnError)
	fs.SetOutput(a.out)
	query := fs.String("q", "", "filtro de texto")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.alumnos.Load(ctx); err != nil {
		return err
	}
	a.alumnos.SetFilter(*query)
	for _, al := range a.alumnos.Filtered() {
		fmt.Fprintf(a.out, "%s\t%s %s\t%s\t%s\t%s\n", al.ID, al.Nombre, al.Apellido, al.Email, al.Carrera, al.Estado)
	}
	return nil
}

func (a *App) alumnosByCarrera(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("alumnos by-carrera: missing carrera name")
	}
	alumnos, err := a.alumnosAPI.ByCarrera(ctx, args[0])
	if err != nil {
		return err
	}
	for _, al := range alumnos {
		fmt.Fprintf(a.out, "%s\t%s %s\t%s\n", al.ID, al.Nombre, al.Apellido, al.Email)
	}
	return nil
}

func alumnoDraftFlags(fs *flag.FlagSet) *models.AlumnoDraft {
	draft := &models.AlumnoDraft{}
	fs.StringVar(&draft.Nombre, "nombre", "", "nombre")
	fs.StringVar(&draft.Apellido, "apellido", "", "apellido")
	fs.StringVar(&draft.Genero, "genero", "masculino", "género")
	fs.StringVar(&draft.Telefono, "telefono", "", "teléfono")
	fs.StringVar(&draft.Email, "email", "", "email")
	fs.StringVar(&draft.Carrera, "carrera", "", "carrera")
	return draft
}

func (a *App) alumnosCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("alumnos create", flag.ContinueOnError)
	fs.SetOutput(a.out)
	draft := alumnoDraftFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.alumnos.OpenCreateForm(); err != nil {
		return err
	}
	created, err := a.alumnos.Create(ctx, *draft)
	if err != nil {
		a.alumnos.CloseForm()
		return err
	}
	fmt.Fprintf(a.out, "alumno creado: %s %s (%s)\n", created.Nombre, created.Apellido, created.ID)
	return nil
}

func (a *App) alumnosUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("alumnos update", flag.ContinueOnError)
	fs.SetOutput(a.out)
	id := fs.String("id", "", "id del alumno")
	draft := alumnoDraftFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.alumnos.Load(ctx); err != nil {
		return err
	}
	current, err := a.alumnos.OpenEditForm(*id)
	if err != nil {
		return err
	}
	fillAlumnoDraft(draft, current)
	updated, err := a.alumnos.Update(ctx, *id, *draft)
	if err != nil {
		a.alumnos.CloseForm()
		return err
	}
	fmt.Fprintf(a.out, "alumno actualizado: %s %s\n", updated.Nombre, updated.Apellido)
	return nil
}

// fillAlumnoDraft pre-populates the edit form from the selected row, the
// way the modal loads current values before the operator overrides them.
func fillAlumnoDraft(draft *models.AlumnoDraft, current models.Alumno) {
	if draft.Nombre == "" {
		draft.Nombre = current.Nombre
	}
	if draft.Apellido == "" {
		draft.Apellido = current.Apellido
	}
	if draft.Email == "" {
		draft.Email = current.Email
	}
	if draft.Carrera == "" {
		draft.Carrera = current.Carrera
	}
	if draft.Telefono == "" {
		draft.Telefono = current.Telefono
	}
}

func (a *App) alumnosDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "nada que eliminar")
		return nil
	}
	results, err := a.alumnos.BulkDelete(ctx, args)
	a.reportBulk(results)
	return err
}

func (a *App) alumnosBulkUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("alumnos bulk-update", flag.ContinueOnError)
	fs.SetOutput(a.out)
	var sets multiFlag
	fs.Var(&sets, "set", "campo=valor (repetible)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fields, err := parsePatchFlags(sets)
	if err != nil {
		return err
	}
	results, err := a.alumnos.BulkUpdate(ctx, fs.Args(), fields)
	a.reportBulk(results)
	return err
}

func (a *App) alumnosExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("alumnos export", flag.ContinueOnError)
	fs.SetOutput(a.out)
	query := fs.String("q", "", "filtro de texto")
	format := fs.String("format", "csv", "csv|pdf")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.alumnos.Load(ctx); err != nil {
		return err
	}
	a.alumnos.SetFilter(*query)

	table := export.Table{
		Title:   "Alumnos",
		Columns: []string{"ID", "Nombre", "Apellido", "Email", "Carrera", "Estado"},
	}
	for _, al := range a.alumnos.Filtered() {
		table.Rows = append(table.Rows, []string{al.ID, al.Nombre, al.Apellido, al.Email, al.Carrera, al.Estado})
	}
	return a.saveExport("alumnos", export.Format(*format), table)
}
