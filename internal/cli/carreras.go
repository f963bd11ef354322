package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/amnotwallas/estudiantes-frontend/internal/models"
	"github.com/amnotwallas/estudiantes-frontend/pkg/export"
)

func (a *App) runCarreras(ctx context.Context, args []string) error {
	if err := a.authorize("carreras"); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("carreras: missing verb")
	}

	verb, rest := args[0], args[1:]
	switch verb {
	case "list":
		return a.carrerasList(ctx, rest)
	case "create":
		return a.carrerasCreate(ctx, rest)
	case "update":
		return a.carrerasUpdate(ctx, rest)
	case "delete":
		return a.carrerasDelete(ctx, rest)
	case "bulk-update":
		return a.carrerasBulkUpdate(ctx, rest)
	case "export":
		return a.carrerasExport(ctx, rest)
	default:
		return fmt.Errorf("carreras: unknown verb %q", verb)
	}
}

func (a *App) carrerasList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("carreras list", flag.ContinueOnError)
	fs.SetOutput(a.out)
	query := fs.String("q", "", "filtro de texto")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.carreras.Load(ctx); err != nil {
		return err
	}
	a.carreras.SetFilter(*query)
	for _, c := range a.carreras.Filtered() {
		label := "sin alumnos"
		if c.TieneAlumnos() {
			label = "con alumnos"
		}
		fmt.Fprintf(a.out, "%s\t%s\t%d años\t%s\t%s\n", c.ID, c.Nombre, c.Duracion, c.Modalidad, label)
	}
	return nil
}

func carreraDraftFlags(fs *flag.FlagSet) *models.CarreraDraft {
	draft := &models.CarreraDraft{}
	fs.StringVar(&draft.Nombre, "nombre", "", "nombre")
	fs.StringVar(&draft.Descripcion, "descripcion", "", "descripción")
	fs.IntVar(&draft.Duracion, "duracion", 0, "duración en años")
	fs.StringVar(&draft.Modalidad, "modalidad", "", "modalidad")
	return draft
}

func (a *App) carrerasCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("carreras create", flag.ContinueOnError)
	fs.SetOutput(a.out)
	draft := carreraDraftFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.carreras.OpenCreateForm(); err != nil {
		return err
	}
	created, err := a.carreras.Create(ctx, *draft)
	if err != nil {
		a.carreras.CloseForm()
		return err
	}
	fmt.Fprintf(a.out, "carrera creada: %s (%s)\n", created.Nombre, created.ID)
	return nil
}

func (a *App) carrerasUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("carreras update", flag.ContinueOnError)
	fs.SetOutput(a.out)
	id := fs.String("id", "", "id de la carrera")
	draft := carreraDraftFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.carreras.Load(ctx); err != nil {
		return err
	}
	current, err := a.carreras.OpenEditForm(*id)
	if err != nil {
		return err
	}
	if draft.Nombre == "" {
		draft.Nombre = current.Nombre
	}
	if draft.Descripcion == "" {
		draft.Descripcion = current.Descripcion
	}
	if draft.Duracion == 0 {
		draft.Duracion = current.Duracion
	}
	if draft.Modalidad == "" {
		draft.Modalidad = current.Modalidad
	}
	updated, err := a.carreras.Update(ctx, *id, *draft)
	if err != nil {
		a.carreras.CloseForm()
		return err
	}
	fmt.Fprintf(a.out, "carrera actualizada: %s\n", updated.Nombre)
	return nil
}

func (a *App) carrerasDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "nada que eliminar")
		return nil
	}
	results, err := a.carreras.BulkDelete(ctx, args)
	a.reportBulk(results)
	return err
}

func (a *App) carrerasBulkUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("carreras bulk-update", flag.ContinueOnError)
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
	// duración viaja como número
	if raw, ok := fields["duracion"].(string); ok {
		if n, convErr := strconv.Atoi(raw); convErr == nil {
			fields["duracion"] = n
		}
	}
	results, err := a.carreras.BulkUpdate(ctx, fs.Args(), fields)
	a.reportBulk(results)
	return err
}

func (a *App) carrerasExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("carreras export", flag.ContinueOnError)
	fs.SetOutput(a.out)
	query := fs.String("q", "", "filtro de texto")
	format := fs.String("format", "csv", "csv|pdf")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.carreras.Load(ctx); err != nil {
		return err
	}
	a.carreras.SetFilter(*query)

	table := export.Table{
		Title:   "Carreras",
		Columns: []string{"ID", "Nombre", "Duración", "Modalidad", "Alumnos"},
	}
	for _, c := range a.carreras.Filtered() {
		label := "sin alumnos"
		if c.TieneAlumnos() {
			label = "con alumnos"
		}
		table.Rows = append(table.Rows, []string{c.ID, c.Nombre, strconv.Itoa(c.Duracion), c.Modalidad, label})
	}
	return a.saveExport("carreras", export.Format(*format), table)
}
