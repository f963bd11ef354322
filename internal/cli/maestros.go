package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/amnotwallas/estudiantes-frontend/internal/models"
	"github.com/amnotwallas/estudiantes-frontend/pkg/export"
)

func (a *App) runMaestros(ctx context.Context, args []string) error {
	if err := a.authorize("maestros"); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("maestros: missing verb")
	}

	verb, rest := args[0], args[1:]
	switch verb {
	case "list":
		return a.maestrosList(ctx, rest)
	case "create":
		return a.maestrosCreate(ctx, rest)
	case "update":
		return a.maestrosUpdate(ctx, rest)
	case "delete":
		return a.maestrosDelete(ctx, rest)
	case "bulk-update":
		return a.maestrosBulkUpdate(ctx, rest)
	case "export":
		return a.maestrosExport(ctx, rest)
	default:
		return fmt.Errorf("maestros: unknown verb %q", verb)
	}
}

func (a *App) maestrosList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("maestros list", flag.ContinueOnError)
	fs.SetOutput(a.out)
	query := fs.String("q", "", "filtro de texto")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.maestros.Load(ctx); err != nil {
		return err
	}
	a.maestros.SetFilter(*query)
	for _, m := range a.maestros.Filtered() {
		fmt.Fprintf(a.out, "%s\t%s %s\t%s\t%s\n", m.ID, m.Nombre, m.Apellido, m.Email, m.Especialidad)
	}
	return nil
}

func maestroDraftFlags(fs *flag.FlagSet) *models.MaestroDraft {
	draft := &models.MaestroDraft{}
	fs.StringVar(&draft.Nombre, "nombre", "", "nombre")
	fs.StringVar(&draft.Apellido, "apellido", "", "apellido")
	fs.StringVar(&draft.Email, "email", "", "email")
	fs.StringVar(&draft.Telefono, "telefono", "", "teléfono")
	fs.StringVar(&draft.Especialidad, "especialidad", "", "especialidad")
	return draft
}

func (a *App) maestrosCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("maestros create", flag.ContinueOnError)
	fs.SetOutput(a.out)
	draft := maestroDraftFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.maestros.OpenCreateForm(); err != nil {
		return err
	}
	created, err := a.maestros.Create(ctx, *draft)
	if err != nil {
		a.maestros.CloseForm()
		return err
	}
	fmt.Fprintf(a.out, "maestro creado: %s %s (%s)\n", created.Nombre, created.Apellido, created.ID)
	return nil
}

func (a *App) maestrosUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("maestros update", flag.ContinueOnError)
	fs.SetOutput(a.out)
	id := fs.String("id", "", "id del maestro")
	draft := maestroDraftFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.maestros.Load(ctx); err != nil {
		return err
	}
	current, err := a.maestros.OpenEditForm(*id)
	if err != nil {
		return err
	}
	if draft.Nombre == "" {
		draft.Nombre = current.Nombre
	}
	if draft.Apellido == "" {
		draft.Apellido = current.Apellido
	}
	if draft.Email == "" {
		draft.Email = current.Email
	}
	if draft.Especialidad == "" {
		draft.Especialidad = current.Especialidad
	}
	if draft.Telefono == "" {
		draft.Telefono = current.Telefono
	}
	updated, err := a.maestros.Update(ctx, *id, *draft)
	if err != nil {
		a.maestros.CloseForm()
		return err
	}
	fmt.Fprintf(a.out, "maestro actualizado: %s %s\n", updated.Nombre, updated.Apellido)
	return nil
}

func (a *App) maestrosDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "nada que eliminar")
		return nil
	}
	results, err := a.maestros.BulkDelete(ctx, args)
	a.reportBulk(results)
	return err
}

func (a *App) maestrosBulkUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("maestros bulk-update", flag.ContinueOnError)
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
	results, err := a.maestros.BulkUpdate(ctx, fs.Args(), fields)
	a.reportBulk(results)
	return err
}

func (a *App) maestrosExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("maestros export", flag.ContinueOnError)
	fs.SetOutput(a.out)
	query := fs.String("q", "", "filtro de texto")
	format := fs.String("format", "csv", "csv|pdf")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.maestros.Load(ctx); err != nil {
		return err
	}
	a.maestros.SetFilter(*query)

	table := export.Table{
		Title:   "Maestros",
		Columns: []string{"ID", "Nombre", "Apellido", "Email", "Especialidad"},
	}
	for _, m := range a.maestros.Filtered() {
		table.Rows = append(table.Rows, []string{m.ID, m.Nombre, m.Apellido, m.Email, m.Especialidad})
	}
	return a.saveExport("maestros", export.Format(*format), table)
}
