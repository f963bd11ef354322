package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/amnotwallas/estudiantes-frontend/internal/controller"
	"github.com/amnotwallas/estudiantes-frontend/internal/models"
	"github.com/amnotwallas/estudiantes-frontend/pkg/export"
)

func (a *App) runReinscripciones(ctx context.Context, args []string) error {
	if err := a.authorize("reinscripciones"); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("reinscripciones: missing verb")
	}

	verb, rest := args[0], args[1:]
	switch verb {
	case "list":
		return a.reinsList(ctx, rest)
	case "by-alumno":
		return a.reinsByAlumno(ctx, rest)
	case "create":
		return a.reinsCreate(ctx, rest)
	case "update":
		return a.reinsUpdate(ctx, rest)
	case "delete":
		return a.reinsDelete(ctx, rest)
	case "inscribir":
		return a.reinsInscribir(ctx, rest)
	case "export":
		return a.reinsExport(ctx, rest)
	default:
		return fmt.Errorf("reinscripciones: unknown verb %q", verb)
	}
}

func (a *App) reinsList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reinscripciones list", flag.ContinueOnError)
	fs.SetOutput(a.out)
	query := fs.String("q", "", "filtro de texto")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.reins.Load(ctx); err != nil {
		return err
	}
	a.reins.SetFilter(*query)
	for _, r := range a.reins.Filtered() {
		fmt.Fprintf(a.out, "%s\talumno=%s\tsemestre=%s\t%s\t%s\n", r.ID, r.AlumnoID, r.Semestre, r.FechaReinscripcion, r.Estado)
	}
	return nil
}

func (a *App) reinsByAlumno(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("reinscripciones by-alumno: missing alumno id")
	}
	records, err := a.reinsAPI.ByAlumno(ctx, args[0])
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(a.out, "sin reinscripciones previas")
		return nil
	}
	for _, r := range records {
		fmt.Fprintf(a.out, "%s\tsemestre=%s\t%s\t%s\n", r.ID, r.Semestre, r.FechaReinscripcion, r.Estado)
	}
	// el último registro refleja el estatus vigente
	last := records[len(records)-1]
	fmt.Fprintf(a.out, "estatus actual: semestre %s (%s)\n", last.Semestre, last.Estado)
	return nil
}

func reinscripcionDraftFlags(fs *flag.FlagSet) *models.ReinscripcionDraft {
	draft := &models.ReinscripcionDraft{}
	fs.StringVar(&draft.AlumnoID, "alumno", "", "id del alumno")
	fs.StringVar(&draft.Semestre, "semestre", "", "semestre")
	fs.StringVar(&draft.FechaReinscripcion, "fecha", time.Now().Format("2006-01-02"), "fecha (YYYY-MM-DD)")
	fs.StringVar(&draft.Estado, "estado", "activo", "estado")
	fs.StringVar(&draft.Observaciones, "observaciones", "", "observaciones")
	return draft
}

func (a *App) reinsCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reinscripciones create", flag.ContinueOnError)
	fs.SetOutput(a.out)
	draft := reinscripcionDraftFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.reins.OpenCreateForm(); err != nil {
		return err
	}
	created, err := a.reins.Create(ctx, *draft)
	if err != nil {
		a.reins.CloseForm()
		return err
	}
	fmt.Fprintf(a.out, "reinscripción creada: %s\n", created.ID)
	return nil
}

func (a *App) reinsUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reinscripciones update", flag.ContinueOnError)
	fs.SetOutput(a.out)
	id := fs.String("id", "", "id de la reinscripción")
	draft := reinscripcionDraftFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.reins.Load(ctx); err != nil {
		return err
	}
	current, err := a.reins.OpenEditForm(*id)
	if err != nil {
		return err
	}
	if draft.AlumnoID == "" {
		draft.AlumnoID = current.AlumnoID
	}
	if draft.Semestre == "" {
		draft.Semestre = current.Semestre
	}
	updated, err := a.reins.Update(ctx, *id, *draft)
	if err != nil {
		a.reins.CloseForm()
		return err
	}
	fmt.Fprintf(a.out, "reinscripción actualizada: %s\n", updated.ID)
	return nil
}

func (a *App) reinsDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "nada que eliminar")
		return nil
	}
	results, err := a.reins.BulkDelete(ctx, args)
	a.reportBulk(results)
	return err
}

// reinsInscribir runs the two-step intake: alta de alumno + primera
// reinscripción, with the compensating delete on failure.
func (a *App) reinsInscribir(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reinscripciones inscribir", flag.ContinueOnError)
	fs.SetOutput(a.out)
	req := controller.IntakeRequest{}
	fs.StringVar(&req.Nombre, "nombre", "", "nombre")
	fs.StringVar(&req.Apellido, "apellido", "", "apellido")
	fs.StringVar(&req.Email, "email", "", "email")
	fs.StringVar(&req.Telefono, "telefono", "", "teléfono")
	fs.StringVar(&req.Genero, "genero", "masculino", "género")
	fs.StringVar(&req.Carrera, "carrera", "", "carrera")
	fs.StringVar(&req.Semestre, "semestre", "1", "semestre inicial")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := a.intake.Enroll(ctx, req)
	if err != nil {
		var intakeErr *controller.IntakeError
		if errors.As(err, &intakeErr) && intakeErr.Cleanup == controller.CleanupFailed {
			fmt.Fprintln(a.out, "ATENCIÓN: quedó un alumno sin reinscripción, id "+intakeErr.AlumnoID)
		}
		return err
	}
	fmt.Fprintf(a.out, "alumno inscrito exitosamente: %s %s (reinscripción %s)\n",
		result.Alumno.Nombre, result.Alumno.Apellido, result.Reinscripcion.ID)
	return nil
}

func (a *App) reinsExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reinscripciones export", flag.ContinueOnError)
	fs.SetOutput(a.out)
	query := fs.String("q", "", "filtro de texto")
	format := fs.String("format", "csv", "csv|pdf")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.reins.Load(ctx); err != nil {
		return err
	}
	a.reins.SetFilter(*query)

	table := export.Table{
		Title:   "Reinscripciones",
		Columns: []string{"ID", "Alumno", "Semestre", "Fecha", "Estado"},
	}
	for _, r := range a.reins.Filtered() {
		table.Rows = append(table.Rows, []string{r.ID, r.AlumnoID, r.Semestre, r.FechaReinscripcion, r.Estado})
	}
	return a.saveExport("reinscripciones", export.Format(*format), table)
}
