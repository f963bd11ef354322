package controller

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/amnotwallas/estudiantes-frontend/internal/models"
	appErrors "github.com/amnotwallas/estudiantes-frontend/pkg/errors"
)

// CleanupState distinguishes the outcomes of the intake compensation step.
type CleanupState int

const (
	// CleanupNotNeeded: the first step failed, nothing was created.
	CleanupNotNeeded CleanupState = iota
	// CleanupSucceeded: the compensating delete removed the orphan alumno.
	CleanupSucceeded
	// CleanupFailed: the compensating delete also failed. An orphan alumno
	// remains on the server and requires manual intervention.
	CleanupFailed
)

// IntakeError reports an intake failure together with what happened to the
// partially created state.
type IntakeError struct {
	Cleanup  CleanupState
	AlumnoID string
	Err      error
}

func (e *IntakeError) Error() string {
	switch e.Cleanup {
	case CleanupSucceeded:
		return "no se pudo crear la reinscripción inicial; el alumno creado fue eliminado: " + e.Err.Error()
	case CleanupFailed:
		return "no se pudo crear la reinscripción inicial y el alumno creado NO pudo ser eliminado (requiere intervención manual, id " + e.AlumnoID + "): " + e.Err.Error()
	default:
		return e.Err.Error()
	}
}

func (e *IntakeError) Unwrap() error { return e.Err }

// IntakeRequest is the combined new-student-plus-first-enrollment form.
type IntakeRequest struct {
	Nombre   string `validate:"required"`
	Apellido string `validate:"required"`
	Email    string `validate:"required,email"`
	Telefono string `validate:"required"`
	Genero   string `validate:"required"`
	Carrera  string `validate:"required"`
	Semestre string `validate:"required"`
}

// IntakeResult holds both records created by a successful intake.
type IntakeResult struct {
	Alumno        *models.Alumno
	Reinscripcion *models.Reinscripcion
}

type intakeAlumnos interface {
	Create(ctx context.Context, draft models.AlumnoDraft) (*models.Alumno, error)
	Delete(ctx context.Context, id string) error
}

type intakeReinscripciones interface {
	Create(ctx context.Context, draft models.ReinscripcionDraft) (*models.Reinscripcion, error)
}

// Intake runs the two-step student enrollment sequence: create the alumno,
// then create its initial reinscripcion. The two calls are not a
// transaction; when the second fails a best-effort compensating delete of
// the alumno is attempted and the outcome is reported explicitly.
type Intake struct {
	alumnos   intakeAlumnos
	records   intakeReinscripciones
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewIntake constructs the intake flow.
func NewIntake(alumnos intakeAlumnos, records intakeReinscripciones, validate *validator.Validate, logger *zap.Logger) *Intake {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Intake{alumnos: alumnos, records: records, validator: validate, logger: logger, now: time.Now}
}

// Enroll executes the intake saga. Callers must not assume atomicity: on a
// CleanupFailed error an orphan alumno exists server-side.
func (i *Intake) Enroll(ctx context.Context, req IntakeRequest) (*IntakeResult, error) {
	if err := i.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "complete todos los campos requeridos")
	}
	if digits(req.Telefono) < 10 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "ingrese un número de teléfono válido (mínimo 10 dígitos)")
	}

	alumno, err := i.alumnos.Create(ctx, models.AlumnoDraft{
		Nombre:   strings.TrimSpace(req.Nombre),
		Apellido: strings.TrimSpace(req.Apellido),
		Email:    strings.TrimSpace(req.Email),
		Telefono: strings.TrimSpace(req.Telefono),
		Genero:   req.Genero,
		Carrera:  req.Carrera,
		Estado:   "activo",
	})
	if err != nil {
		return nil, &IntakeError{Cleanup: CleanupNotNeeded, Err: err}
	}

	record, err := i.records.Create(ctx, models.ReinscripcionDraft{
		AlumnoID:           alumno.ID,
		Semestre:           req.Semestre,
		FechaReinscripcion: i.now().Format("2006-01-02"),
		Estado:             "activo",
		Observaciones:      "Inscripción inicial",
	})
	if err != nil {
		return nil, i.compensate(ctx, alumno.ID, err)
	}

	return &IntakeResult{Alumno: alumno, Reinscripcion: record}, nil
}

func (i *Intake) compensate(ctx context.Context, alumnoID string, cause error) error {
	if deleteErr := i.alumnos.Delete(ctx, alumnoID); deleteErr != nil {
		i.logger.Error("failed to clean up alumno after enrollment failure",
			zap.String("alumno_id", alumnoID), zap.Error(deleteErr))
		return &IntakeError{Cleanup: CleanupFailed, AlumnoID: alumnoID, Err: cause}
	}
	i.logger.Warn("enrollment failed, created alumno removed", zap.String("alumno_id", alumnoID))
	return &IntakeError{Cleanup: CleanupSucceeded, AlumnoID: alumnoID, Err: cause}
}

func digits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
