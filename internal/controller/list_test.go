package controller

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amnotwallas/estudiantes-frontend/internal/models"
	appErrors "github.com/amnotwallas/estudiantes-frontend/pkg/errors"
)

// fakeAlumnos is an in-memory backend for the list controller tests. Every
// op can be made to fail per id, and call counts are recorded.
type fakeAlumnos struct {
	mu      sync.Mutex
	rows    map[string]models.Alumno
	failOn  map[string]error
	fetches int
	removes int
	patches int
}

func newFakeAlumnos(rows ...models.Alumno) *fakeAlumnos {
	f := &fakeAlumnos{rows: make(map[string]models.Alumno), failOn: make(map[string]error)}
	for _, row := range rows {
		f.rows[row.ID] = row
	}
	return f
}

func (f *fakeAlumnos) fetch(ctx context.Context) ([]models.Alumno, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if err := f.failOn["fetch"]; err != nil {
		return nil, err
	}
	out := make([]models.Alumno, 0, len(f.rows))
	for _, row := range f.rows {
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeAlumnos) create(ctx context.Context, draft models.AlumnoDraft) (*models.Alumno, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOn["create"]; err != nil {
		return nil, err
	}
	row := models.Alumno{
		ID:       "a" + draft.Nombre,
		Nombre:   draft.Nombre,
		Apellido: draft.Apellido,
		Email:    draft.Email,
		Carrera:  draft.Carrera,
		Estado:   draft.Estado,
	}
	f.rows[row.ID] = row
	return &row, nil
}

func (f *fakeAlumnos) update(ctx context.Context, id string, draft models.AlumnoDraft) (*models.Alumno, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOn[id]; err != nil {
		return nil, err
	}
	row, ok := f.rows[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Alumno no encontrado")
	}
	row.Nombre = draft.Nombre
	row.Apellido = draft.Apellido
	f.rows[id] = row
	return &row, nil
}

func (f *fakeAlumnos) remove(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removes++
	if err := f.failOn[id]; err != nil {
		return err
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeAlumnos) patch(ctx context.Context, id string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches++
	if err := f.failOn[id]; err != nil {
		return err
	}
	row, ok := f.rows[id]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "Alumno no encontrado")
	}
	if carrera, ok := fields["carrera"].(string); ok {
		row.Carrera = carrera
	}
	f.rows[id] = row
	return nil
}

func newAlumnoList(f *fakeAlumnos) *List[models.Alumno, models.AlumnoDraft] {
	return NewList("alumnos", Ops[models.Alumno, models.AlumnoDraft]{
		Fetch:  f.fetch,
		Create: f.create,
		Update: f.update,
		Remove: f.remove,
		Patch:  f.patch,
	}, nil)
}

func sampleAlumnos() []models.Alumno {
	return []models.Alumno{
		{ID: "a1", Nombre: "Ana", Apellido: "García", Email: "ana@example.com", Carrera: "Sistemas", Estado: "activo"},
		{ID: "a2", Nombre: "Bruno", Apellido: "Díaz", Email: "bruno@example.com", Carrera: "Civil", Estado: "activo"},
		{ID: "a3", Nombre: "Carla", Apellido: "García", Email: "carla@example.com", Carrera: "Sistemas", Estado: "baja"},
	}
}

func TestLoadPopulatesItems(t *testing.T) {
	backend := newFakeAlumnos(sampleAlumnos()...)
	list := newAlumnoList(backend)

	require.NoError(t, list.Load(context.Background()))
	assert.Equal(t, PhaseReady, list.Phase())
	assert.Len(t, list.Items(), 3)
	assert.NoError(t, list.Err())
}

func TestLoadFailureKeepsStaleItems(t *testing.T) {
	backend := newFakeAlumnos(sampleAlumnos()...)
	list := newAlumnoList(backend)
	require.NoError(t, list.Load(context.Background()))

	backend.failOn["fetch"] = appErrors.Request(500, "error interno")
	err := list.Load(context.Background())
	require.Error(t, err)

	assert.Equal(t, PhaseErrored, list.Phase())
	assert.Error(t, list.Err())
	assert.Len(t, list.Items(), 3, "stale rows stay available after a failed refetch")
}

func TestFilterIsCaseInsensitiveAndIdempotent(t *testing.T) {
	backend := newFakeAlumnos(sampleAlumnos()...)
	list := newAlumnoList(backend)
	require.NoError(t, list.Load(context.Background()))

	list.SetFilter("GARCÍA")
	first := list.Filtered()
	second := list.Filtered()
	assert.Len(t, first, 2)
	assert.Equal(t, first, second)

	list.SetFilter("")
	assert.Len(t, list.Filtered(), 3)
}

func TestFilterMatchesAnySearchField(t *testing.T) {
	backend := newFakeAlumnos(sampleAlumnos()...)
	list := newAlumnoList(backend)
	require.NoError(t, list.Load(context.Background()))

	list.SetFilter("bruno@example.com")
	matched := list.Filtered()
	require.Len(t, matched, 1)
	assert.Equal(t, "a2", matched[0].ID)
}

func TestToggleSelectIgnoresUnknownIDs(t *testing.T) {
	backend := newFakeAlumnos(sampleAlumnos()...)
	list := newAlumnoList(backend)
	require.NoError(t, list.Load(context.Background()))

	list.ToggleSelect("a1")
	list.ToggleSelect("nope")
	assert.Equal(t, []string{"a1"}, list.Selection())

	list.ToggleSelect("a1")
	assert.Empty(t, list.Selection())
}

func TestSelectAllCoversFilteredViewOnly(t *testing.T) {
	backend := newFakeAlumnos(sampleAlumnos()...)
	list := newAlumnoList(backend)
	require.NoError(t, list.Load(context.Background()))

	list.SetFilter("sistemas")
	assert.Empty(t, list.Filtered(), "carrera is not a search field for alumnos")

	list.SetFilter("garcía")
	list.SelectAll()
	assert.Equal(t, []string{"a1", "a3"}, list.Selection())

	list.ClearSelection()
	assert.Empty(t, list.Selection())
}

func TestSelectAllOnEmptyCollection(t *testing.T) {
	backend := newFakeAlumnos()
	list := newAlumnoList(backend)
	require.NoError(t, list.Load(context.Background()))

	list.SelectAll()
	assert.Empty(t, list.Selection())
	list.ClearSelection()
	assert.Empty(t, list.Selection())
}

func TestFormExclusivity(t *testing.T) {
	backend := newFakeAlumnos(sampleAlumnos()...)
	list := newAlumnoList(backend)
	require.NoError(t, list.Load(context.Background()))

	require.NoError(t, list.OpenCreateForm())
	assert.Equal(t, FormOpenCreate, list.Form().Mode)

	_, err := list.OpenEditForm("a1")
	assert.True(t, appErrors.Is(err, appErrors.ErrBusy))

	list.CloseForm()
	row, err := list.OpenEditForm("a1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", row.Nombre)
	assert.Equal(t, "a1", list.Form().EditID)
}

func TestOpenEditFormUnknownID(t *testing.T) {
	backend := newFakeAlumnos(sampleAlumnos()...)
	list := newAlumnoList(backend)
	require.NoError(t, list.Load(context.Background()))

	_, err := list.OpenEditForm("a99")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
	assert.Equal(t, FormClosed, list.Form().Mode)
}

func TestCreateResyncsAndClosesForm(t *testing.T) {
	backend := newFakeAlumnos(sampleAlumnos()...)
	list := newAlumnoList(backend)
	require.NoError(t, list.Load(context.Background()))
	require.NoError(t, list.OpenCreateForm())

	created, err := list.Create(context.Background(), models.AlumnoDraft{
		Nombre: "Diego", Apellido: "Luna", Email: "diego@example.com", Carrera: "Civil", Estado: "activo",
	})
	require.NoError(t, err)
	assert.Equal(t, "Diego", created.Nombre)
	assert.Equal(t, FormClosed, list.Form().Mode)
	assert.Len(t, list.Items(), 4, "collection re-synced after create")
}

func TestUpdateClearsSelection(t *testing.T) {
	backend := newFakeAlumnos(sampleAlumnos()...)
	list := newAlumnoList(backend)
	require.NoError(t, list.Load(context.Background()))
	list.ToggleSelect("a1")
	list.ToggleSelect("a2")

	_, err := list.Update(context.Background(), "a1", models.AlumnoDraft{
		Nombre: "Ana María", Apellido: "García", Email: "ana@example.com", Carrera: "Sistemas",
	})
	require.NoError(t, err)
	assert.Empty(t, list.Selection())
}

func TestDeleteResyncsAndPrunesSelection(t *testing.T) {
	backend := newFakeAlumnos(sampleAlumnos()...)
	list := newAlumnoList(backend)
	require.NoError(t, list.Load(context.Background()))
	list.ToggleSelect("a1")
	list.ToggleSelect("a2")

	require.NoError(t, list.Delete(context.Background(), "a1"))
	assert.Len(t, list.Items(), 2)
	assert.Equal(t, []string{"a2"}, list.Selection(), "deleted id pruned from selection")
}

func TestMutationsRejectedWhileOnePending(t *testing.T) {
	backend := newFakeAlumnos(sampleAlumnos()...)
	list := newAlumnoList(backend)
	require.NoError(t, list.Load(context.Background()))

	started := make(chan struct{})
	release := make(chan struct{})
	var startedOnce sync.Once
	slow := NewList("alumnos", Ops[models.Alumno, models.AlumnoDraft]{
		Fetch: backend.fetch,
		Remove: func(ctx context.Context, id string) error {
			startedOnce.Do(func() { close(started) })
			<-release
			return backend.remove(ctx, id)
		},
	}, nil)
	require.NoError(t, slow.Load(context.Background()))

	done := make(chan error, 1)
	go func() { done <- slow.Delete(context.Background(), "a1") }()
	<-started

	err := slow.Delete(context.Background(), "a2")
	assert.True(t, appErrors.Is(err, appErrors.ErrBusy))

	close(release)
	require.NoError(t, <-done)
	err = slow.Delete(context.Background(), "a2")
	require.NoError(t, err, "busy flag released once the mutation settles")
}
