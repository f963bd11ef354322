// Package controller implements the list-management behaviour shared by
// every screen: one fetched collection, a free-text filter, a multi-row
// selection set, and single/bulk mutation flows.
package controller

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/amnotwallas/estudiantes-frontend/internal/models"
	appErrors "github.com/amnotwallas/estudiantes-frontend/pkg/errors"
)

// Phase is the list loading state. Forms are an orthogonal sub-state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseErrored
)

// FormMode tracks the modal create/edit sub-state. Only one form may be
// open at a time.
type FormMode int

const (
	FormClosed FormMode = iota
	FormOpenCreate
	FormOpenEdit
)

// FormState pairs the mode with the id under edit.
type FormState struct {
	Mode   FormMode
	EditID string
}

// Ops binds a List to its entity's resource client. Patch is optional;
// screens without a bulk-edit affordance leave it nil.
type Ops[T models.Entity, D any] struct {
	Fetch  func(ctx context.Context) ([]T, error)
	Create func(ctx context.Context, draft D) (*T, error)
	Update func(ctx context.Context, id string, draft D) (*T, error)
	Remove func(ctx context.Context, id string) error
	Patch  func(ctx context.Context, id string, fields map[string]interface{}) error
}

// List owns one screen's collection. All exported methods are safe for
// concurrent use, though the UI discipline is to disable controls while a
// mutation is pending; overlapping mutations are rejected outright.
type List[T models.Entity, D any] struct {
	name   string
	ops    Ops[T, D]
	logger *zap.Logger

	// guarded by mu
	items      []T
	selection  map[string]struct{}
	filterText string
	phase      Phase
	lastErr    error
	form       FormState
	busy       bool

	mu sync.Mutex
}

// NewList constructs a controller for one entity type.
func NewList[T models.Entity, D any](name string, ops Ops[T, D], logger *zap.Logger) *List[T, D] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &List[T, D]{
		name:      name,
		ops:       ops,
		logger:    logger.With(zap.String("screen", name)),
		selection: make(map[string]struct{}),
		phase:     PhaseIdle,
	}
}

// Load replaces the collection wholesale. On failure the previous items are
// kept (stale but available) and the error is recorded.
func (l *List[T, D]) Load(ctx context.Context) error {
	l.mu.Lock()
	l.phase = PhaseLoading
	l.mu.Unlock()

	return l.refresh(ctx)
}

func (l *List[T, D]) refresh(ctx context.Context) error {
	items, err := l.ops.Fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.phase = PhaseErrored
		l.lastErr = err
		l.logger.Warn("fetch failed", zap.Error(err))
		return err
	}

	l.items = items
	l.phase = PhaseReady
	l.lastErr = nil
	l.selection = PruneSelection(l.selection, ids(items))
	return nil
}

// Phase returns the current loading state.
func (l *List[T, D]) Phase() Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phase
}

// Err returns the error recorded by the last failed fetch, if any.
func (l *List[T, D]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// Items returns a copy of the full collection.
func (l *List[T, D]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]T(nil), l.items...)
}

// SetFilter updates the free-text filter. The filtered view is recomputed
// on every read, never stored.
func (l *List[T, D]) SetFilter(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.filterText = text
}

// FilterText returns the current filter.
func (l *List[T, D]) FilterText() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filterText
}

// Filtered returns the items matching the filter: a case-insensitive
// substring match across the entity's fixed search-field set.
func (l *List[T, D]) Filtered() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return filterItems(l.items, l.filterText)
}

func filterItems[T models.Entity](items []T, text string) []T {
	if text == "" {
		return append([]T(nil), items...)
	}
	needle := strings.ToLower(text)
	matched := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range item.SearchFields() {
			if strings.Contains(strings.ToLower(field), needle) {
				matched = append(matched, item)
				break
			}
		}
	}
	return matched
}

// ToggleSelect flips one row's membership in the selection set. Unknown ids
// are ignored: selection is always a subset of the fetched items.
func (l *List[T, D]) ToggleSelect(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, known := l.indexLocked(id); !known {
		return
	}
	if _, ok := l.selection[id]; ok {
		delete(l.selection, id)
	} else {
		l.selection[id] = struct{}{}
	}
}

// SelectAll selects every row in the current filtered view.
func (l *List[T, D]) SelectAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, item := range filterItems(l.items, l.filterText) {
		l.selection[item.EntityID()] = struct{}{}
	}
}

// ClearSelection empties the selection set.
func (l *List[T, D]) ClearSelection() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.selection = make(map[string]struct{})
}

// Selection returns the selected ids in stable order.
func (l *List[T, D]) Selection() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	selected := make([]string, 0, len(l.selection))
	for id := range l.selection {
		selected = append(selected, id)
	}
	sort.Strings(selected)
	return selected
}

// OpenCreateForm opens the create modal. Fails when any form is open.
func (l *List[T, D]) OpenCreateForm() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.form.Mode != FormClosed {
		return appErrors.Clone(appErrors.ErrBusy, "close the open form first")
	}
	l.form = FormState{Mode: FormOpenCreate}
	return nil
}

// OpenEditForm opens the edit modal for one existing row.
func (l *List[T, D]) OpenEditForm(id string) (T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var zero T
	if l.form.Mode != FormClosed {
		return zero, appErrors.Clone(appErrors.ErrBusy, "close the open form first")
	}
	idx, known := l.indexLocked(id)
	if !known {
		return zero, appErrors.Clone(appErrors.ErrNotFound, "row not found")
	}
	l.form = FormState{Mode: FormOpenEdit, EditID: id}
	return l.items[idx], nil
}

// CloseForm dismisses whichever form is open.
func (l *List[T, D]) CloseForm() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.form = FormState{}
}

// Form returns the current form sub-state.
func (l *List[T, D]) Form() FormState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.form
}

// Create validates and submits a new record, then re-syncs the collection
// so server-assigned fields are reflected.
func (l *List[T, D]) Create(ctx context.Context, draft D) (*T, error) {
	if err := l.beginMutation(); err != nil {
		return nil, err
	}
	defer l.endMutation()

	created, err := l.ops.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.form = FormState{}
	l.mu.Unlock()

	if err := l.refresh(ctx); err != nil {
		return created, err
	}
	return created, nil
}

// Update submits an edit, clears the selection, and re-syncs.
func (l *List[T, D]) Update(ctx context.Context, id string, draft D) (*T, error) {
	if err := l.beginMutation(); err != nil {
		return nil, err
	}
	defer l.endMutation()

	updated, err := l.ops.Update(ctx, id, draft)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.form = FormState{}
	l.selection = make(map[string]struct{})
	l.mu.Unlock()

	if err := l.refresh(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

// Delete removes a single record and re-syncs.
func (l *List[T, D]) Delete(ctx context.Context, id string) error {
	if err := l.beginMutation(); err != nil {
		return err
	}
	defer l.endMutation()

	if err := l.ops.Remove(ctx, id); err != nil {
		return err
	}
	return l.refresh(ctx)
}

// beginMutation rejects re-entrant mutations: double submission under a
// slow network must not fire duplicate fan-outs.
func (l *List[T, D]) beginMutation() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.busy {
		return appErrors.Clone(appErrors.ErrBusy, "")
	}
	l.busy = true
	return nil
}

func (l *List[T, D]) endMutation() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.busy = false
}

func (l *List[T, D]) indexLocked(id string) (int, bool) {
	for i, item := range l.items {
		if item.EntityID() == id {
			return i, true
		}
	}
	return 0, false
}

func ids[T models.Entity](items []T) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.EntityID())
	}
	return out
}
