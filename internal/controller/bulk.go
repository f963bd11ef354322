package controller

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	appErrors "github.com/amnotwallas/estudiantes-frontend/pkg/errors"
)

// BulkResult records the per-id outcome of a fan-out mutation. The batch is
// best-effort: requests that succeeded before another failed are not rolled
// back, so callers get attribution instead of a single boolean.
type BulkResult map[string]error

// Failed returns the ids whose request failed, in stable order.
func (r BulkResult) Failed() []string {
	out := make([]string, 0)
	for id, err := range r {
		if err != nil {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Succeeded returns the ids whose request completed, in stable order.
func (r BulkResult) Succeeded() []string {
	out := make([]string, 0)
	for id, err := range r {
		if err == nil {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// BulkDelete fires one delete per id concurrently and waits for all to
// settle. An empty id set is a no-op: zero requests are issued. After the
// fan-out the collection is re-synced, stale selected ids are pruned, and
// the selection is cleared when every delete succeeded.
func (l *List[T, D]) BulkDelete(ctx context.Context, ids []string) (BulkResult, error) {
	if len(ids) == 0 {
		return BulkResult{}, nil
	}
	if err := l.beginMutation(); err != nil {
		return nil, err
	}
	defer l.endMutation()

	results := l.fanOut(ctx, ids, func(ctx context.Context, id string) error {
		return l.ops.Remove(ctx, id)
	})

	if len(results.Failed()) == 0 {
		l.ClearSelection()
	}
	if err := l.refresh(ctx); err != nil {
		return results, err
	}
	return results, results.batchError("eliminar")
}

// BulkUpdate applies one patch per selected id with the same fan-out and
// partial-failure semantics as BulkDelete.
func (l *List[T, D]) BulkUpdate(ctx context.Context, ids []string, fields map[string]interface{}) (BulkResult, error) {
	if len(ids) == 0 {
		return BulkResult{}, nil
	}
	if l.ops.Patch == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "bulk edit is not available for this screen")
	}
	if err := l.beginMutation(); err != nil {
		return nil, err
	}
	defer l.endMutation()

	results := l.fanOut(ctx, ids, func(ctx context.Context, id string) error {
		return l.ops.Patch(ctx, id, fields)
	})

	if err := l.refresh(ctx); err != nil {
		return results, err
	}
	return results, results.batchError("actualizar")
}

// fanOut issues every request before awaiting any result, then waits for
// all to settle. There is no ordering guarantee across the requests.
func (l *List[T, D]) fanOut(ctx context.Context, ids []string, op func(context.Context, string) error) BulkResult {
	results := make(BulkResult, len(ids))
	var mu sync.Mutex

	var g errgroup.Group
	for _, id := range ids {
		id := id
		g.Go(func() error {
			err := op(ctx, id)
			mu.Lock()
			results[id] = err
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (r BulkResult) batchError(verb string) error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	return appErrors.Clone(appErrors.ErrRequest,
		fmt.Sprintf("no se pudieron %s %d de %d registros", verb, len(failed), len(r)))
}
