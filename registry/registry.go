// Package registry keeps values keyed by string identifiers, ordered
// the way a freqlist.List orders them: the pinned identifier first,
// then the rest by how often they were used.
//
// A Registry is safe for concurrent use. Values missing from the
// registry are fetched through Options.Loader outside the lock, and
// concurrent loads of one identifier are coalesced.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.lepak.sg/stacklist/freqlist"
	"go.lepak.sg/stacklist/seq"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var (
	ErrUnknownID = errors.New("unknown id")
	// ErrNoLoader is returned when a value must be loaded but
	// Options.Loader is nil.
	ErrNoLoader = errors.New("no loader provided")
)

// Entry is one identifier with its value and ordering information.
type Entry[V any] struct {
	ID     string
	Value  V
	Count  int
	Manual bool
}

type Registry[V any] struct {
	mu      sync.Mutex
	values  map[string]V
	order   *freqlist.List[string]
	changed bool

	opt Options[V]
	sf  singleflight.Group
}

// New creates an empty Registry ready for use.
func New[V any](opt Options[V]) *Registry[V] {
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Concurrency <= 0 {
		opt.Concurrency = DefaultConcurrency
	}

	return &Registry[V]{
		values: make(map[string]V),
		order:  freqlist.New[string](),
		opt:    opt,
	}
}

// touch counts one use of id. r.mu must be held and id must have a value.
func (r *Registry[V]) touch(id string, toManual bool) {
	var moved bool
	if toManual {
		moved = r.order.AddToManual(id)
	} else {
		moved = r.order.AddToAutomatic(id)
	}
	if moved {
		r.opt.Metrics.Reorder()
	}
	r.changed = true
	r.opt.Metrics.Size(len(r.values))
}

// Add counts one use of id and records v as its value, replacing any
// previous value. If toManual is true, id takes the pinned slot.
func (r *Registry[V]) Add(id string, v V, toManual bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[id] = v
	r.touch(id, toManual)
}

// Use is like Add, but takes the value the registry already holds for id,
// or fetches it through the Loader. The use is only counted if a value
// is available.
func (r *Registry[V]) Use(ctx context.Context, id string, toManual bool) (V, error) {
	r.mu.Lock()
	if v, ok := r.values[id]; ok {
		r.opt.Metrics.Hit()
		r.touch(id, toManual)
		r.mu.Unlock()
		return v, nil
	}
	r.opt.Metrics.Miss()
	r.mu.Unlock()

	v, err := r.load(ctx, id)
	if err != nil {
		return v, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.values[id]; ok {
		// added while we were loading
		v = cur
	} else {
		r.values[id] = v
	}
	r.touch(id, toManual)
	return v, nil
}

func (r *Registry[V]) load(ctx context.Context, id string) (V, error) {
	var zero V
	if r.opt.Loader == nil {
		return zero, ErrNoLoader
	}

	ch := r.sf.DoChan(id, func() (any, error) {
		v, err := r.opt.Loader(ctx, id)
		return v, err
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, fmt.Errorf("failed to load %s: %w", id, res.Err)
		}
		v, _ := res.Val.(V)
		return v, nil
	}
}

// Get reads the value for id without counting a use.
func (r *Registry[V]) Get(id string) (V, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.values[id]
	if ok {
		r.opt.Metrics.Hit()
	} else {
		r.opt.Metrics.Miss()
	}
	return v, ok
}

// At returns the value at position pos of the logical order.
func (r *Registry[V]) At(pos int) (V, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.order.Get(pos)
	if err != nil {
		var zero V
		return zero, err
	}
	return r.values[id], nil
}

// Default returns the value at position 0: the pinned one if there is
// one, else the most used.
func (r *Registry[V]) Default() (V, bool) {
	v, err := r.At(0)
	return v, err == nil
}

func (r *Registry[_]) Contains(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.values[id]
	return ok
}

func (r *Registry[_]) IsManual(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.order.ContainsInManual(id)
}

func (r *Registry[_]) Len() int {
	r.mu.Lock()
	l := r.order.Len()
	r.mu.Unlock()
	return l
}

// IDs returns the identifiers in logical order.
func (r *Registry[_]) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.order.ToSlice()
}

// Entries returns every entry in logical order.
func (r *Registry[V]) Entries() []Entry[V] {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.order.Export()
	out := make([]Entry[V], 0, s.Len())
	if s.Manual != nil {
		out = append(out, Entry[V]{
			ID:     s.Manual.Element,
			Value:  r.values[s.Manual.Element],
			Count:  s.Manual.Count,
			Manual: true,
		})
	}
	for _, rec := range s.Automatic {
		out = append(out, Entry[V]{
			ID:    rec.Element,
			Value: r.values[rec.Element],
			Count: rec.Count,
		})
	}
	return out
}

// SetManual pins or unpins id without counting a use. Pinning an
// already pinned id, or unpinning one that is not pinned, does nothing.
func (r *Registry[_]) SetManual(id string, manual bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.values[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownID, id)
	}

	pinned := r.order.ContainsInManual(id)
	switch {
	case manual && !pinned:
		if err := r.order.RelocateAutomaticToManual(id); err != nil {
			return err
		}
	case !manual && pinned:
		if err := r.order.RelocateManualToAutomatic(); err != nil {
			return err
		}
	default:
		return nil
	}

	r.changed = true
	r.opt.Metrics.Reorder()
	return nil
}

// Remove forgets id and its value. It reports whether id was present.
func (r *Registry[_]) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.values[id]; !ok {
		return false
	}
	delete(r.values, id)
	r.order.Remove(id)
	r.changed = true
	r.opt.Metrics.Size(len(r.values))
	return true
}

// Changed reports whether the order changed since the last MarkSaved,
// Restore or New.
func (r *Registry[_]) Changed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.changed
}

func (r *Registry[_]) MarkSaved() {
	r.mu.Lock()
	r.changed = false
	r.mu.Unlock()
}

// Snapshot exports the current order.
func (r *Registry[_]) Snapshot() freqlist.Snapshot[string] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.order.Export()
}

// Restore replaces the contents of the registry with the order recorded
// in snap. Values the registry does not hold yet are loaded concurrently.
// On error the registry is left unchanged. A restored registry is not
// Changed.
func (r *Registry[V]) Restore(ctx context.Context, snap freqlist.Snapshot[string]) error {
	order, err := freqlist.FromSnapshot(snap)
	if err != nil {
		return fmt.Errorf("failed to restore: %w", err)
	}
	return r.swap(ctx, order, false)
}

// Reload replaces the contents of the registry with the identifiers of
// ids, counting each occurrence as one use. Nothing is pinned afterwards.
// On error the registry is left unchanged.
func (r *Registry[V]) Reload(ctx context.Context, ids seq.Iterator[string]) error {
	order, err := freqlist.Import(ids)
	if err != nil {
		return fmt.Errorf("failed to reload: %w", err)
	}
	return r.swap(ctx, order, true)
}

func (r *Registry[V]) swap(ctx context.Context, order *freqlist.List[string], changed bool) error {
	values, err := r.loadAll(ctx, order.ToSlice())
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = values
	r.order = order
	r.changed = changed
	r.opt.Metrics.Reorder()
	r.opt.Metrics.Size(len(values))
	return nil
}

// loadAll returns values for ids, reusing the ones already held.
func (r *Registry[V]) loadAll(ctx context.Context, ids []string) (map[string]V, error) {
	values := make(map[string]V, len(ids))
	var missing []string

	r.mu.Lock()
	for _, id := range ids {
		if v, ok := r.values[id]; ok {
			values[id] = v
		} else {
			missing = append(missing, id)
		}
	}
	r.mu.Unlock()

	if len(missing) == 0 {
		return values, nil
	}
	if r.opt.Loader == nil {
		return nil, ErrNoLoader
	}

	loaded := make([]V, len(missing))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opt.Concurrency)
	for i, id := range missing {
		i, id := i, id
		g.Go(func() error {
			v, err := r.load(gctx, id)
			if err != nil {
				return err
			}
			loaded[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, id := range missing {
		values[id] = loaded[i]
	}
	return values, nil
}
