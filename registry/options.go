package registry

import "context"

const DefaultConcurrency = 4

// Loader fetches the value for an identifier that the registry does
// not hold yet.
type Loader[V any] func(ctx context.Context, id string) (V, error)

// Options configures a Registry. Zero values are safe;
// defaults are applied in New():
//   - nil Metrics      => NoopMetrics
//   - Concurrency <= 0 => DefaultConcurrency
type Options[V any] struct {
	// Loader fetches values for Use, Restore and Reload.
	// Without one, those return ErrNoLoader when a value is missing.
	Loader Loader[V]

	Metrics Metrics

	// Concurrency limits the loads in flight during Restore and Reload.
	Concurrency int
}
