package registry

// Metrics exposes registry-level observability hooks.
type Metrics interface {
	// Hit and Miss count lookups by identifier.
	Hit()
	Miss()
	// Reorder counts operations that changed the logical order.
	Reorder()
	Size(entries int)
}

// NoopMetrics is the default Metrics. It does nothing.
type NoopMetrics struct{}

func (NoopMetrics) Hit()     {}
func (NoopMetrics) Miss()    {}
func (NoopMetrics) Reorder() {}
func (NoopMetrics) Size(int) {}

var _ Metrics = NoopMetrics{}
