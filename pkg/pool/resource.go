package pool

// Resource is the capability contract every pooled value must satisfy. The
// pool treats resources as opaque: it never inspects their internals, only
// invokes these three operations at well-defined lifecycle points.
//
// A Resource must not be used from multiple goroutines simultaneously, even
// within a single borrow; that constraint is the resource implementation's
// own responsibility.
type Resource interface {
	// Reset restores the resource to a state indistinguishable from a
	// freshly validated one, undoing any consumer-visible side effects of
	// the prior borrow (pending transactions rolled back, session-local
	// settings cleared). A non-nil error signals the resource cannot be
	// safely recycled and must be destroyed instead.
	Reset() error

	// Validate is a non-mutating health probe. A non-nil error means
	// "discard me"; the pool never surfaces it to callers. Validate runs
	// inside the pool's critical section, so it should be cheap.
	Validate() error

	// Dispose tears the resource down. It must be idempotent and
	// best-effort; the pool logs failures and never propagates them,
	// because disposal happens on cleanup paths with no recovery action.
	Dispose() error
}

// Factory creates a new resource instance. It is invoked synchronously
// during pool construction (MinSize pre-fill) and lazily during Acquire when
// the pool is below MaxSize. A failure during construction aborts the pool;
// a failure during Acquire is absorbed and the acquirer keeps waiting.
type Factory[T Resource] func() (T, error)
