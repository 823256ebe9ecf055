// Package pool provides a generic, thread-safe, bounded resource pool.
// It amortizes the cost of creating expensive, stateful resources (database
// connections, network sessions, embedded interpreters) by lending them to
// callers and reclaiming them for reuse.
//
// The pool is generic over any type implementing the Resource contract:
// Reset restores a resource to a clean state before it re-enters the idle
// queue, Validate is a non-mutating health probe run before lending, and
// Dispose is the terminal teardown after which a resource is never reused.
//
// # Basic Usage
//
//	factory := func() (*Conn, error) { return dial(addr) }
//
//	p, err := pool.New[*Conn](factory, pool.Config{
//	    MinSize:           2,
//	    MaxSize:           10,
//	    AcquireTimeout:    5 * time.Second,
//	    MaxLifetime:       30 * time.Minute,
//	    ValidateOnAcquire: true,
//	}, logger)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	lease, err := p.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer p.Release(lease)
//	use(lease.Resource())
//
// The scoped form guarantees release on every exit path, including panics,
// and is the recommended way to borrow:
//
//	err := p.With(ctx, func(c *Conn) error {
//	    return c.Exec(query)
//	})
//
// # Guarantees
//
//   - The pool never holds more than MaxSize resources, idle and lent
//     combined, even under concurrent acquirers.
//   - A resource is lent to at most one caller at a time.
//   - Idle resources are served oldest-first so age-based expiry stays
//     effective and use spreads evenly.
//   - A resource older than MaxLifetime is never returned from Acquire.
//   - Resource-level failures (reset, validation, transient factory errors)
//     are absorbed internally; callers only ever see ErrPoolExhausted or
//     ErrPoolClosed.
package pool
