// Package respool provides a generic, thread-safe, bounded resource pool
// for expensive, stateful resources such as database connections, network
// sessions, or embedded interpreters.
//
// The pool lends resources to callers and reclaims them for reuse,
// amortizing creation cost while enforcing size bounds, maximum lifetime,
// and health validation. Resource-level failures are absorbed and resolved
// by disposal and replacement; callers only ever see pool-level conditions
// (exhaustion at the acquire deadline, or a closed pool).
//
// # Key Packages
//
//	pkg/pool     - The pool engine: Resource contract, Config, Pool[T],
//	               leases, scoped borrowing, statistics
//	pkg/metrics  - Prometheus collector over pool statistics
//	pkg/errors   - Structured error types with stack capture
//	pkg/logger   - Structured logging built on zap
//
// # Quick Start
//
//	import (
//	    "context"
//	    "time"
//
//	    "github.com/ajitpratap0/respool/pkg/pool"
//	)
//
//	factory := func() (*Conn, error) { return dial(dsn) }
//
//	p, err := pool.New(factory, pool.Config{
//	    MinSize:           2,
//	    MaxSize:           10,
//	    AcquireTimeout:    5 * time.Second,
//	    MaxLifetime:       30 * time.Minute,
//	    ValidateOnAcquire: true,
//	}, nil)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	err = p.With(context.Background(), func(c *Conn) error {
//	    return c.Exec(query)
//	})
//
// See pkg/pool for the full contract and guarantees.
package respool
