package pool

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ajitpratap0/respool/pkg/errors"
	"github.com/ajitpratap0/respool/pkg/logger"
)

// waitQuantum caps each blocking wait inside Acquire so the loop stays
// responsive to deadline expiry and pool closure even when no release
// arrives to wake it.
const waitQuantum = time.Second

// Pool is a bounded, thread-safe pool of resources of type T. It owns every
// resource it creates for the whole pool lifetime; callers only ever hold
// borrowed references through leases.
//
// All mutable state (idle queue, checked-out set, closed flag) is guarded by
// a single mutex. The idle queue is FIFO: the front holds the oldest-created
// resource, which is served first so lifetime expiry stays effective and use
// spreads evenly.
type Pool[T Resource] struct {
	cfg     Config
	factory Factory[T]
	logger  *zap.Logger

	mu         sync.Mutex
	idle       []*wrapper[T]
	checkedOut map[*wrapper[T]]uint64
	closed     bool

	// released carries at most one wake-up for blocked acquirers. Waiters
	// not reached by a signal wake at the quantum and re-check.
	released chan struct{}

	stats struct {
		created            int64
		destroyed          int64
		acquisitions       int64
		releases           int64
		validationFailures int64
		timeouts           int64
	}
}

// New creates a pool and synchronously pre-fills it with cfg.MinSize
// resources. If any creation fails during pre-fill, everything created so
// far is disposed and the error is returned: no partial pool is left
// running. A nil log falls back to the package-global logger.
func New[T Resource](factory Factory[T], cfg Config, log *zap.Logger) (*Pool[T], error) {
	if factory == nil {
		return nil, errors.New(errors.ErrorTypeConfig, "factory is required")
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Get()
	}

	p := &Pool[T]{
		cfg:        cfg,
		factory:    factory,
		logger:     log.With(zap.String("component", "resource_pool")),
		checkedOut: make(map[*wrapper[T]]uint64),
		released:   make(chan struct{}, 1),
	}

	// The pool is not shared yet, so no lock is needed here.
	for i := 0; i < cfg.MinSize; i++ {
		w, err := p.create()
		if err != nil {
			for _, created := range p.idle {
				p.dispose(created, "construction aborted")
			}
			return nil, errors.Wrap(err, errors.ErrorTypeConnection, "creating initial resources")
		}
		p.idle = append(p.idle, w)
	}

	p.logger.Debug("pool created",
		zap.Int("min_size", cfg.MinSize),
		zap.Int("max_size", cfg.MaxSize),
		zap.Duration("acquire_timeout", cfg.AcquireTimeout),
		zap.Duration("max_lifetime", cfg.MaxLifetime))

	return p, nil
}

// Acquire borrows a resource, blocking until one is available or the
// deadline passes. The deadline is the earlier of now+cfg.AcquireTimeout
// and the context's own deadline. On deadline passage Acquire returns an
// *ExhaustedError (matching ErrPoolExhausted); a canceled context returns
// the context's error; a closed pool returns ErrPoolClosed.
//
// The returned lease must be handed back to Release exactly once. Prefer
// With, which guarantees that on every exit path.
func (p *Pool[T]) Acquire(ctx context.Context) (*Lease[T], error) {
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	deadline := start.Add(p.cfg.AcquireTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	for {
		now := time.Now()
		if now.After(deadline) {
			return nil, p.exhausted(start)
		}

		l, retry, err := p.tryAcquire(now)
		if err != nil {
			return nil, err
		}
		if l != nil {
			return l, nil
		}
		if retry {
			// The attempt consumed a resource (expired or failed
			// validation). Re-attempt immediately; the lock was
			// dropped, so releases, stats and closure interleave.
			continue
		}

		// Nothing idle and no room to create: wait for a release, but
		// never longer than the quantum, so closure and the deadline
		// are observed promptly.
		wait := time.Until(deadline)
		if wait > waitQuantum {
			wait = waitQuantum
		}
		if wait <= 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			if stderrors.Is(ctx.Err(), context.Canceled) {
				return nil, ctx.Err()
			}
			// Context deadline: surfaced as exhaustion at the top of
			// the loop.
		case <-p.released:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// tryAcquire performs at most one obtain attempt per lock acquisition: pop
// the front idle wrapper, or create one under the size bound, then vet it.
// The factory runs inside the critical section so that size-check-and-create
// is atomic: two concurrent acquirers can never both observe room for one
// more resource.
//
// retry reports that the attempt disposed the obtained resource (lifetime
// or validation grounds) and the caller should re-attempt right away;
// (nil, false, nil) means nothing is available and the caller should block.
// Holding the lock for a single attempt only keeps Release, Stats and Close
// live while an acquirer churns through bad resources.
func (p *Pool[T]) tryAcquire(now time.Time) (*Lease[T], bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, false, ErrPoolClosed
	}

	var (
		w     *wrapper[T]
		fresh bool
	)
	switch {
	case len(p.idle) > 0:
		w = p.idle[0]
		p.idle = p.idle[1:]
	case len(p.checkedOut) < p.cfg.MaxSize:
		created, err := p.create()
		if err != nil {
			// A transient factory failure must not abort the
			// acquirer: another resource may yet be released.
			p.logger.Warn("resource creation failed, waiting for a release",
				zap.Error(err))
			return nil, false, nil
		}
		w = created
		fresh = true
	default:
		return nil, false, nil
	}

	if !fresh && p.cfg.MaxLifetime > 0 && now.Sub(w.createdAt) > p.cfg.MaxLifetime {
		p.dispose(w, "max lifetime exceeded")
		return nil, true, nil
	}
	if p.cfg.ValidateOnAcquire {
		if verr := w.res.Validate(); verr != nil {
			atomic.AddInt64(&p.stats.validationFailures, 1)
			p.logger.Warn("resource failed validation, disposing",
				zap.Bool("fresh", fresh),
				zap.Error(verr))
			p.dispose(w, "validation failed")
			return nil, true, nil
		}
	}

	w.checkOut(now)
	p.checkedOut[w] = w.gen
	atomic.AddInt64(&p.stats.acquisitions, 1)

	p.logger.Debug("resource acquired",
		zap.Int64("use_count", w.useCount),
		zap.Duration("age", now.Sub(w.createdAt)),
		zap.Bool("fresh", fresh))

	return &Lease[T]{w: w, gen: w.gen}, false, nil
}

// Release returns a borrowed resource to the pool. On a closed pool the
// resource is disposed immediately. A lease the pool does not currently
// hold checked out — foreign, already released, or a stale handle from an
// earlier borrow of a since-re-lent resource — is logged and ignored:
// Release runs on cleanup paths where an error return would mask the
// caller's original failure.
func (p *Pool[T]) Release(l *Lease[T]) {
	if l == nil || l.w == nil {
		p.logger.Warn("release called with nil lease; ignoring")
		return
	}
	w := l.w

	p.mu.Lock()
	gen, ok := p.checkedOut[w]
	if !ok || gen != l.gen {
		p.mu.Unlock()
		p.logger.Warn("release of a lease this pool does not hold; ignoring",
			zap.Int64("use_count", w.useCount),
			zap.Bool("stale_generation", ok))
		return
	}
	delete(p.checkedOut, w)

	if p.closed {
		// Closed pools never replenish the idle queue.
		p.dispose(w, "pool closed")
		p.mu.Unlock()
		return
	}

	if err := w.res.Reset(); err != nil {
		// A resource that cannot be cleanly reset must never be
		// recycled.
		p.logger.Warn("reset failed, disposing resource", zap.Error(err))
		p.dispose(w, "reset failed")
		p.mu.Unlock()
		p.signalReleased()
		return
	}

	w.lastUsed = time.Now()
	p.idle = append(p.idle, w)
	atomic.AddInt64(&p.stats.releases, 1)
	p.mu.Unlock()

	p.signalReleased()
}

// With acquires a resource, yields it to fn, and releases it on every exit
// path, including error returns and panics unwinding through fn. This is
// the sanctioned borrowing pattern; direct Acquire/Release pairs work but
// leak the resource if the caller panics between them.
func (p *Pool[T]) With(ctx context.Context, fn func(T) error) error {
	l, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer p.Release(l)
	return fn(l.Resource())
}

// Close marks the pool closed (irreversibly), disposes every idle resource,
// and returns how many were disposed immediately alongside how many are
// still checked out. Outstanding resources are disposed lazily, one by one,
// as each is released. Acquire calls made after Close fail fast with
// ErrPoolClosed.
func (p *Pool[T]) Close() (disposed, outstanding int) {
	p.mu.Lock()
	if p.closed {
		outstanding = len(p.checkedOut)
		p.mu.Unlock()
		return 0, outstanding
	}
	p.closed = true

	drained := p.idle
	p.idle = nil
	for _, w := range drained {
		p.dispose(w, "pool closed")
	}
	disposed = len(drained)
	outstanding = len(p.checkedOut)
	p.mu.Unlock()

	// Wake one waiter; the rest notice closure within the quantum.
	p.signalReleased()

	p.logger.Info("pool closed",
		zap.Int("disposed", disposed),
		zap.Int("outstanding", outstanding))
	return disposed, outstanding
}

// IsClosed reports whether Close has been called.
func (p *Pool[T]) IsClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Stats returns a consistent snapshot of pool activity. Gauges are read
// from the live collections under the mutex; counters are atomic loads.
func (p *Pool[T]) Stats() Stats {
	p.mu.Lock()
	idle := len(p.idle)
	out := len(p.checkedOut)
	p.mu.Unlock()

	s := Stats{
		Created:            atomic.LoadInt64(&p.stats.created),
		Destroyed:          atomic.LoadInt64(&p.stats.destroyed),
		Acquisitions:       atomic.LoadInt64(&p.stats.acquisitions),
		Releases:           atomic.LoadInt64(&p.stats.releases),
		ValidationFailures: atomic.LoadInt64(&p.stats.validationFailures),
		Timeouts:           atomic.LoadInt64(&p.stats.timeouts),
		Idle:               idle,
		CheckedOut:         out,
		Total:              idle + out,
	}
	if s.Acquisitions > 0 {
		reused := s.Acquisitions - s.Created
		if reused < 0 {
			reused = 0
		}
		s.ReuseRate = float64(reused) / float64(s.Acquisitions) * 100
	}
	return s
}

// create invokes the factory and wraps the result. The caller must hold
// p.mu, except during construction before the pool is shared.
func (p *Pool[T]) create() (*wrapper[T], error) {
	res, err := p.factory()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	atomic.AddInt64(&p.stats.created, 1)
	return &wrapper[T]{
		res:       res,
		createdAt: now,
		lastUsed:  now,
	}, nil
}

// dispose tears a wrapper's resource down. Dispose failures are logged, not
// propagated: disposal happens on cleanup paths with no recovery action.
// The caller must hold p.mu, except during construction.
func (p *Pool[T]) dispose(w *wrapper[T], reason string) {
	if err := w.res.Dispose(); err != nil {
		p.logger.Error("dispose failed",
			zap.String("reason", reason),
			zap.Error(err))
	}
	atomic.AddInt64(&p.stats.destroyed, 1)
	p.logger.Debug("resource disposed",
		zap.String("reason", reason),
		zap.Int64("use_count", w.useCount),
		zap.Duration("age", time.Since(w.createdAt)))
}

// exhausted records a timed-out acquisition and builds its diagnostic error.
func (p *Pool[T]) exhausted(start time.Time) error {
	atomic.AddInt64(&p.stats.timeouts, 1)
	s := p.Stats()
	err := &ExhaustedError{
		Wait:       time.Since(start),
		Idle:       s.Idle,
		CheckedOut: s.CheckedOut,
		Total:      s.Total,
		MaxSize:    p.cfg.MaxSize,
	}
	p.logger.Warn("acquire deadline passed",
		zap.Duration("wait", err.Wait),
		zap.String("stats", s.String()))
	return err
}

// signalReleased wakes at most one blocked acquirer without ever blocking
// the releaser.
func (p *Pool[T]) signalReleased() {
	select {
	case p.released <- struct{}{}:
	default:
	}
}
