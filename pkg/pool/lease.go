package pool

import "time"

// wrapper owns exactly one Resource plus pool-private bookkeeping. It
// persists across borrows; only the engine ever touches it, and only under
// the pool mutex.
type wrapper[T Resource] struct {
	res       T
	createdAt time.Time
	lastUsed  time.Time
	useCount  int64

	// gen increments on every check-out. A lease carries the generation
	// it was issued under, so a stale handle from an earlier borrow of
	// the same resource can be told apart from the current one.
	gen uint64
}

// checkOut marks the wrapper as lent. Caller must hold the pool mutex.
func (w *wrapper[T]) checkOut(now time.Time) {
	w.useCount++
	w.gen++
	w.lastUsed = now
}

// Lease is the borrow token returned by Acquire and taken back by Release.
// It is a generation-tagged handle: the lease pointer plus the generation
// it was issued under map a borrowed resource back to its metadata, so
// resources themselves never need to be comparable or pool-aware, and a
// handle kept past its Release is rejected instead of silently releasing a
// later borrower's resource.
//
// A caller holds a borrowed reference only: it may use the resource between
// Acquire and Release, must return the lease exactly once, and must never
// call Dispose itself.
type Lease[T Resource] struct {
	w   *wrapper[T]
	gen uint64
}

// Resource returns the borrowed resource. Valid only between Acquire and
// the matching Release.
func (l *Lease[T]) Resource() T {
	return l.w.res
}

// Age reports how long ago the underlying resource was created.
func (l *Lease[T]) Age() time.Duration {
	return time.Since(l.w.createdAt)
}

// UseCount reports how many times the resource has been lent out,
// including the current borrow.
func (l *Lease[T]) UseCount() int64 {
	return l.w.useCount
}

// LastUsed reports when the resource was last lent out or returned.
func (l *Lease[T]) LastUsed() time.Time {
	return l.w.lastUsed
}
