package pool

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrPoolClosed is returned by Acquire after Close has been called.
	// It is terminal for the pool handle; retrying cannot succeed.
	ErrPoolClosed = errors.New("pool: closed")

	// ErrPoolExhausted is the sentinel matched by errors.Is when Acquire
	// gives up at its deadline. The concrete error is an *ExhaustedError
	// carrying diagnostics. Callers should treat it as "temporarily
	// saturated" and retry with backoff or shed load upstream.
	ErrPoolExhausted = errors.New("pool: exhausted")
)

// ExhaustedError reports that no resource became available before the
// acquire deadline. The counts are a consistent snapshot of the pool taken
// at the moment the deadline passed.
type ExhaustedError struct {
	// Wait is how long the caller waited before giving up.
	Wait time.Duration
	// Idle, CheckedOut and Total describe the pool at failure time.
	Idle       int
	CheckedOut int
	Total      int
	// MaxSize is the configured bound, for log readability.
	MaxSize int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("pool: exhausted after %s (idle=%d checked_out=%d total=%d max=%d)",
		e.Wait, e.Idle, e.CheckedOut, e.Total, e.MaxSize)
}

// Is makes errors.Is(err, ErrPoolExhausted) match.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrPoolExhausted
}
