package pool

import (
	"time"

	"github.com/ajitpratap0/respool/pkg/errors"
)

// Default sizing and timing values applied by ApplyDefaults.
const (
	// DefaultMaxSize caps the pool when no maximum is configured.
	DefaultMaxSize = 10
	// DefaultAcquireTimeout bounds Acquire when neither the config nor the
	// caller's context supplies a deadline.
	DefaultAcquireTimeout = 30 * time.Second
	// DefaultMaxLifetime retires resources after this age.
	DefaultMaxLifetime = 30 * time.Minute
	// DefaultIdleTimeout is recorded for future use; the pool performs no
	// background idle eviction.
	DefaultIdleTimeout = 5 * time.Minute
)

// Config describes the sizing and timing policy of a pool. It is treated as
// an immutable value: the pool copies it at construction and never mutates
// it afterwards.
type Config struct {
	// MinSize is the number of resources created synchronously at
	// construction. Must be >= 0.
	MinSize int `yaml:"min_size" json:"min_size"`

	// MaxSize bounds the total number of resources, idle and lent
	// combined. Must be >= 1 and >= MinSize.
	MaxSize int `yaml:"max_size" json:"max_size"`

	// AcquireTimeout is the default deadline for Acquire when the caller's
	// context carries none.
	AcquireTimeout time.Duration `yaml:"acquire_timeout" json:"acquire_timeout"`

	// IdleTimeout is reserved for future background reaping. The pool
	// currently prunes only reactively, on acquire; this value is carried
	// but never acted on.
	IdleTimeout time.Duration `yaml:"idle_timeout" json:"idle_timeout"`

	// MaxLifetime retires a resource once its age exceeds this duration,
	// regardless of health. Zero means no lifetime limit.
	MaxLifetime time.Duration `yaml:"max_lifetime" json:"max_lifetime"`

	// ValidateOnAcquire runs Resource.Validate before every lend and
	// replaces resources that fail.
	ValidateOnAcquire bool `yaml:"validate_on_acquire" json:"validate_on_acquire"`
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() Config {
	return Config{
		MinSize:           0,
		MaxSize:           DefaultMaxSize,
		AcquireTimeout:    DefaultAcquireTimeout,
		IdleTimeout:       DefaultIdleTimeout,
		MaxLifetime:       DefaultMaxLifetime,
		ValidateOnAcquire: true,
	}
}

// ApplyDefaults fills zero-valued fields with defaults. MinSize and
// MaxLifetime are left alone: zero is meaningful for both.
func (c *Config) ApplyDefaults() {
	if c.MaxSize == 0 {
		c.MaxSize = DefaultMaxSize
	}
	if c.AcquireTimeout == 0 {
		c.AcquireTimeout = DefaultAcquireTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = DefaultIdleTimeout
	}
}

// Validate checks the configuration for correctness. The pool constructor
// calls this after ApplyDefaults, so a violation is always a construction
// failure, never a runtime one.
func (c Config) Validate() error {
	if c.MinSize < 0 {
		return errors.New(errors.ErrorTypeConfig, "min_size cannot be negative")
	}
	if c.MaxSize < 1 {
		return errors.New(errors.ErrorTypeConfig, "max_size must be at least 1")
	}
	if c.MaxSize < c.MinSize {
		return errors.New(errors.ErrorTypeConfig, "max_size cannot be less than min_size").
			WithDetail("min_size", c.MinSize).
			WithDetail("max_size", c.MaxSize)
	}
	if c.AcquireTimeout < 0 {
		return errors.New(errors.ErrorTypeConfig, "acquire_timeout cannot be negative")
	}
	if c.MaxLifetime < 0 {
		return errors.New(errors.ErrorTypeConfig, "max_lifetime cannot be negative")
	}
	return nil
}
