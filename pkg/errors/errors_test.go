package errors_test

import (
	stderrors "errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/respool/pkg/errors"
)

func TestNewCapturesTypeAndStack(t *testing.T) {
	err := errors.New(errors.ErrorTypeConfig, "max_size must be at least 1")

	assert.Equal(t, "config: max_size must be at least 1", err.Error())
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
	assert.NotEmpty(t, err.Stack)
}

func TestWrapPreservesCause(t *testing.T) {
	err := errors.Wrap(io.ErrUnexpectedEOF, errors.ErrorTypeConnection, "handshake failed")

	require.NotNil(t, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "handshake failed")
	assert.Contains(t, err.Error(), io.ErrUnexpectedEOF.Error())

	// Wrapping nil stays nil.
	assert.Nil(t, errors.Wrap(nil, errors.ErrorTypeInternal, "unused"))
}

func TestWrapKeepsOriginalStack(t *testing.T) {
	inner := errors.New(errors.ErrorTypeValidation, "probe failed")
	outer := errors.Wrap(inner, errors.ErrorTypeConnection, "acquire")

	assert.Equal(t, inner.Stack, outer.Stack)
	assert.True(t, errors.IsType(outer, errors.ErrorTypeConnection))

	var typed *errors.Error
	require.True(t, stderrors.As(outer.Unwrap(), &typed))
	assert.Equal(t, errors.ErrorTypeValidation, typed.Type)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"timeout", errors.New(errors.ErrorTypeTimeout, "deadline passed"), true},
		{"connection", errors.New(errors.ErrorTypeConnection, "refused"), true},
		{"config", errors.New(errors.ErrorTypeConfig, "bad size"), false},
		{"closed", errors.New(errors.ErrorTypeClosed, "pool closed"), false},
		{"plain error", io.EOF, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.IsRetryable(tt.err))
		})
	}
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrorTypeConfig, "max_size cannot be less than min_size").
		WithDetail("min_size", 8).
		WithDetail("max_size", 4)

	assert.Equal(t, 8, err.Details["min_size"])
	assert.Equal(t, 4, err.Details["max_size"])
}
