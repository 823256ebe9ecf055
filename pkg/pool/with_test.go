package pool_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/respool/pkg/pool"
)

func TestWithReleasesOnSuccess(t *testing.T) {
	f := newFakeFactory()
	p := newTestPool(t, f, pool.Config{MinSize: 1, MaxSize: 1})

	err := p.With(context.Background(), func(r *fakeResource) error {
		assert.Same(t, f.resource(0), r)
		return nil
	})
	require.NoError(t, err)

	s := p.Stats()
	assert.Equal(t, 1, s.Idle)
	assert.Equal(t, 0, s.CheckedOut)
	assert.Equal(t, int64(1), s.Releases)
}

func TestWithReleasesOnError(t *testing.T) {
	f := newFakeFactory()
	p := newTestPool(t, f, pool.Config{MinSize: 1, MaxSize: 1})

	queryErr := errors.New("query failed")
	err := p.With(context.Background(), func(r *fakeResource) error {
		return queryErr
	})
	require.ErrorIs(t, err, queryErr)

	// The caller's failure must not strand the resource.
	s := p.Stats()
	assert.Equal(t, 1, s.Idle)
	assert.Equal(t, 0, s.CheckedOut)
}

func TestWithReleasesOnPanic(t *testing.T) {
	f := newFakeFactory()
	p := newTestPool(t, f, pool.Config{MinSize: 1, MaxSize: 1})

	func() {
		defer func() {
			require.NotNil(t, recover())
		}()
		_ = p.With(context.Background(), func(r *fakeResource) error {
			panic("caller bug")
		})
	}()

	s := p.Stats()
	assert.Equal(t, 1, s.Idle)
	assert.Equal(t, 0, s.CheckedOut)
}

func TestWithPropagatesAcquireFailure(t *testing.T) {
	f := newFakeFactory()
	p := newTestPool(t, f, pool.Config{MaxSize: 1})

	p.Close()

	called := false
	err := p.With(context.Background(), func(r *fakeResource) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, pool.ErrPoolClosed)
	assert.False(t, called)
}
