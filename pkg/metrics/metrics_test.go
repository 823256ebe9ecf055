package metrics_test

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ajitpratap0/respool/pkg/metrics"
	"github.com/ajitpratap0/respool/pkg/pool"
)

// staticSource serves a fixed snapshot.
type staticSource pool.Stats

func (s staticSource) Stats() pool.Stats { return pool.Stats(s) }

func TestCollectorExposition(t *testing.T) {
	src := staticSource{
		Created:      7,
		Destroyed:    2,
		Acquisitions: 42,
		Releases:     41,
		Timeouts:     1,
		Idle:         3,
		CheckedOut:   2,
		Total:        5,
	}
	c, err := metrics.NewCollector("orders", src, nil)
	require.NoError(t, err)

	assert.Equal(t, 10, testutil.CollectAndCount(c))

	expected := `
		# HELP respool_acquisitions_total Total successful acquisitions
		# TYPE respool_acquisitions_total counter
		respool_acquisitions_total{pool="orders"} 42
		# HELP respool_idle_resources Resources currently idle
		# TYPE respool_idle_resources gauge
		respool_idle_resources{pool="orders"} 3
		# HELP respool_checked_out_resources Resources currently lent to callers
		# TYPE respool_checked_out_resources gauge
		respool_checked_out_resources{pool="orders"} 2
	`
	err = testutil.CollectAndCompare(c, strings.NewReader(expected),
		"respool_acquisitions_total",
		"respool_idle_resources",
		"respool_checked_out_resources")
	require.NoError(t, err)
}

func TestCollectorRegistersAndUnregisters(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()

	c, err := metrics.NewCollector("orders", staticSource{}, reg)
	require.NoError(t, err)

	// Two pools with distinct labels coexist on one registry.
	other, err := metrics.NewCollector("sessions", staticSource{}, reg)
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	// The same label set cannot register twice.
	_, err = metrics.NewCollector("orders", staticSource{}, reg)
	assert.Error(t, err)

	// After Unregister the name is free again.
	assert.True(t, c.Unregister())
	_, err = metrics.NewCollector("orders", staticSource{}, reg)
	assert.NoError(t, err)

	assert.True(t, other.Unregister())

	// A caller-registers collector has nothing to unregister.
	free, err := metrics.NewCollector("free", staticSource{}, nil)
	require.NoError(t, err)
	assert.False(t, free.Unregister())
}

// noopResource is the minimal Resource for wiring a real pool through the
// collector.
type noopResource struct{}

func (noopResource) Reset() error { return nil }
func (noopResource) Validate() error { return nil }
func (noopResource) Dispose() error { return nil }

func TestCollectorTracksLivePool(t *testing.T) {
	factory := func() (noopResource, error) { return noopResource{}, nil }
	p, err := pool.New(factory, pool.Config{MinSize: 2, MaxSize: 4}, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer p.Close()

	l, err := p.Acquire(context.Background())
	require.NoError(t, err)

	c, err := metrics.NewCollector("live", p, nil)
	require.NoError(t, err)

	expected := `
		# HELP respool_idle_resources Resources currently idle
		# TYPE respool_idle_resources gauge
		respool_idle_resources{pool="live"} 1
		# HELP respool_checked_out_resources Resources currently lent to callers
		# TYPE respool_checked_out_resources gauge
		respool_checked_out_resources{pool="live"} 1
		# HELP respool_total_resources Resources currently owned by the pool
		# TYPE respool_total_resources gauge
		respool_total_resources{pool="live"} 2
	`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"respool_idle_resources",
		"respool_checked_out_resources",
		"respool_total_resources"))

	p.Release(l)
}
