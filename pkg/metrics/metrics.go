// Package metrics exports resource pool statistics as Prometheus metrics.
//
// The collector reads one consistent Stats snapshot per scrape and emits
// const metrics from it, so exported counters and gauges can never drift
// from the pool's authoritative state.
//
// Example:
//
//	p, _ := pool.New(factory, cfg, logger)
//	c, err := metrics.NewCollector("orders_db", p, prometheus.DefaultRegisterer)
//	if err != nil {
//	    return err
//	}
//	defer c.Unregister()
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ajitpratap0/respool/pkg/pool"
)

const namespace = "respool"

// StatsSource produces pool statistics snapshots. *pool.Pool[T] satisfies
// it for any resource type.
type StatsSource interface {
	Stats() pool.Stats
}

// Collector implements prometheus.Collector over a StatsSource.
type Collector struct {
	src StatsSource
	reg prometheus.Registerer

	created            *prometheus.Desc
	destroyed          *prometheus.Desc
	acquisitions       *prometheus.Desc
	releases           *prometheus.Desc
	validationFailures *prometheus.Desc
	timeouts           *prometheus.Desc

	idle       *prometheus.Desc
	checkedOut *prometheus.Desc
	total      *prometheus.Desc
	reuseRate  *prometheus.Desc
}

// NewCollector builds a collector for one pool and registers it against
// reg. The name parameter labels every metric, so multiple pools can
// register against one registry. A nil reg skips registration, leaving it
// to the caller.
func NewCollector(name string, src StatsSource, reg prometheus.Registerer) (*Collector, error) {
	labels := prometheus.Labels{"pool": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", metric),
			help, nil, labels)
	}
	c := &Collector{
		src:                src,
		created:            desc("created_total", "Total resources created"),
		destroyed:          desc("destroyed_total", "Total resources destroyed"),
		acquisitions:       desc("acquisitions_total", "Total successful acquisitions"),
		releases:           desc("releases_total", "Total releases back to the idle queue"),
		validationFailures: desc("validation_failures_total", "Total resources discarded by validation"),
		timeouts:           desc("timeouts_total", "Total acquisitions that hit their deadline"),
		idle:               desc("idle_resources", "Resources currently idle"),
		checkedOut:         desc("checked_out_resources", "Resources currently lent to callers"),
		total:              desc("total_resources", "Resources currently owned by the pool"),
		reuseRate:          desc("reuse_rate_percent", "Share of acquisitions served by recycled resources"),
	}
	if reg != nil {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
		c.reg = reg
	}
	return c, nil
}

// Unregister removes the collector from the registry it was registered
// against, typically when its pool is closed. It reports whether anything
// was unregistered; a collector built with a nil registry reports false.
func (c *Collector) Unregister() bool {
	if c.reg == nil {
		return false
	}
	return c.reg.Unregister(c)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.created
	ch <- c.destroyed
	ch <- c.acquisitions
	ch <- c.releases
	ch <- c.validationFailures
	ch <- c.timeouts
	ch <- c.idle
	ch <- c.checkedOut
	ch <- c.total
	ch <- c.reuseRate
}

// Collect implements prometheus.Collector. It takes a single snapshot so
// all metrics of one scrape describe the same instant.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()

	counter := func(d *prometheus.Desc, v int64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v))
	}
	gauge := func(d *prometheus.Desc, v float64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v)
	}

	counter(c.created, s.Created)
	counter(c.destroyed, s.Destroyed)
	counter(c.acquisitions, s.Acquisitions)
	counter(c.releases, s.Releases)
	counter(c.validationFailures, s.ValidationFailures)
	counter(c.timeouts, s.Timeouts)

	gauge(c.idle, float64(s.Idle))
	gauge(c.checkedOut, float64(s.CheckedOut))
	gauge(c.total, float64(s.Total))
	gauge(c.reuseRate, s.ReuseRate)
}
