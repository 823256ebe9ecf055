package pool

import (
	gojson "github.com/goccy/go-json"
)

// Stats is a point-in-time snapshot of pool activity. The lifetime counters
// only ever increase; the gauges (Idle, CheckedOut, Total) are recomputed
// from the live idle queue and checked-out set at snapshot time, so they can
// never drift from the pool's actual contents.
type Stats struct {
	// Lifetime counters.
	Created            int64 `json:"created"`
	Destroyed          int64 `json:"destroyed"`
	Acquisitions       int64 `json:"acquisitions"`
	Releases           int64 `json:"releases"`
	ValidationFailures int64 `json:"validation_failures"`
	Timeouts           int64 `json:"timeouts"`

	// Point-in-time gauges.
	Idle       int `json:"idle"`
	CheckedOut int `json:"checked_out"`
	Total      int `json:"total"`

	// ReuseRate is the fraction of acquisitions served without creating a
	// new resource, as a percentage.
	ReuseRate float64 `json:"reuse_rate"`
}

// String renders the snapshot as JSON for logs and diagnostics.
func (s Stats) String() string {
	b, err := gojson.Marshal(s)
	if err != nil {
		return "{}"
	}
	return string(b)
}
