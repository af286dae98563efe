// Package telemetry exposes process-wide counters for range reader activity.
// The counters aggregate across all reader instances in the process; per-read
// attribution comes from logging, not metrics.
package telemetry

import (
	"net/http"

	"github.com/VictoriaMetrics/metrics"

	"kafrange.dev/kafrange/reader"
)

var (
	recordsRead     = metrics.NewCounter("kafrange_records_read_total")
	fetchRetries    = metrics.NewCounter("kafrange_fetch_retries_total")
	emptyBatches    = metrics.NewCounter("kafrange_empty_batches_total")
	offsetGaps      = metrics.NewCounter("kafrange_offset_gaps_total")
	rangesExhausted = metrics.NewCounter("kafrange_ranges_exhausted_total")
)

// Hooks returns reader hooks that update the package counters.
func Hooks() reader.Hooks {
	return reader.Hooks{
		OnRetry:      func(int, error) { fetchRetries.Inc() },
		OnEmptyBatch: func() { emptyBatches.Inc() },
		OnOffsetGap:  func(int64, int64) { offsetGaps.Inc() },
		OnExhausted:  func() { rangesExhausted.Inc() },
	}
}

// RecordRead counts one record delivered to the caller.
func RecordRead() {
	recordsRead.Inc()
}

// Handler serves the counters in Prometheus text format.
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w, true)
	})
}
