// Package metrics defines and registers all custom Prometheus metrics for the
// ISS spotter service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "iss_spotter"

// ── Pipeline metrics ─────────────────────────────────────────────────────────

// PipelineRunsTotal counts finished pipeline runs.
// Labels:
//   - mode: entry point ("self", "ip", "coordinates")
//   - state: terminal state ("have_passes" or "failed")
var PipelineRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pipeline_runs_total",
		Help:      "Total number of pipeline runs, by entry point and terminal state.",
	},
	[]string{"mode", "state"},
)

// PipelineDuration measures a run end to end.
var PipelineDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pipeline_duration_seconds",
		Help:      "Duration of a pipeline run from start to terminal state.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"mode"},
)

// ── Upstream metrics ─────────────────────────────────────────────────────────

// UpstreamRequestsTotal counts outbound calls to third-party services.
// Labels:
//   - step: "ip", "geo" or "passes"
//   - outcome: "ok", "network", "upstream_status", "upstream_logical", "malformed_response"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of upstream requests, by step and outcome.",
	},
	[]string{"step", "outcome"},
)

// UpstreamRequestDuration measures the latency of a single upstream call.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream requests, including body decoding.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"step"},
)

// ── Cache metrics ────────────────────────────────────────────────────────────

// GeoCacheTotal counts coordinate cache decisions.
// Label:
//   - result: "hit", "miss" or "error"
var GeoCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geo_cache_total",
		Help:      "Total number of coordinate cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// ── Recorder metrics ─────────────────────────────────────────────────────────

// RecorderQueueDepth tracks lookups waiting in each recorder worker channel.
var RecorderQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "recorder_queue_depth",
		Help:      "Current number of lookups pending in each recorder worker channel.",
	},
	[]string{"worker_id"},
)

// RecorderDroppedTotal counts lookups dropped because a worker channel was full.
var RecorderDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recorder_dropped_total",
		Help:      "Total number of lookups dropped because the recorder was saturated.",
	},
)

// RecorderErrorsTotal counts lookups that could not be persisted.
var RecorderErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recorder_errors_total",
		Help:      "Total number of lookups that failed to persist.",
	},
)
