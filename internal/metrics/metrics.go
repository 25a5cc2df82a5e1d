// Package metrics holds the prometheus collectors for controller calls and
// deployment pipelines. A CLI run can export them with WriteTextfile for the
// node_exporter textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultSkipped = "skipped"
)

// Registry collects every sdactl metric.
var Registry = prometheus.NewRegistry()

var (
	// Controller request metrics
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sdactl",
			Subsystem: "controller",
			Name:      "requests_total",
			Help:      "Total number of controller API requests by result",
		},
		[]string{"controller", "method", "result"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sdactl",
			Subsystem: "controller",
			Name:      "request_duration_seconds",
			Help:      "Duration of controller API requests in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
		},
		[]string{"controller"},
	)

	// Pipeline metrics
	itemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sdactl",
			Subsystem: "pipeline",
			Name:      "items_total",
			Help:      "Total number of pipeline items by stage and result",
		},
		[]string{"pipeline", "stage", "result"},
	)

	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sdactl",
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total number of pipeline runs by result",
		},
		[]string{"pipeline", "result"},
	)
)

func init() {
	Registry.MustRegister(
		requestsTotal,
		requestDuration,
		itemsTotal,
		runsTotal,
	)
}

func resultLabel(ok bool) string {
	if ok {
		return ResultSuccess
	}
	return ResultFailure
}

// RecordRequest records one controller API call.
func RecordRequest(controller, method string, ok bool, seconds float64) {
	requestsTotal.WithLabelValues(controller, method, resultLabel(ok)).Inc()
	requestDuration.WithLabelValues(controller).Observe(seconds)
}

// RecordItem records the outcome of one pipeline item.
func RecordItem(pipeline, stage, result string) {
	itemsTotal.WithLabelValues(pipeline, stage, result).Inc()
}

// RecordRun records the overall outcome of a pipeline run.
func RecordRun(pipeline string, ok bool) {
	runsTotal.WithLabelValues(pipeline, resultLabel(ok)).Inc()
}

// WriteTextfile writes all metrics to path in the text exposition format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
