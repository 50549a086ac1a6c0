// Package metrics exposes run counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HostnamesResolved counts hostnames that resolved to at least one
	// address.
	HostnamesResolved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostrecon_hostnames_resolved_total",
		Help: "Number of hostnames resolved to an IP address",
	})

	// ResolutionFailures counts hostnames that failed to resolve,
	// timeouts included.
	ResolutionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostrecon_resolution_failures_total",
		Help: "Number of hostnames that failed DNS resolution",
	})

	// ProbesCompleted counts probes that received an HTTP response.
	ProbesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostrecon_probes_completed_total",
		Help: "Number of HTTP probes that received a response",
	})

	// ProbeFailures counts probes that failed at the transport level.
	ProbeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hostrecon_probe_failures_total",
		Help: "Number of HTTP probes without a response",
	})
)

// Serve exports metrics to Prometheus on a web server listening on
// port 2112. It blocks; run it in a goroutine.
func Serve() {
	http.Handle("/metrics", promhttp.Handler())
	http.ListenAndServe(":2112", nil)
}
