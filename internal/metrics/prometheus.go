// Package metrics exposes Prometheus instrumentation for the rule compiler.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once     sync.Once
	registry *Registry
)

// Registry holds all compiler metrics.
type Registry struct {
	// Compilation metrics
	FiltersCompiled *prometheus.CounterVec
	InstallFailures prometheus.Counter
	BatchApplies    *prometheus.CounterVec

	// Engine metrics
	InstalledFilters *prometheus.GaugeVec
	SublayerFlushes  *prometheus.CounterVec
	RejectedSubmits  *prometheus.CounterVec
	CommittedTxns    prometheus.Counter
	AbortedTxns      prometheus.Counter
}

// Get returns the global metrics registry, creating it if necessary.
func Get() *Registry {
	once.Do(func() {
		registry = newRegistry()
	})
	return registry
}

func newRegistry() *Registry {
	r := &Registry{}

	r.FiltersCompiled = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relayfw",
		Name:      "filters_compiled_total",
		Help:      "Filters compiled and accepted by the installer, by classification.",
	}, []string{"classification"})

	r.InstallFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "relayfw",
		Name:      "install_failures_total",
		Help:      "Filter submissions the installer rejected.",
	})

	r.BatchApplies = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relayfw",
		Name:      "batch_applies_total",
		Help:      "Rule set applications, by result.",
	}, []string{"result"})

	r.InstalledFilters = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "relayfw",
		Name:      "engine_installed_filters",
		Help:      "Filters currently installed in the engine, by sublayer.",
	}, []string{"sublayer"})

	r.SublayerFlushes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relayfw",
		Name:      "engine_sublayer_flushes_total",
		Help:      "Bulk removals of a sublayer's filters.",
	}, []string{"sublayer"})

	r.RejectedSubmits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relayfw",
		Name:      "engine_rejected_submits_total",
		Help:      "Filter submissions the engine rejected, by reason.",
	}, []string{"reason"})

	r.CommittedTxns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "relayfw",
		Name:      "engine_committed_txns_total",
		Help:      "Committed engine transactions.",
	})

	r.AbortedTxns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "relayfw",
		Name:      "engine_aborted_txns_total",
		Help:      "Aborted engine transactions.",
	})

	return r
}
