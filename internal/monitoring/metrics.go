package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
)

// ExternalAPIMetrics covers calls to the EVM node
type ExternalAPIMetrics struct {
	apiDuration         *prometheus.HistogramVec
	apiCalls            *prometheus.CounterVec
	circuitBreakerState *prometheus.GaugeVec
	timeouts            *prometheus.CounterVec
}

func NewExternalAPIMetrics() *ExternalAPIMetrics {
	return &ExternalAPIMetrics{
		apiDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "swappy_external_api_duration_seconds",
				Help:    "Duration of external API calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"api_name", "endpoint", "status"},
		),
		apiCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swappy_external_api_calls_total",
				Help: "Total number of external API calls",
			},
			[]string{"api_name", "status"},
		),
		circuitBreakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "swappy_circuit_breaker_state",
				Help: "Current state of circuit breakers (0=closed, 1=half-open, 2=open)",
			},
			[]string{"api_name"},
		),
		timeouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swappy_external_api_timeouts_total",
				Help: "Total number of external API timeouts",
			},
			[]string{"api_name", "timeout_type"},
		),
	}
}

func (m *ExternalAPIMetrics) MustRegister(registry *prometheus.Registry) {
	registry.MustRegister(
		m.apiDuration,
		m.apiCalls,
		m.circuitBreakerState,
		m.timeouts,
	)
}

func (m *ExternalAPIMetrics) RecordAPICall(apiName, endpoint, status string, duration float64) {
	m.apiDuration.WithLabelValues(apiName, endpoint, status).Observe(duration)
	m.apiCalls.WithLabelValues(apiName, status).Inc()
}

func (m *ExternalAPIMetrics) UpdateCircuitBreakerState(apiName string, state gobreaker.State) {
	m.circuitBreakerState.WithLabelValues(apiName).Set(float64(state))
}

func (m *ExternalAPIMetrics) RecordTimeout(apiName, timeoutType string) {
	m.timeouts.WithLabelValues(apiName, timeoutType).Inc()
}

// SwapMetrics counts swap and initialization outcomes in both execution modes
type SwapMetrics struct {
	swaps           *prometheus.CounterVec
	swapDuration    *prometheus.HistogramVec
	initializations *prometheus.CounterVec
	indexedBlock    prometheus.Gauge
}

func NewSwapMetrics() *SwapMetrics {
	return &SwapMetrics{
		swaps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swappy_swaps_total",
				Help: "Native to token swaps by execution mode and outcome",
			},
			[]string{"mode", "outcome"},
		),
		swapDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "swappy_swap_duration_seconds",
				Help:    "Time from submission to settlement of a swap",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
			},
			[]string{"mode", "outcome"},
		),
		initializations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swappy_initializations_total",
				Help: "Facilitator initialize calls by outcome",
			},
			[]string{"mode", "outcome"},
		),
		indexedBlock: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "swappy_indexed_block",
				Help: "Last block scanned for SwapExecuted logs",
			},
		),
	}
}

func (m *SwapMetrics) MustRegister(registry *prometheus.Registry) {
	registry.MustRegister(
		m.swaps,
		m.swapDuration,
		m.initializations,
		m.indexedBlock,
	)
}

// RecordSwap counts one swap; outcome is "success" or an error kind.
func (m *SwapMetrics) RecordSwap(mode, outcome string, duration time.Duration) {
	m.swaps.WithLabelValues(mode, outcome).Inc()
	m.swapDuration.WithLabelValues(mode, outcome).Observe(duration.Seconds())
}

func (m *SwapMetrics) RecordInitialization(mode, outcome string) {
	m.initializations.WithLabelValues(mode, outcome).Inc()
}

func (m *SwapMetrics) SetIndexedBlock(block uint64) {
	m.indexedBlock.Set(float64(block))
}
