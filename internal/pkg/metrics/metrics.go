// Package metrics exposes Prometheus collectors for commands, HTTP traffic
// and the reconciliation audit.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"tokenorders/internal/core/domain/model/account"
	"tokenorders/internal/core/domain/model/order"
	"tokenorders/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tokenorders"

// Outcome labels.
const (
	OutcomeOK                  = "ok"
	OutcomeValidation          = "validation"
	OutcomeNotFound            = "not_found"
	OutcomeInsufficientBalance = "insufficient_balance"
	OutcomeInvalidTransition   = "invalid_transition"
	OutcomeAlreadyCompleted    = "already_completed"
	OutcomeBusy                = "busy"
	OutcomeStorageFailure      = "storage_failure"
	OutcomeError               = "error"
)

// Metrics owns a private registry so that tests and multiple servers in one
// process do not collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	commands        *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	auditRuns       *prometheus.CounterVec
	unreconciled    prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "commands",
				Name:      "total",
				Help:      "Handled commands by outcome.",
			},
			[]string{"command", "outcome"},
		),
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "commands",
				Name:      "duration_seconds",
				Help:      "Duration of command transactions.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"command"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
			},
			[]string{"method", "route"},
		),
		auditRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "reconciliation",
				Name:      "runs_total",
				Help:      "Reconciliation audit runs by result.",
			},
			[]string{"success"},
		),
		unreconciled: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "reconciliation",
				Name:      "unreconciled_orders",
				Help:      "Orders whose line items do not add up to the amount, as of the last audit.",
			},
		),
	}

	m.registry.MustRegister(
		m.commands,
		m.commandDuration,
		m.httpRequests,
		m.httpDuration,
		m.auditRuns,
		m.unreconciled,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
	return m
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveCommand implements commands.Observer.
func (m *Metrics) ObserveCommand(name string, elapsed time.Duration, err error) {
	m.commands.WithLabelValues(name, Outcome(err)).Inc()
	m.commandDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}

// ObserveHTTP records one request against its route template.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveReconciliation records one audit run. unreconciled is ignored when
// the run failed.
func (m *Metrics) ObserveReconciliation(unreconciled int, err error) {
	if err != nil {
		m.auditRuns.WithLabelValues("false").Inc()
		return
	}
	m.auditRuns.WithLabelValues("true").Inc()
	m.unreconciled.Set(float64(unreconciled))
}

// Outcome maps an error onto the closed set of outcome labels.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, errs.ErrBusy):
		return OutcomeBusy
	case errors.Is(err, errs.ErrStorageFailure):
		return OutcomeStorageFailure
	case errors.Is(err, account.ErrInsufficientBalance):
		return OutcomeInsufficientBalance
	case errors.Is(err, order.ErrInvalidTransition):
		return OutcomeInvalidTransition
	case errors.Is(err, order.ErrOrderAlreadyCompleted):
		return OutcomeAlreadyCompleted
	case errors.Is(err, errs.ErrObjectNotFound):
		return OutcomeNotFound
	case errs.IsValidation(err):
		return OutcomeValidation
	default:
		return OutcomeError
	}
}
