package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics records the outcome of service operations.
type OperationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
}

// TournamentMetrics extends OperationMetrics with tournament-specific signals.
type TournamentMetrics interface {
	OperationMetrics
	RecordRoll(ctx context.Context, value int)
	RecordElimination(ctx context.Context, count int)
}

// GameStateMetrics records game-state manager operations.
type GameStateMetrics interface {
	OperationMetrics
}

// StorageMetrics records per-tier storage outcomes for the façade.
type StorageMetrics interface {
	RecordTierHit(ctx context.Context, operation, tier string)
	RecordTierMiss(ctx context.Context, operation, tier string)
	RecordTierFailure(ctx context.Context, operation, tier string)
}

// HandlerMetrics records event-handler outcomes for the router wrapper.
type HandlerMetrics interface {
	RecordHandlerAttempt(ctx context.Context, handler string)
	RecordHandlerSuccess(ctx context.Context, handler string)
	RecordHandlerFailure(ctx context.Context, handler string)
	RecordHandlerDuration(ctx context.Context, handler string, duration time.Duration)
}

// NoOpMetrics satisfies every metrics interface. Used in tests.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string)                 {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpMetrics) RecordRoll(context.Context, int)                                {}
func (NoOpMetrics) RecordElimination(context.Context, int)                         {}
func (NoOpMetrics) RecordTierHit(context.Context, string, string)                  {}
func (NoOpMetrics) RecordTierMiss(context.Context, string, string)                 {}
func (NoOpMetrics) RecordTierFailure(context.Context, string, string)             {}
func (NoOpMetrics) RecordHandlerAttempt(context.Context, string)                   {}
func (NoOpMetrics) RecordHandlerSuccess(context.Context, string)                   {}
func (NoOpMetrics) RecordHandlerFailure(context.Context, string)                   {}
func (NoOpMetrics) RecordHandlerDuration(context.Context, string, time.Duration)   {}

type promOperationMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

func newPromOperationMetrics(reg prometheus.Registerer, subsystem string) *promOperationMetrics {
	m := &promOperationMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "iddqd", Subsystem: subsystem, Name: "operation_attempts_total",
			Help: "Service operation attempts.",
		}, []string{"operation"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "iddqd", Subsystem: subsystem, Name: "operation_successes_total",
			Help: "Service operations that completed without error.",
		}, []string{"operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "iddqd", Subsystem: subsystem, Name: "operation_failures_total",
			Help: "Service operations that returned an error.",
		}, []string{"operation"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "iddqd", Subsystem: subsystem, Name: "operation_duration_seconds",
			Help:    "Service operation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	reg.MustRegister(m.attempts, m.successes, m.failures, m.durations)
	return m
}

func (m *promOperationMetrics) RecordOperationAttempt(_ context.Context, op string) {
	m.attempts.WithLabelValues(op).Inc()
}

func (m *promOperationMetrics) RecordOperationSuccess(_ context.Context, op string) {
	m.successes.WithLabelValues(op).Inc()
}

func (m *promOperationMetrics) RecordOperationFailure(_ context.Context, op string) {
	m.failures.WithLabelValues(op).Inc()
}

func (m *promOperationMetrics) RecordOperationDuration(_ context.Context, op string, d time.Duration) {
	m.durations.WithLabelValues(op).Observe(d.Seconds())
}

type promTournamentMetrics struct {
	*promOperationMetrics
	rolls        prometheus.Histogram
	eliminations prometheus.Counter
}

func newPromTournamentMetrics(reg prometheus.Registerer) *promTournamentMetrics {
	m := &promTournamentMetrics{
		promOperationMetrics: newPromOperationMetrics(reg, "tournament"),
		rolls: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "iddqd", Subsystem: "tournament", Name: "roll_values",
			Help:    "Distribution of dice draws.",
			Buckets: prometheus.LinearBuckets(0, 1000, 11),
		}),
		eliminations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "iddqd", Subsystem: "tournament", Name: "eliminations_total",
			Help: "Players eliminated across all rounds.",
		}),
	}
	reg.MustRegister(m.rolls, m.eliminations)
	return m
}

func (m *promTournamentMetrics) RecordRoll(_ context.Context, value int) {
	m.rolls.Observe(float64(value))
}

func (m *promTournamentMetrics) RecordElimination(_ context.Context, count int) {
	m.eliminations.Add(float64(count))
}

type promStorageMetrics struct {
	hits     *prometheus.CounterVec
	misses   *prometheus.CounterVec
	failures *prometheus.CounterVec
}

func newPromStorageMetrics(reg prometheus.Registerer) *promStorageMetrics {
	m := &promStorageMetrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "iddqd", Subsystem: "storage", Name: "tier_hits_total",
			Help: "Storage operations served by a tier.",
		}, []string{"operation", "tier"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "iddqd", Subsystem: "storage", Name: "tier_misses_total",
			Help: "Storage reads that missed a tier.",
		}, []string{"operation", "tier"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "iddqd", Subsystem: "storage", Name: "tier_failures_total",
			Help: "Storage operations that failed at a tier.",
		}, []string{"operation", "tier"}),
	}
	reg.MustRegister(m.hits, m.misses, m.failures)
	return m
}

func (m *promStorageMetrics) RecordTierHit(_ context.Context, op, tier string) {
	m.hits.WithLabelValues(op, tier).Inc()
}

func (m *promStorageMetrics) RecordTierMiss(_ context.Context, op, tier string) {
	m.misses.WithLabelValues(op, tier).Inc()
}

func (m *promStorageMetrics) RecordTierFailure(_ context.Context, op, tier string) {
	m.failures.WithLabelValues(op, tier).Inc()
}

type promHandlerMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

func newPromHandlerMetrics(reg prometheus.Registerer) *promHandlerMetrics {
	m := &promHandlerMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "iddqd", Subsystem: "handlers", Name: "attempts_total",
			Help: "Event handler invocations.",
		}, []string{"handler"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "iddqd", Subsystem: "handlers", Name: "successes_total",
			Help: "Event handlers that completed without error.",
		}, []string{"handler"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "iddqd", Subsystem: "handlers", Name: "failures_total",
			Help: "Event handlers that returned an error.",
		}, []string{"handler"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "iddqd", Subsystem: "handlers", Name: "duration_seconds",
			Help:    "Event handler latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"handler"}),
	}
	reg.MustRegister(m.attempts, m.successes, m.failures, m.durations)
	return m
}

func (m *promHandlerMetrics) RecordHandlerAttempt(_ context.Context, h string) {
	m.attempts.WithLabelValues(h).Inc()
}

func (m *promHandlerMetrics) RecordHandlerSuccess(_ context.Context, h string) {
	m.successes.WithLabelValues(h).Inc()
}

func (m *promHandlerMetrics) RecordHandlerFailure(_ context.Context, h string) {
	m.failures.WithLabelValues(h).Inc()
}

func (m *promHandlerMetrics) RecordHandlerDuration(_ context.Context, h string, d time.Duration) {
	m.durations.WithLabelValues(h).Observe(d.Seconds())
}
