package observability

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config holds logging/metrics/tracing settings.
type Config struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
}

// Registry bundles the per-subsystem metrics implementations behind one
// prometheus registry.
type Registry struct {
	prometheus *prometheus.Registry

	Tournament TournamentMetrics
	GameState  GameStateMetrics
	Storage    StorageMetrics
	Handlers   HandlerMetrics
}

// Observability carries the logger, tracer and metrics registry handed to
// every module.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry *Registry
}

// New builds the process-wide observability stack: a JSON slog logger on
// stdout, the otel tracer registered for the global provider, and a fresh
// prometheus registry with all subsystem collectors.
func New(cfg Config) *Observability {
	level := parseLevel(cfg.LogLevel)
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler).With(slog.String("env", cfg.Environment))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Observability{
		Logger: logger,
		Tracer: otel.Tracer("iddqd"),
		Registry: &Registry{
			prometheus: reg,
			Tournament: newPromTournamentMetrics(reg),
			GameState:  newPromOperationMetrics(reg, "gamestate"),
			Storage:    newPromStorageMetrics(reg),
			Handlers:   newPromHandlerMetrics(reg),
		},
	}
}

// NewNoOp returns an Observability suitable for tests: discard logger, noop
// tracer, NoOp metrics.
func NewNoOp() *Observability {
	return &Observability{
		Logger: slog.New(slog.DiscardHandler),
		Tracer: noop.NewTracerProvider().Tracer("test"),
		Registry: &Registry{
			Tournament: NoOpMetrics{},
			GameState:  NoOpMetrics{},
			Storage:    NoOpMetrics{},
			Handlers:   NoOpMetrics{},
		},
	}
}

// MetricsHandler serves the registry over HTTP for scraping.
func (r *Registry) MetricsHandler() http.Handler {
	if r.prometheus == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.prometheus, promhttp.HandlerOpts{})
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
