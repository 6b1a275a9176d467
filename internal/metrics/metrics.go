// Package metrics exposes Prometheus counters for generative calls.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/abhisek/edustream/internal/llm"
)

// Outcome labels.
const (
	OutcomeOK          = "ok"
	OutcomeTimeout     = "timeout"
	OutcomeCanceled    = "canceled"
	OutcomeRateLimited = "rate_limited"
	OutcomeInvalid     = "invalid"
	OutcomeTruncated   = "truncated"
	OutcomeEmpty       = "empty"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// Metrics owns a private registry so tests and multiple instances never
// collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	tokens   *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edustream_llm_requests_total",
				Help: "Total number of generative requests by purpose and outcome",
			},
			[]string{"purpose", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "edustream_llm_request_duration_seconds",
				Help:    "Duration of generative requests",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
			},
			[]string{"purpose"},
		),
		tokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edustream_llm_tokens_total",
				Help: "Tokens consumed by purpose and direction",
			},
			[]string{"purpose", "direction"},
		),
	}
	m.registry.MustRegister(m.requests, m.duration, m.tokens)
	return m
}

// Registry returns the registry backing these metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveLLM implements llm.UsageObserver.
func (m *Metrics) ObserveLLM(purpose, _ string, usage llm.Usage, latency time.Duration, err error) {
	m.requests.WithLabelValues(purpose, Outcome(err)).Inc()
	m.duration.WithLabelValues(purpose).Observe(latency.Seconds())
	if usage.InputTokens > 0 {
		m.tokens.WithLabelValues(purpose, "input").Add(float64(usage.InputTokens))
	}
	if usage.OutputTokens > 0 {
		m.tokens.WithLabelValues(purpose, "output").Add(float64(usage.OutputTokens))
	}
}

// Outcome classifies an error into a low-cardinality label.
func Outcome(err error) string {
	var (
		rl      *llm.ErrRateLimit
		inv     *llm.ErrInvalidResponse
		maxTok  *llm.ErrMaxTokensExceeded
		unavail *llm.ErrProviderUnavailable
	)
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	case errors.Is(err, llm.ErrEmptyResponse):
		return OutcomeEmpty
	case errors.As(err, &rl):
		return OutcomeRateLimited
	case errors.As(err, &inv):
		return OutcomeInvalid
	case errors.As(err, &maxTok):
		return OutcomeTruncated
	case errors.As(err, &unavail):
		return OutcomeUnavailable
	default:
		return OutcomeError
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics listener started", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
