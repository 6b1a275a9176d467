package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/edustream/internal/llm"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, OutcomeOK},
		{context.DeadlineExceeded, OutcomeTimeout},
		{fmt.Errorf("wrapped: %w", context.Canceled), OutcomeCanceled},
		{llm.ErrEmptyResponse, OutcomeEmpty},
		{&llm.ErrRateLimit{}, OutcomeRateLimited},
		{&llm.ErrInvalidResponse{Err: errors.New("bad")}, OutcomeInvalid},
		{&llm.ErrMaxTokensExceeded{}, OutcomeTruncated},
		{&llm.ErrProviderUnavailable{}, OutcomeUnavailable},
		{errors.New("other"), OutcomeError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Outcome(tt.err), "%v", tt.err)
	}
}

func TestObserveLLM(t *testing.T) {
	m := New()

	m.ObserveLLM(llm.PurposeLearningPath, "mock", llm.Usage{InputTokens: 100, OutputTokens: 900}, 2*time.Second, nil)
	m.ObserveLLM(llm.PurposeTutorChat, "mock", llm.Usage{}, time.Second, context.DeadlineExceeded)
	m.ObserveLLM(llm.PurposeTutorChat, "mock", llm.Usage{InputTokens: 10, OutputTokens: 5}, time.Second, nil)

	families := gather(t, m)

	assert.Equal(t, 1.0, counterValue(families, "edustream_llm_requests_total", "purpose", llm.PurposeLearningPath, "outcome", OutcomeOK))
	assert.Equal(t, 1.0, counterValue(families, "edustream_llm_requests_total", "purpose", llm.PurposeTutorChat, "outcome", OutcomeTimeout))
	assert.Equal(t, 900.0, counterValue(families, "edustream_llm_tokens_total", "purpose", llm.PurposeLearningPath, "direction", "output"))
	assert.Equal(t, 10.0, counterValue(families, "edustream_llm_tokens_total", "purpose", llm.PurposeTutorChat, "direction", "input"))
	assert.Len(t, families["edustream_llm_request_duration_seconds"].GetMetric(), 2)
}

func gather(t *testing.T, m *Metrics) map[string]*dto.MetricFamily {
	t.Helper()
	mfs, err := m.Registry().Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(mfs))
	for _, mf := range mfs {
		out[mf.GetName()] = mf
	}
	return out
}

// counterValue finds the counter whose labels match the given name/value pairs.
func counterValue(families map[string]*dto.MetricFamily, name string, labels ...string) float64 {
	mf, ok := families[name]
	if !ok {
		return 0
	}
	for _, metric := range mf.GetMetric() {
		got := map[string]string{}
		for _, lp := range metric.GetLabel() {
			got[lp.GetName()] = lp.GetValue()
		}
		match := true
		for i := 0; i+1 < len(labels); i += 2 {
			if got[labels[i]] != labels[i+1] {
				match = false
				break
			}
		}
		if match {
			return metric.GetCounter().GetValue()
		}
	}
	return 0
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveLLM(llm.PurposeTutorChat, "mock", llm.Usage{}, time.Millisecond, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `edustream_llm_requests_total{outcome="ok",purpose="tutor-chat"} 1`)
}

func TestServeStopsOnCancel(t *testing.T) {
	m := New()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- m.Serve(ctx, "127.0.0.1:0", zapNop()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func zapNop() *zap.Logger { return zap.NewNop() }
