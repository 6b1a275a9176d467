package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/edustream/internal/store"
)

// UsageObserver receives one callback per completed request.
type UsageObserver interface {
	ObserveLLM(purpose, model string, usage Usage, latency time.Duration, err error)
}

// Audit bundles the sinks every request is reported to. Nil sinks are skipped.
type Audit struct {
	// Provider is the vendor name recorded with each event, e.g. "gemini".
	Provider string

	Events   store.EventRepo
	Logger   *zap.Logger
	Observer UsageObserver
}

// LoggingProvider is a decorator that records every LLM request.
type LoggingProvider struct {
	inner Provider
	audit Audit
}

// WithLogging wraps a Provider with event logging.
func WithLogging(p Provider, audit Audit) Provider {
	if audit.Logger == nil {
		audit.Logger = zap.NewNop()
	}
	if audit.Provider == "" {
		audit.Provider = "unknown"
	}
	return &LoggingProvider{inner: p, audit: audit}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)
	requestID := uuid.NewString()

	resp, err := l.inner.Generate(ctx, req)

	latency := time.Since(start)

	data := store.LLMRequestEventData{
		RequestID:   requestID,
		Provider:    l.audit.Provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	var usage Usage
	if resp != nil {
		usage = resp.Usage
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("purpose", purpose),
		zap.String("provider", data.Provider),
		zap.String("model", data.Model),
		zap.Int("input_tokens", data.InputTokens),
		zap.Int("output_tokens", data.OutputTokens),
		zap.Duration("latency", latency),
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.audit.Logger.Warn("llm request failed", append(fields, zap.Error(err))...)
	} else {
		l.audit.Logger.Info("llm request", fields...)
	}

	if l.audit.Observer != nil {
		l.audit.Observer.ObserveLLM(purpose, data.Model, usage, latency, err)
	}

	// The request outcome never depends on the audit write.
	if l.audit.Events != nil {
		if logErr := l.audit.Events.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
			l.audit.Logger.Warn("failed to record llm request event",
				zap.String("request_id", requestID), zap.Error(logErr))
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(schemaDef)
			b.WriteString("\n")
		}
	}

	return b.String()
}
