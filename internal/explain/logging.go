package explain

import (
	"context"
	"log/slog"
	"time"
)

type logged struct {
	inner  Provider
	logger *slog.Logger
}

// WithLogging wraps p so every request is logged with its latency and
// token usage. Prompt bodies are only logged at debug level.
func WithLogging(p Provider, logger *slog.Logger) Provider {
	return &logged{inner: p, logger: logger}
}

func (l *logged) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	start := time.Now()
	c, err := l.inner.Complete(ctx, p)

	attrs := []any{
		slog.String("model", l.inner.Model()),
		slog.Int64("latency_ms", time.Since(start).Milliseconds()),
	}
	if p.Schema != nil {
		attrs = append(attrs, slog.String("schema", p.Schema.Name))
	}
	if err != nil {
		l.logger.WarnContext(ctx, "llm request failed", append(attrs, slog.Any("error", err))...)
		return nil, err
	}

	attrs = append(attrs,
		slog.Int("input_tokens", c.InputTokens),
		slog.Int("output_tokens", c.OutputTokens),
	)
	l.logger.InfoContext(ctx, "llm request", attrs...)
	l.logger.DebugContext(ctx, "llm exchange", slog.String("prompt", p.User), slog.String("reply", string(c.JSON)))
	return c, nil
}

func (l *logged) Model() string { return l.inner.Model() }
