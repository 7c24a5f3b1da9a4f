package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// Chain tries an explicit ordered list of providers. It advances to the
// next provider only when the current one is rate-limited, out of quota,
// or unreachable; every other error surfaces immediately, since retrying
// a bad request elsewhere would fail the same way.
type Chain struct {
	providers []Provider
	log       *slog.Logger
}

// NewChain creates a fallback chain over the given providers, in order.
func NewChain(logger *slog.Logger, providers ...Provider) *Chain {
	return &Chain{
		providers: providers,
		log:       logger.With("component", "llm_chain"),
	}
}

// Complete runs the request through the chain.
func (c *Chain) Complete(ctx context.Context, req Request) (*Response, error) {
	if len(c.providers) == 0 {
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("no providers configured")}
	}

	var lastErr error
	for _, p := range c.providers {
		resp, err := p.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}

		if !IsRetriable(err) {
			return nil, fmt.Errorf("provider %s: %w", p.Name(), err)
		}

		c.log.WarnContext(ctx, "provider failed, trying next",
			slog.String("provider", p.Name()),
			slog.String("error", err.Error()))
		lastErr = err
	}

	return nil, fmt.Errorf("all providers exhausted: %w", lastErr)
}

// Name identifies the chain in logs.
func (c *Chain) Name() string { return "chain" }
