package llm

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// ErrUnavailable is returned while the circuit breaker is open. Callers treat
// it as a recoverable per-request failure, not a process-fatal one.
var ErrUnavailable = errors.New("language model unavailable")

// Breaker wraps an Oracle with a circuit breaker so that a wedged or
// unreachable model fails fast instead of stalling every request.
type Breaker struct {
	inner  Oracle
	cb     *gobreaker.CircuitBreaker[string]
	logger *zap.Logger
}

// NewBreaker wraps the given oracle. The breaker trips after five consecutive
// failures and probes again after thirty seconds.
func NewBreaker(inner Oracle, logger *zap.Logger) *Breaker {
	settings := gobreaker.Settings{
		Name:    "llm-oracle",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Oracle circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &Breaker{
		inner:  inner,
		cb:     gobreaker.NewCircuitBreaker[string](settings),
		logger: logger,
	}
}

// Complete delegates to the wrapped oracle through the breaker.
func (b *Breaker) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := b.cb.Execute(func() (string, error) {
		return b.inner.Complete(ctx, prompt)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", ErrUnavailable
	}
	return out, err
}
