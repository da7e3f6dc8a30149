// internal/resilience/breaker.go
package resilience

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/sixmovies/actorpop/internal/logging"
)

// DatabaseBreaker wraps database round-trips with a circuit breaker so a
// struggling Postgres instance fails fast instead of piling up blocked
// goroutines across a long-running recalculation.
//
// Breaker configuration: opens after a 50% failure rate over at least 5
// requests within a 30s measurement window, then waits 15s before probing
// again in half-open state.
type DatabaseBreaker struct {
	cb *gobreaker.CircuitBreaker[any]
}

// NewDatabaseBreaker constructs a DatabaseBreaker that logs every state
// transition through logger.
func NewDatabaseBreaker(name string, logger logging.EngineLogger) *DatabaseBreaker {
	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state transition",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return &DatabaseBreaker{cb: cb}
}

// ErrBreakerOpen is returned (wrapped) when the breaker rejects a call
// outright instead of running it.
var ErrBreakerOpen = gobreaker.ErrOpenState

// Execute runs fn under the breaker's protection. A context cancellation
// inside fn is returned unwrapped; gobreaker's own rejection errors
// (ErrOpenState, ErrTooManyRequests) pass through untouched so callers can
// check them with errors.Is.
func (b *DatabaseBreaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, fn(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return err
		}
		return err
	}
	return nil
}

// State reports the breaker's current state, for health checks.
func (b *DatabaseBreaker) State() gobreaker.State {
	return b.cb.State()
}
