package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"pancake-service/internal/domain/shows"
	"pancake-service/internal/logging"
	"pancake-service/internal/metrics"
	"pancake-service/internal/seats"
)

const (
	defaultRetryAttempts  = 3
	defaultInitialBackoff = 200 * time.Millisecond
)

// retryingProvider wraps a FeedProvider with retry/backoff behavior on feed
// fetches. Directory and seat-plan fetches pass through untouched: a failed
// probe deliberately keeps its prior classification, and the directory is
// refetched on demand anyway.
type retryingProvider struct {
	inner          FeedProvider
	logger         *slog.Logger
	metrics        *metrics.Recorder
	name           string
	maxAttempts    int
	initialBackoff time.Duration
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts
// or initial backoff are <= 0, defaults are used.
func NewRetryingProvider(inner FeedProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, initial time.Duration) FeedProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultInitialBackoff
	}
	return &retryingProvider{
		inner:          inner,
		logger:         logger,
		metrics:        recorder,
		name:           name,
		maxAttempts:    maxAttempts,
		initialBackoff: initial,
	}
}

func (r *retryingProvider) FetchShows(ctx context.Context, marketID string) ([]shows.Show, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.initialBackoff
	bo.MaxElapsedTime = 0

	var result []shows.Show
	attempt := 0

	op := func() error {
		attempt++
		start := time.Now()
		list, err := r.inner.FetchShows(ctx, marketID)
		if r.metrics != nil {
			r.metrics.RecordProviderAttempt(r.name, time.Since(start), err)
		}
		if err != nil {
			// An error payload from the feed is an answer, not an outage.
			if _, ok := AsFeedError(err); ok {
				return backoff.Permanent(err)
			}
			if attempt >= r.maxAttempts {
				return backoff.Permanent(err)
			}
			r.logWarn(ctx, "feed fetch retry",
				"attempt", attempt, "max_attempts", r.maxAttempts, "err", err)
			return err
		}
		result = list
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		r.logWarn(ctx, "feed fetch failed", "attempts", attempt, "err", err)
		return nil, err
	}
	return result, nil
}

func (r *retryingProvider) FetchMarkets(ctx context.Context) ([]shows.MarketSummary, error) {
	return r.inner.FetchMarkets(ctx)
}

func (r *retryingProvider) FetchSeatPlan(ctx context.Context, cinemaID, sessionID string) (seats.SeatPlan, error) {
	return r.inner.FetchSeatPlan(ctx, cinemaID, sessionID)
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logger := logging.FromContext(ctx, r.logger)
	if logger != nil {
		logger.Warn(msg, args...)
	}
}
