package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pancake-service/internal/domain/shows"
	"pancake-service/internal/seats"
)

// rateLimitedProvider wraps a FeedProvider and enforces a minimum interval
// between feed fetches. Seat probes are not limited: many run in flight at
// once and the seat endpoint has no observed quota.
type rateLimitedProvider struct {
	next     FeedProvider
	interval time.Duration
	logger   *slog.Logger

	mu   sync.Mutex
	last time.Time
}

// NewRateLimitedProvider returns a FeedProvider that spaces feed fetches at
// least interval apart, sleeping when called too soon.
func NewRateLimitedProvider(next FeedProvider, interval time.Duration, logger *slog.Logger) FeedProvider {
	if interval <= 0 {
		interval = time.Minute
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		logger:   logger,
	}
}

func (p *rateLimitedProvider) FetchShows(ctx context.Context, marketID string) ([]shows.Show, error) {
	if p == nil || p.next == nil {
		return nil, ErrProviderUnavailable
	}

	if wait := p.reserve(); wait > 0 {
		if p.logger != nil {
			p.logger.Info("feed fetch throttled",
				slog.String("market", marketID),
				slog.Int64("wait_ms", wait.Milliseconds()))
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return p.next.FetchShows(ctx, marketID)
}

func (p *rateLimitedProvider) FetchMarkets(ctx context.Context) ([]shows.MarketSummary, error) {
	if p == nil || p.next == nil {
		return nil, ErrProviderUnavailable
	}
	return p.next.FetchMarkets(ctx)
}

func (p *rateLimitedProvider) FetchSeatPlan(ctx context.Context, cinemaID, sessionID string) (seats.SeatPlan, error) {
	if p == nil || p.next == nil {
		return seats.SeatPlan{}, ErrProviderUnavailable
	}
	return p.next.FetchSeatPlan(ctx, cinemaID, sessionID)
}

// reserve claims the next fetch slot and returns how long the caller must
// wait before using it.
func (p *rateLimitedProvider) reserve() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	next := p.last.Add(p.interval)
	if p.last.IsZero() || !next.After(now) {
		p.last = now
		return 0
	}
	p.last = next
	return next.Sub(now)
}
