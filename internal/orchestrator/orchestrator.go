// Package orchestrator coordinates feed retrieval, the session cache, the
// search engine, and the seat-availability prober.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"pancake-service/internal/domain/shows"
	"pancake-service/internal/logging"
	"pancake-service/internal/providers"
	"pancake-service/internal/search"
	"pancake-service/internal/seats"
	"pancake-service/internal/session"
)

// SearchParams carries the per-request knobs handed down from the UI layer.
// Zero values fall back to the orchestrator's configured defaults.
type SearchParams struct {
	Query           string
	RequiredSeats   int
	MinimumRowLabel string
}

// Orchestrator owns the fetch pipeline for one browsing session.
type Orchestrator struct {
	provider providers.FeedProvider
	cache    session.Cache
	statuses *session.StatusLog
	prober   *seats.Prober
	logger   *slog.Logger

	requiredSeats   int
	minimumRowLabel string

	marketMu sync.Mutex
	markets  []shows.MarketSummary
}

// New constructs an Orchestrator. requiredSeats and minimumRowLabel are the
// default seat-probe parameters, overridable per search.
func New(provider providers.FeedProvider, cache session.Cache, statuses *session.StatusLog, prober *seats.Prober, logger *slog.Logger, requiredSeats int, minimumRowLabel string) *Orchestrator {
	return &Orchestrator{
		provider:        provider,
		cache:           cache,
		statuses:        statuses,
		prober:          prober,
		logger:          logger,
		requiredSeats:   requiredSeats,
		minimumRowLabel: minimumRowLabel,
	}
}

// ResolveMarket turns a user-facing market name into the feed's market id.
// Numeric ids pass straight through; names match case-insensitively by
// prefix against the directory summaries.
func (o *Orchestrator) ResolveMarket(ctx context.Context, nameOrID string) (string, error) {
	trimmed := strings.TrimSpace(nameOrID)
	if trimmed == "" {
		return "", fmt.Errorf("empty market")
	}
	if isDigits(trimmed) {
		return trimmed, nil
	}

	summaries, err := o.Markets(ctx)
	if err != nil {
		return "", err
	}
	lowered := strings.ToLower(trimmed)
	for _, summary := range summaries {
		if strings.HasPrefix(strings.ToLower(summary.Name), lowered) {
			return summary.ID, nil
		}
	}
	return "", fmt.Errorf("unknown market %q", nameOrID)
}

// Markets fetches the market directory, falling back to the last good copy
// when the directory endpoint is unreachable.
func (o *Orchestrator) Markets(ctx context.Context) ([]shows.MarketSummary, error) {
	summaries, err := o.provider.FetchMarkets(ctx)
	if err != nil {
		o.marketMu.Lock()
		cached := o.markets
		o.marketMu.Unlock()
		if cached != nil {
			return cached, nil
		}
		return nil, err
	}

	o.marketMu.Lock()
	o.markets = summaries
	o.marketMu.Unlock()
	return summaries, nil
}

// Refresh returns the show list for a market, fetching the feed only when
// the session cache cannot serve it (cold session or market change).
func (o *Orchestrator) Refresh(ctx context.Context, marketID string) ([]shows.Show, error) {
	if !o.cache.ShouldRefetch(marketID) {
		if cached, ok := o.cache.Get(marketID); ok {
			o.statuses.Append(session.StatusCacheHit)
			return cached, nil
		}
	}
	return o.Reload(ctx, marketID)
}

// Reload fetches the feed unconditionally and replaces the cache entry
// wholesale. On a feed error payload the message becomes a status event and
// an empty list is cached; on a transport failure the error propagates, the
// cache is still emptied (never retain a possibly-partial prior list), and
// the fetch status entry is left unresolved.
func (o *Orchestrator) Reload(ctx context.Context, marketID string) ([]shows.Show, error) {
	seq := o.statuses.Append(session.StatusFetching)
	start := time.Now()

	list, err := o.provider.FetchShows(ctx, marketID)
	if err != nil {
		if feedErr, ok := providers.AsFeedError(err); ok {
			// An explicit error payload is an answer: cache the empty
			// list so the session does not hammer the feed.
			o.cache.Put(marketID, nil)
			o.statuses.MarkDone(seq)
			o.statuses.Append("error: " + feedErr.Message)
			logging.Warn(o.logger, "feed answered with error",
				logging.FieldMarket, marketID, "message", feedErr.Message)
			return []shows.Show{}, nil
		}
		// Transport failure: no list is known, not even an empty one.
		// Drop the entry so the next attempt refetches.
		o.cache.Clear()
		logging.Error(o.logger, "feed fetch failed", err, logging.FieldMarket, marketID)
		return nil, err
	}

	o.statuses.MarkDone(seq)
	parseSeq := o.statuses.Append(session.StatusParsing)
	o.cache.Put(marketID, list)
	o.statuses.MarkDone(parseSeq)
	logging.Info(o.logger, "market refreshed",
		logging.FieldMarket, marketID,
		logging.FieldCount, len(list),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return list, nil
}

// Search runs the active query against the market's cached shows, refreshing
// the cache first when needed, and kicks off seat probes for the on-sale
// shows in the result set.
func (o *Orchestrator) Search(ctx context.Context, marketID string, params SearchParams) ([]shows.Show, error) {
	list, err := o.Refresh(ctx, marketID)
	if err != nil {
		return nil, err
	}

	matched := search.Filter(params.Query, list)
	o.probeOnSale(matched, params)
	return matched, nil
}

// Statuses exposes the status log entries for the progress display.
func (o *Orchestrator) Statuses() []string {
	return o.statuses.Entries()
}

// Classification returns the probed availability for a session id.
func (o *Orchestrator) Classification(sessionID string) (seats.Availability, bool) {
	return o.prober.Classification(sessionID)
}

// Classifications returns every known availability keyed by session id.
func (o *Orchestrator) Classifications() map[string]seats.Availability {
	return o.prober.Classifications()
}

// probeOnSale launches one probe per on-sale show in the visible result set
// and cancels probes for shows that fell out of it.
func (o *Orchestrator) probeOnSale(matched []shows.Show, params SearchParams) {
	requiredSeats := params.RequiredSeats
	if requiredSeats <= 0 {
		requiredSeats = o.requiredSeats
	}
	minimumRowLabel := params.MinimumRowLabel
	if minimumRowLabel == "" {
		minimumRowLabel = o.minimumRowLabel
	}

	visible := make(map[string]bool, len(matched))
	for _, show := range matched {
		if !show.OnSale() || show.SessionID == "" {
			continue
		}
		visible[show.SessionID] = true
		// On-sale shows start available; a probe can only tighten that.
		o.prober.SetDefault(show.SessionID, seats.Available)
		o.prober.Probe(show.CinemaID, show.SessionID, requiredSeats, minimumRowLabel)
	}
	o.prober.Retain(visible)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
