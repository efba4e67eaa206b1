package seats

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pancake-service/internal/logging"
	"pancake-service/internal/metrics"
)

// SeatPlanFetcher fetches the seating grid for one session at one cinema.
type SeatPlanFetcher interface {
	FetchSeatPlan(ctx context.Context, cinemaID, sessionID string) (SeatPlan, error)
}

// Prober runs one asynchronous seat-map probe per on-sale show and keeps the
// resulting classification keyed by session id. Each probe writes only its
// own key, so concurrent probes cannot corrupt each other's result. A failed
// probe leaves the prior (default) classification untouched; probing only
// ever tightens an on-sale show to sold-out.
type Prober struct {
	fetcher SeatPlanFetcher
	logger  *slog.Logger
	metrics *metrics.Recorder

	mu              sync.Mutex
	classifications map[string]Availability
	cancels         map[string]context.CancelFunc
	wg              sync.WaitGroup
}

// NewProber constructs a Prober.
func NewProber(fetcher SeatPlanFetcher, logger *slog.Logger, recorder *metrics.Recorder) *Prober {
	return &Prober{
		fetcher:         fetcher,
		logger:          logger,
		metrics:         recorder,
		classifications: make(map[string]Availability),
		cancels:         make(map[string]context.CancelFunc),
	}
}

// SetDefault seeds the classification for a session, typically
// available-by-default derived from the feed status. It never overwrites an
// existing classification.
func (p *Prober) SetDefault(sessionID string, avail Availability) {
	if p == nil || sessionID == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.classifications[sessionID]; !ok {
		p.classifications[sessionID] = avail
	}
}

// Probe launches an asynchronous classification for one session. A probe
// already in flight for the same session is left alone. Probes outlive the
// triggering request; use Cancel or Retain to stop ones nobody will observe.
func (p *Prober) Probe(cinemaID, sessionID string, requiredSeats int, minimumRowLabel string) {
	if p == nil || p.fetcher == nil || sessionID == "" {
		return
	}

	p.mu.Lock()
	if _, running := p.cancels[sessionID]; running {
		p.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancels[sessionID] = cancel
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.clearCancel(sessionID)

		start := time.Now()
		plan, err := p.fetcher.FetchSeatPlan(ctx, cinemaID, sessionID)
		if p.metrics != nil {
			p.metrics.RecordProbe(time.Since(start), err)
		}
		if err != nil {
			// Keep whatever classification the feed status implied.
			logging.Warn(p.logger, "seat probe failed",
				logging.FieldCinema, cinemaID,
				logging.FieldSession, sessionID,
				"error", err,
			)
			return
		}

		result := Classify(plan, requiredSeats, minimumRowLabel)
		p.mu.Lock()
		p.classifications[sessionID] = result
		p.mu.Unlock()

		logging.Info(p.logger, "seat probe classified",
			logging.FieldSession, sessionID,
			"availability", string(result),
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
	}()
}

// Cancel stops an in-flight probe for the given session, if any.
func (p *Prober) Cancel(sessionID string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	cancel := p.cancels[sessionID]
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Retain cancels every in-flight probe whose session id is not in keep,
// so probes for shows filtered out of the visible result set stop early.
func (p *Prober) Retain(keep map[string]bool) {
	if p == nil {
		return
	}
	p.mu.Lock()
	var stale []context.CancelFunc
	for sessionID, cancel := range p.cancels {
		if !keep[sessionID] {
			stale = append(stale, cancel)
		}
	}
	p.mu.Unlock()
	for _, cancel := range stale {
		cancel()
	}
}

// Classification returns the current classification for a session.
func (p *Prober) Classification(sessionID string) (Availability, bool) {
	if p == nil {
		return "", false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	avail, ok := p.classifications[sessionID]
	return avail, ok
}

// Classifications returns a snapshot of every known classification.
func (p *Prober) Classifications() map[string]Availability {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]Availability, len(p.classifications))
	for k, v := range p.classifications {
		out[k] = v
	}
	return out
}

// Shutdown cancels all in-flight probes and waits for them to finish.
func (p *Prober) Shutdown() {
	if p == nil {
		return
	}
	p.mu.Lock()
	for _, cancel := range p.cancels {
		cancel()
	}
	p.mu.Unlock()
	p.wg.Wait()
}

// Wait blocks until all launched probes have completed. Primarily for tests.
func (p *Prober) Wait() {
	if p != nil {
		p.wg.Wait()
	}
}

func (p *Prober) clearCancel(sessionID string) {
	p.mu.Lock()
	if cancel, ok := p.cancels[sessionID]; ok {
		delete(p.cancels, sessionID)
		defer cancel()
	}
	p.mu.Unlock()
}
