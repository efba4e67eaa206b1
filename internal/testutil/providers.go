// Package testutil provides stub providers shared by package tests.
package testutil

import (
	"context"
	"sync"

	"pancake-service/internal/domain/shows"
	"pancake-service/internal/seats"
)

// StubProvider implements the full provider surface with overridable
// functions. Nil functions return empty results.
type StubProvider struct {
	mu sync.Mutex

	ShowsFn     func(ctx context.Context, marketID string) ([]shows.Show, error)
	MarketsFn   func(ctx context.Context) ([]shows.MarketSummary, error)
	SeatPlanFn  func(ctx context.Context, cinemaID, sessionID string) (seats.SeatPlan, error)
	ShowsCalls  int
	MarketCalls int
	ProbeCalls  int
}

func (s *StubProvider) FetchShows(ctx context.Context, marketID string) ([]shows.Show, error) {
	s.mu.Lock()
	s.ShowsCalls++
	s.mu.Unlock()
	if s.ShowsFn == nil {
		return []shows.Show{}, nil
	}
	return s.ShowsFn(ctx, marketID)
}

func (s *StubProvider) FetchMarkets(ctx context.Context) ([]shows.MarketSummary, error) {
	s.mu.Lock()
	s.MarketCalls++
	s.mu.Unlock()
	if s.MarketsFn == nil {
		return []shows.MarketSummary{}, nil
	}
	return s.MarketsFn(ctx)
}

func (s *StubProvider) FetchSeatPlan(ctx context.Context, cinemaID, sessionID string) (seats.SeatPlan, error) {
	s.mu.Lock()
	s.ProbeCalls++
	s.mu.Unlock()
	if s.SeatPlanFn == nil {
		return seats.SeatPlan{}, nil
	}
	return s.SeatPlanFn(ctx, cinemaID, sessionID)
}

// Calls returns the fetch counters under the stub's lock.
func (s *StubProvider) Calls() (showsCalls, marketCalls, probeCalls int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ShowsCalls, s.MarketCalls, s.ProbeCalls
}

// Show builds a minimal on-sale show for tests.
func Show(title, cinema, sessionID string) shows.Show {
	return shows.Show{
		Title:     title,
		Cinema:    cinema,
		CinemaID:  "0001",
		SessionID: sessionID,
		Status:    shows.StatusOnSale,
	}
}
