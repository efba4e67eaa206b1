package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"pancake-service/internal/domain/shows"
	"pancake-service/internal/seats"
)

type scriptedProvider struct {
	showsCalls  int
	showsFn     func(call int) ([]shows.Show, error)
	marketCalls int
	probeCalls  int
}

func (s *scriptedProvider) FetchShows(ctx context.Context, marketID string) ([]shows.Show, error) {
	s.showsCalls++
	return s.showsFn(s.showsCalls)
}

func (s *scriptedProvider) FetchMarkets(ctx context.Context) ([]shows.MarketSummary, error) {
	s.marketCalls++
	return []shows.MarketSummary{}, nil
}

func (s *scriptedProvider) FetchSeatPlan(ctx context.Context, cinemaID, sessionID string) (seats.SeatPlan, error) {
	s.probeCalls++
	return seats.SeatPlan{}, nil
}

func TestRetryRecoversAfterTransientFailure(t *testing.T) {
	want := []shows.Show{{Title: "Master Pancake: The Room"}}
	inner := &scriptedProvider{showsFn: func(call int) ([]shows.Show, error) {
		if call == 1 {
			return nil, errors.New("connection reset")
		}
		return want, nil
	}}

	p := NewRetryingProvider(inner, nil, nil, "test", 3, time.Millisecond)
	got, err := p.FetchShows(context.Background(), "0000")
	if err != nil {
		t.Fatalf("FetchShows: %v", err)
	}
	if len(got) != 1 || got[0].Title != want[0].Title {
		t.Errorf("got %v", got)
	}
	if inner.showsCalls != 2 {
		t.Errorf("inner called %d times, want 2", inner.showsCalls)
	}
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	inner := &scriptedProvider{showsFn: func(call int) ([]shows.Show, error) {
		return nil, errors.New("still down")
	}}

	p := NewRetryingProvider(inner, nil, nil, "test", 3, time.Millisecond)
	if _, err := p.FetchShows(context.Background(), "0000"); err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
	if inner.showsCalls != 3 {
		t.Errorf("inner called %d times, want exactly 3", inner.showsCalls)
	}
}

func TestRetryDoesNotRetryFeedErrors(t *testing.T) {
	inner := &scriptedProvider{showsFn: func(call int) ([]shows.Show, error) {
		return []shows.Show{}, &FeedError{Message: "Market not found"}
	}}

	p := NewRetryingProvider(inner, nil, nil, "test", 3, time.Millisecond)
	_, err := p.FetchShows(context.Background(), "9999")
	if _, ok := AsFeedError(err); !ok {
		t.Fatalf("expected FeedError passthrough, got %v", err)
	}
	if inner.showsCalls != 1 {
		t.Errorf("feed error retried: %d calls", inner.showsCalls)
	}
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	inner := &scriptedProvider{showsFn: func(call int) ([]shows.Show, error) {
		return nil, errors.New("down")
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewRetryingProvider(inner, nil, nil, "test", 10, 50*time.Millisecond)
	if _, err := p.FetchShows(ctx, "0000"); err == nil {
		t.Fatal("expected an error with cancelled context")
	}
	if inner.showsCalls > 2 {
		t.Errorf("cancelled context kept retrying: %d calls", inner.showsCalls)
	}
}

func TestRetryPassesThroughMarketsAndSeatPlans(t *testing.T) {
	inner := &scriptedProvider{}
	p := NewRetryingProvider(inner, nil, nil, "test", 3, time.Millisecond)

	if _, err := p.FetchMarkets(context.Background()); err != nil {
		t.Errorf("FetchMarkets: %v", err)
	}
	if _, err := p.FetchSeatPlan(context.Background(), "0002", "1"); err != nil {
		t.Errorf("FetchSeatPlan: %v", err)
	}
	if inner.marketCalls != 1 || inner.probeCalls != 1 {
		t.Errorf("passthrough calls = %d, %d", inner.marketCalls, inner.probeCalls)
	}
}
