package providers

import (
	"context"
	"testing"
	"time"

	"pancake-service/internal/domain/shows"
)

func TestRateLimitSpacesFetches(t *testing.T) {
	inner := &scriptedProvider{showsFn: func(call int) ([]shows.Show, error) {
		return []shows.Show{}, nil
	}}

	interval := 50 * time.Millisecond
	p := NewRateLimitedProvider(inner, interval, nil)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := p.FetchShows(context.Background(), "0000"); err != nil {
			t.Fatalf("FetchShows: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 2*interval {
		t.Errorf("3 fetches completed in %v, want at least %v", elapsed, 2*interval)
	}
}

func TestRateLimitFirstFetchImmediate(t *testing.T) {
	inner := &scriptedProvider{showsFn: func(call int) ([]shows.Show, error) {
		return []shows.Show{}, nil
	}}

	p := NewRateLimitedProvider(inner, time.Minute, nil)
	start := time.Now()
	if _, err := p.FetchShows(context.Background(), "0000"); err != nil {
		t.Fatalf("FetchShows: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("first fetch waited %v", elapsed)
	}
}

func TestRateLimitHonorsContextWhileWaiting(t *testing.T) {
	inner := &scriptedProvider{showsFn: func(call int) ([]shows.Show, error) {
		return []shows.Show{}, nil
	}}

	p := NewRateLimitedProvider(inner, time.Minute, nil)
	if _, err := p.FetchShows(context.Background(), "0000"); err != nil {
		t.Fatalf("first fetch: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := p.FetchShows(ctx, "0000"); err == nil {
		t.Fatal("expected context error while throttled")
	}
	if inner.showsCalls != 1 {
		t.Errorf("throttled fetch reached inner provider: %d calls", inner.showsCalls)
	}
}

func TestRateLimitDoesNotThrottleProbes(t *testing.T) {
	inner := &scriptedProvider{}
	p := NewRateLimitedProvider(inner, time.Minute, nil)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := p.FetchSeatPlan(context.Background(), "0002", "1"); err != nil {
			t.Fatalf("FetchSeatPlan: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("seat plan fetches throttled: %v", elapsed)
	}
	if inner.probeCalls != 3 {
		t.Errorf("probe calls = %d", inner.probeCalls)
	}
}
