package providers

import (
	"context"

	"pancake-service/internal/domain/shows"
	"pancake-service/internal/seats"
)

// ShowProvider fetches and normalizes the show feed for one market.
// marketID is the feed's zero-padded market identifier.
type ShowProvider interface {
	FetchShows(ctx context.Context, marketID string) ([]shows.Show, error)
}

// MarketProvider fetches the market directory.
type MarketProvider interface {
	FetchMarkets(ctx context.Context) ([]shows.MarketSummary, error)
}

// SeatPlanProvider fetches the seating grid for one session.
type SeatPlanProvider interface {
	FetchSeatPlan(ctx context.Context, cinemaID, sessionID string) (seats.SeatPlan, error)
}

// FeedProvider combines all provider capabilities.
type FeedProvider interface {
	ShowProvider
	MarketProvider
	SeatPlanProvider
}
