package fixture

import (
	"context"
	"time"

	"pancake-service/internal/domain/shows"
	"pancake-service/internal/seats"
)

// Provider returns a static market of shows useful for local testing and
// bootstrapping without hitting the real feed.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// FetchShows returns a deterministic set of example shows.
func (p *Provider) FetchShows(ctx context.Context, marketID string) ([]shows.Show, error) {
	_ = ctx

	date := p.now().UTC().Format("2006-01-02")

	return []shows.Show{
		{
			Title:     "Master Pancake: The Room",
			FilmUID:   "fixture-film-1",
			Cinema:    "Alamo Drafthouse Ritz",
			CinemaURL: "https://drafthouse.com/theater/ritz",
			CinemaID:  "0002",
			Date:      date,
			Time:      "7:00p",
			Status:    shows.StatusOnSale,
			URL:       "https://drafthouse.com/ticketing/0002/FIX1",
			SessionID: "FIX1",
		},
		{
			Title:     "Master Pancake: The Room",
			FilmUID:   "fixture-film-1",
			Cinema:    "Alamo Drafthouse Ritz",
			CinemaURL: "https://drafthouse.com/theater/ritz",
			CinemaID:  "0002",
			Date:      date,
			Time:      "9:45p",
			Status:    shows.StatusSoldOut,
			SessionID: "FIX2",
		},
		{
			Title:     "Alien: Romulus",
			FilmUID:   "fixture-film-2",
			Cinema:    "Alamo Drafthouse South Lamar",
			CinemaURL: "https://drafthouse.com/theater/south-lamar",
			CinemaID:  "0003",
			Date:      date,
			Time:      "8:30p",
			Status:    shows.StatusNotOnSale,
			SessionID: "FIX3",
		},
	}, nil
}

// FetchMarkets returns a deterministic market directory.
func (p *Provider) FetchMarkets(ctx context.Context) ([]shows.MarketSummary, error) {
	_ = ctx
	return []shows.MarketSummary{
		{Name: "Austin, TX", ID: "0000"},
		{Name: "Denver, CO", ID: "1600"},
	}, nil
}

// FetchSeatPlan returns a small grid with one open pair in row G.
func (p *Provider) FetchSeatPlan(ctx context.Context, cinemaID, sessionID string) (seats.SeatPlan, error) {
	_ = ctx
	_ = cinemaID
	_ = sessionID
	return seats.SeatPlan{
		Areas: []seats.Area{
			{
				Rows: []seats.Row{
					{Label: "A", Seats: []seats.Seat{{}, {}, {}}},
					{Label: "G", Seats: []seats.Seat{{Priority: 1}, {}, {}, {Status: 2}}},
				},
			},
		},
	}, nil
}
