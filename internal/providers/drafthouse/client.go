package drafthouse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"pancake-service/internal/domain/shows"
	"pancake-service/internal/providers"
	"pancake-service/internal/seats"
)

// Config controls how the drafthouse client reaches the upstream endpoints.
type Config struct {
	FeedBaseURL      string
	DirectoryURL     string
	SeatBaseURL      string
	TicketingBaseURL string
	TheaterBaseURL   string
	ProxyBaseURL     string
	UseProxy         bool
	HTTPClient       *http.Client
}

// Client fetches Alamo Drafthouse feeds and maps them to domain models.
type Client struct {
	feedBaseURL      string
	directoryURL     string
	seatBaseURL      string
	ticketingBaseURL string
	theaterBaseURL   string
	proxyBaseURL     string
	useProxy         bool
	httpClient       httpDoer
}

// NewClient constructs a drafthouse client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		feedBaseURL:      normalizeBaseURL(cfg.FeedBaseURL, defaultFeedBaseURL),
		directoryURL:     normalizeBaseURL(cfg.DirectoryURL, defaultDirectoryURL),
		seatBaseURL:      normalizeBaseURL(cfg.SeatBaseURL, defaultSeatBaseURL),
		ticketingBaseURL: normalizeBaseURL(cfg.TicketingBaseURL, defaultTicketingBaseURL),
		theaterBaseURL:   normalizeBaseURL(cfg.TheaterBaseURL, defaultTheaterBaseURL),
		proxyBaseURL:     strings.TrimSuffix(cfg.ProxyBaseURL, "/"),
		useProxy:         cfg.UseProxy && cfg.ProxyBaseURL != "",
		httpClient:       resolveHTTPClient(cfg.HTTPClient),
	}
}

// FetchShows retrieves the market feed and flattens it into Show records,
// one per leaf Session. A feed-level error payload comes back as a
// *providers.FeedError with an empty list.
func (c *Client) FetchShows(ctx context.Context, marketID string) ([]shows.Show, error) {
	var payload feedResponse
	if err := c.getJSON(ctx, c.feedURL(marketID), &payload); err != nil {
		return nil, err
	}

	if payload.Error != "" {
		return []shows.Show{}, &providers.FeedError{Message: payload.Error}
	}
	return c.mapMarket(payload.Market), nil
}

// FetchMarkets retrieves the market directory. A missing data envelope is a
// valid empty result, not an error.
func (c *Client) FetchMarkets(ctx context.Context) ([]shows.MarketSummary, error) {
	var payload directoryResponse
	if err := c.getJSON(ctx, c.directoryURL, &payload); err != nil {
		return nil, err
	}

	if payload.Data == nil {
		return []shows.MarketSummary{}, nil
	}
	summaries := make([]shows.MarketSummary, 0, len(payload.Data.MarketSummaries))
	for _, m := range payload.Data.MarketSummaries {
		summaries = append(summaries, shows.MarketSummary{Name: m.Name, ID: m.ID.String()})
	}
	return summaries, nil
}

// FetchSeatPlan retrieves the seating grid for one session at one cinema.
func (c *Client) FetchSeatPlan(ctx context.Context, cinemaID, sessionID string) (seats.SeatPlan, error) {
	endpoint := fmt.Sprintf("%s/cinemas/%s/sessions/%s/seat-plan",
		c.seatBaseURL, url.PathEscape(cinemaID), url.PathEscape(sessionID))

	var payload seatPlanResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return seats.SeatPlan{}, err
	}
	return mapSeatPlan(payload), nil
}

// feedURL picks the direct endpoint, or the CORS proxy when configured.
func (c *Client) feedURL(marketID string) string {
	marketID = formatMarketID(marketID)
	if c.useProxy {
		return c.proxyBaseURL + "?m=" + url.QueryEscape(marketID)
	}
	return c.feedBaseURL + "/" + url.PathEscape(marketID)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("drafthouse: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
