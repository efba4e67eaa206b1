package config

const (
	envFeedBaseURL      = "DRAFTHOUSE_FEED_BASE_URL"
	envDirectoryURL     = "DRAFTHOUSE_DIRECTORY_URL"
	envSeatBaseURL      = "DRAFTHOUSE_SEAT_BASE_URL"
	envTicketingBaseURL = "DRAFTHOUSE_TICKETING_BASE_URL"
	envTheaterBaseURL   = "DRAFTHOUSE_THEATER_BASE_URL"
	envProxyBaseURL     = "DRAFTHOUSE_PROXY_BASE_URL"
	envUseProxy         = "DRAFTHOUSE_USE_PROXY"

	defaultFeedBaseURL      = "https://feeds.drafthouse.com/adcService/showtimes.svc/market"
	defaultDirectoryURL     = "https://drafthouse.com/s/mother/v1/page/markets"
	defaultSeatBaseURL      = "https://drafthouse.com/s/mother/v1"
	defaultTicketingBaseURL = "https://drafthouse.com/ticketing"
	defaultTheaterBaseURL   = "https://drafthouse.com/theater"
)

// DrafthouseConfig controls how we talk to the Alamo Drafthouse endpoints.
// UseProxy routes feed fetches through the CORS proxy, needed only for
// client environments that cannot reach the feed host directly.
type DrafthouseConfig struct {
	FeedBaseURL      string
	DirectoryURL     string
	SeatBaseURL      string
	TicketingBaseURL string
	TheaterBaseURL   string
	ProxyBaseURL     string
	UseProxy         bool
}

func loadDrafthouse() DrafthouseConfig {
	return DrafthouseConfig{
		FeedBaseURL:      envOrDefault(envFeedBaseURL, defaultFeedBaseURL),
		DirectoryURL:     envOrDefault(envDirectoryURL, defaultDirectoryURL),
		SeatBaseURL:      envOrDefault(envSeatBaseURL, defaultSeatBaseURL),
		TicketingBaseURL: envOrDefault(envTicketingBaseURL, defaultTicketingBaseURL),
		TheaterBaseURL:   envOrDefault(envTheaterBaseURL, defaultTheaterBaseURL),
		ProxyBaseURL:     envOrDefault(envProxyBaseURL, ""),
		UseProxy:         boolEnvOrDefault(envUseProxy, false),
	}
}
