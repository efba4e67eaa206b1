package drafthouse

import "time"

// ProviderName identifies this provider in logs and metrics.
const ProviderName = "drafthouse"

// cinemaBrandPrefix is prepended to the raw cinema name for display.
const cinemaBrandPrefix = "Alamo Drafthouse "

const (
	defaultFeedBaseURL      = "https://feeds.drafthouse.com/adcService/showtimes.svc/market"
	defaultDirectoryURL     = "https://drafthouse.com/s/mother/v1/page/markets"
	defaultSeatBaseURL      = "https://drafthouse.com/s/mother/v1"
	defaultTicketingBaseURL = "https://drafthouse.com/ticketing"
	defaultTheaterBaseURL   = "https://drafthouse.com/theater"

	defaultHTTPTimeout = 15 * time.Second

	// The feed zero-pads market ids to four digits (Austin is "0000").
	marketIDWidth = 4
)
