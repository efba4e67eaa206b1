package server

import (
	"log/slog"
	"time"

	"pancake-service/internal/config"
	"pancake-service/internal/metrics"
	"pancake-service/internal/providers"
	"pancake-service/internal/providers/drafthouse"
	"pancake-service/internal/providers/fixture"
)

const (
	providerRetryAttempts = 3
	providerRetryBackoff  = 200 * time.Millisecond
	// Minimum spacing between feed fetches; the upstream feed host is not
	// ours and a market change can otherwise hammer it.
	providerRateInterval = 500 * time.Millisecond
)

// newProvider builds the configured feed provider wrapped with rate limiting
// and retries.
func newProvider(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) providers.FeedProvider {
	var base providers.FeedProvider
	name := cfg.Provider

	switch cfg.Provider {
	case "fixture":
		base = fixture.New()
	default:
		name = drafthouse.ProviderName
		base = drafthouse.NewClient(drafthouse.Config{
			FeedBaseURL:      cfg.Drafthouse.FeedBaseURL,
			DirectoryURL:     cfg.Drafthouse.DirectoryURL,
			SeatBaseURL:      cfg.Drafthouse.SeatBaseURL,
			TicketingBaseURL: cfg.Drafthouse.TicketingBaseURL,
			TheaterBaseURL:   cfg.Drafthouse.TheaterBaseURL,
			ProxyBaseURL:     cfg.Drafthouse.ProxyBaseURL,
			UseProxy:         cfg.Drafthouse.UseProxy,
		})
	}

	limited := providers.NewRateLimitedProvider(base, providerRateInterval, logger)
	return providers.NewRetryingProvider(limited, logger, recorder, name, providerRetryAttempts, providerRetryBackoff)
}
