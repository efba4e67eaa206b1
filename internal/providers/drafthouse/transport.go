package drafthouse

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

func normalizeBaseURL(raw, fallback string) string {
	if raw == "" {
		raw = fallback
	}
	return strings.TrimSuffix(raw, "/")
}

// formatMarketID zero-pads numeric market ids to the width the feed expects;
// non-numeric ids (newer slug-style ids) pass through untouched.
func formatMarketID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return fmt.Sprintf("%0*d", marketIDWidth, n)
	}
	return raw
}
