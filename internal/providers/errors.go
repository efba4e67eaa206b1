package providers

import "errors"

// ErrProviderUnavailable signals that no usable provider is configured.
var ErrProviderUnavailable = errors.New("provider unavailable")

// FeedError is the feed answering with an error payload instead of a market
// document. It is recovered locally: the caller caches an empty show list
// and surfaces Message as a status event.
type FeedError struct {
	Message string
}

func (e *FeedError) Error() string {
	if e.Message == "" {
		return "feed error"
	}
	return e.Message
}

// AsFeedError attempts to unwrap an error into a FeedError.
func AsFeedError(err error) (*FeedError, bool) {
	var feedErr *FeedError
	if errors.As(err, &feedErr) {
		return feedErr, true
	}
	return nil, false
}
