package shows

// Session status literals as the feed reports them. The feed has grown other
// values over time; Status is passed through verbatim, these cover the ones
// the service branches on.
const (
	StatusOnSale    = "onsale"
	StatusSoldOut   = "soldout"
	StatusNotOnSale = "notonsale"
)

// Show is one scheduled screening, flattened from the nested feed document.
// One leaf Session yields exactly one Show; records are immutable once built
// and replaced en masse when the session cache repopulates.
type Show struct {
	Title      string `json:"title"`
	FilmUID    string `json:"film_uid,omitempty"`
	FilmSlug   string `json:"film_slug,omitempty"`
	Cinema     string `json:"cinema"`
	CinemaURL  string `json:"cinema_url"`
	CinemaID   string `json:"cinema_id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     string `json:"status"`
	URL        string `json:"url,omitempty"`
	SessionID  string `json:"session_id,omitempty"`
	MarketSlug string `json:"market_slug,omitempty"`
}

// OnSale reports whether tickets for the show are currently purchasable.
func (s Show) OnSale() bool {
	return s.Status == StatusOnSale
}

// MarketShows is the response envelope for a market's show list.
type MarketShows struct {
	MarketID string `json:"market_id"`
	Query    string `json:"query,omitempty"`
	Shows    []Show `json:"shows"`
}

// MarketSummary is one entry from the market directory.
type MarketSummary struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}
