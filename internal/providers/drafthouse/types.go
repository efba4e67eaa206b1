package drafthouse

import (
	"bytes"
	"encoding/json"
)

// The feed has gone through four shapes over the years. The structs below
// are the union: every field that any generation may omit is optional, and
// identifiers that flipped between JSON numbers and strings decode through
// flexString.

type feedResponse struct {
	Error  string          `json:"error"`
	Market *marketResponse `json:"Market"`
}

type marketResponse struct {
	MarketName string         `json:"MarketName"`
	MarketSlug string         `json:"MarketSlug"`
	Dates      []dateResponse `json:"Dates"`
}

type dateResponse struct {
	Date    string           `json:"Date"`
	Cinemas []cinemaResponse `json:"Cinemas"`
}

type cinemaResponse struct {
	CinemaID   flexString     `json:"CinemaId"`
	CinemaName string         `json:"CinemaName"`
	Films      []filmResponse `json:"Films"`
}

type filmResponse struct {
	FilmID   flexString       `json:"FilmId"`
	FilmName string           `json:"FilmName"`
	FilmSlug string           `json:"FilmSlug"`
	Series   []seriesResponse `json:"Series"`
}

type seriesResponse struct {
	Formats []formatResponse `json:"Formats"`
}

type formatResponse struct {
	Sessions []sessionResponse `json:"Sessions"`
}

type sessionResponse struct {
	SessionID     flexString `json:"SessionId"`
	SessionTime   string     `json:"SessionTime"`
	SessionStatus string     `json:"SessionStatus"`
}

type directoryResponse struct {
	Data *directoryData `json:"data"`
}

type directoryData struct {
	MarketSummaries []marketSummaryResponse `json:"marketSummaries"`
}

type marketSummaryResponse struct {
	Name string     `json:"name"`
	ID   flexString `json:"id"`
}

type seatPlanResponse struct {
	SeatLayoutData *seatLayoutData `json:"SeatLayoutData"`
}

type seatLayoutData struct {
	Areas []seatAreaResponse `json:"Areas"`
}

type seatAreaResponse struct {
	Rows []seatRowResponse `json:"Rows"`
}

type seatRowResponse struct {
	PhysicalName string         `json:"PhysicalName"`
	Seats        []seatResponse `json:"Seats"`
}

type seatResponse struct {
	Priority int `json:"Priority"`
	Status   int `json:"Status"`
}

// flexString decodes a JSON string or number into a string. Older feed
// generations encoded ids as numbers, newer ones as strings.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func (f flexString) String() string {
	return string(f)
}
