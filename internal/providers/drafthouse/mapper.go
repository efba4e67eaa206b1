package drafthouse

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"pancake-service/internal/domain/shows"
	"pancake-service/internal/seats"
)

var (
	wordPattern     = regexp.MustCompile(`\w\S*`)
	nonWordPattern  = regexp.MustCompile(`[^\w ]+`)
	spaceRunPattern = regexp.MustCompile(` +`)
)

// mapMarket flattens the nested Market document into one Show per leaf
// Session: date carried down from the Dates level, cinema identity from the
// Cinemas level, film identity from the Films level. Leaves missing cinema
// or film identity are skipped rather than failing the whole document.
func (c *Client) mapMarket(market *marketResponse) []shows.Show {
	list := make([]shows.Show, 0)
	if market == nil {
		return list
	}

	for _, date := range market.Dates {
		for _, cinema := range date.Cinemas {
			cinemaID := cinema.CinemaID.String()
			if cinemaID == "" || cinema.CinemaName == "" {
				continue
			}
			cinemaName := cinemaBrandPrefix + cinema.CinemaName
			cinemaURL := c.theaterBaseURL + "/" + slugify(cinema.CinemaName)

			for _, film := range cinema.Films {
				if film.FilmName == "" {
					continue
				}
				title := capwords(strings.ToLower(film.FilmName))

				for _, series := range film.Series {
					for _, format := range series.Formats {
						for _, session := range format.Sessions {
							list = append(list, c.mapSession(
								session, date.Date, market.MarketSlug,
								cinemaID, cinemaName, cinemaURL,
								film, title,
							))
						}
					}
				}
			}
		}
	}
	return list
}

func (c *Client) mapSession(session sessionResponse, date, marketSlug, cinemaID, cinemaName, cinemaURL string, film filmResponse, title string) shows.Show {
	sessionID := session.SessionID.String()

	// Ticketing URL exists only for purchasable sessions; this is a hard
	// branch, not a default.
	var url string
	if session.SessionStatus == shows.StatusOnSale {
		url = c.ticketingBaseURL + "/" + cinemaID + "/" + sessionID
	}

	return shows.Show{
		Title:      title,
		FilmUID:    film.FilmID.String(),
		FilmSlug:   film.FilmSlug,
		Cinema:     cinemaName,
		CinemaURL:  cinemaURL,
		CinemaID:   cinemaID,
		Date:       date,
		Time:       session.SessionTime,
		Status:     session.SessionStatus,
		URL:        url,
		SessionID:  sessionID,
		MarketSlug: marketSlug,
	}
}

// capwords capitalizes the first letter of every whitespace-delimited token,
// matching the feed UI's title casing ("ALIEN: ROMULUS" -> lowercased ->
// "Alien: Romulus"). Idempotent.
func capwords(text string) string {
	return wordPattern.ReplaceAllStringFunc(text, func(token string) string {
		r, size := utf8.DecodeRuneInString(token)
		return string(unicode.ToUpper(r)) + token[size:]
	})
}

// slugify lowercases, strips non-word/non-space characters, and collapses
// space runs to single hyphens, producing the theater URL path segment.
func slugify(text string) string {
	text = strings.ToLower(text)
	text = nonWordPattern.ReplaceAllString(text, "")
	return spaceRunPattern.ReplaceAllString(text, "-")
}

func mapSeatPlan(resp seatPlanResponse) seats.SeatPlan {
	var plan seats.SeatPlan
	if resp.SeatLayoutData == nil {
		return plan
	}
	plan.Areas = make([]seats.Area, 0, len(resp.SeatLayoutData.Areas))
	for _, area := range resp.SeatLayoutData.Areas {
		rows := make([]seats.Row, 0, len(area.Rows))
		for _, row := range area.Rows {
			cells := make([]seats.Seat, 0, len(row.Seats))
			for _, cell := range row.Seats {
				cells = append(cells, seats.Seat{Priority: cell.Priority, Status: cell.Status})
			}
			rows = append(rows, seats.Row{Label: row.PhysicalName, Seats: cells})
		}
		plan.Areas = append(plan.Areas, seats.Area{Rows: rows})
	}
	return plan
}
