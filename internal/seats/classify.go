package seats

// Availability is the outcome of probing one session's seat map.
type Availability string

const (
	Available Availability = "available"
	SoldOut   Availability = "sold-out"
)

// Seat is one seat cell from the seat map. Priority and Status both equal to
// zero means unreserved and unrestricted.
type Seat struct {
	Priority int
	Status   int
}

// Row is one physical row of seats, scanned left to right in feed order.
type Row struct {
	Label string
	Seats []Seat
}

// Area groups rows; the feed splits a cinema into one or more areas.
type Area struct {
	Rows []Row
}

// SeatPlan is the per-session seating grid returned by the seat-map endpoint.
type SeatPlan struct {
	Areas []Area
}

// Classify reduces a seat plan to available or sold-out. A row is eligible
// when its label compares strictly greater than minimumRowLabel; the
// comparison is lexicographic to match the feed's row-labeling convention.
// Within an eligible row a contiguous run of unreserved, unrestricted seats
// of length requiredSeats classifies the session available; the first
// qualifying run wins and scanning stops. No qualifying run in any row means
// sold-out.
func Classify(plan SeatPlan, requiredSeats int, minimumRowLabel string) Availability {
	if requiredSeats < 1 {
		requiredSeats = 1
	}

	for _, area := range plan.Areas {
		for _, row := range area.Rows {
			if row.Label <= minimumRowLabel {
				continue
			}

			run := 0
			for _, seat := range row.Seats {
				if seat.Priority == 0 && seat.Status == 0 {
					run++
					if run >= requiredSeats {
						return Available
					}
				} else {
					run = 0
				}
			}
		}
	}
	return SoldOut
}
