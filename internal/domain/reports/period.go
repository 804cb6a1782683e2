package reports

import "time"

// Period is a half-open date range [From, To).
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.From) && t.Before(p.To)
}

// HalfMonth returns the commission period covering today: days 1-15 or
// day 16 through end of month.
func HalfMonth(today time.Time) Period {
	year, month, day := today.Date()
	loc := today.Location()

	if day <= 15 {
		return Period{
			From: time.Date(year, month, 1, 0, 0, 0, 0, loc),
			To:   time.Date(year, month, 16, 0, 0, 0, 0, loc),
		}
	}
	return Period{
		From: time.Date(year, month, 16, 0, 0, 0, 0, loc),
		To:   time.Date(year, month+1, 1, 0, 0, 0, 0, loc),
	}
}
