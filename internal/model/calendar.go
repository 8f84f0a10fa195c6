package model

import "time"

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Date      string  `json:"date"`
	Weekday   string  `json:"weekday"`
	HasEvents bool    `json:"has_events"`
	Events    []Event `json:"events"`
}

// CalendarMonth is a month of days with their events.
type CalendarMonth struct {
	Year     int           `json:"year"`
	Month    int           `json:"month"`
	Title    string        `json:"title"`
	Previous string        `json:"previous"`
	Next     string        `json:"next"`
	Days     []CalendarDay `json:"days"`
	Notices  []Notice      `json:"notices,omitempty"`
}

// BuildCalendar lays out every day of the given month and attaches the
// events dated on it.
func BuildCalendar(year int, month time.Month, events []Event) CalendarMonth {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)
	prev := first.AddDate(0, -1, 0)

	byDate := make(map[string][]Event)
	for i := range events {
		byDate[events[i].Date] = append(byDate[events[i].Date], events[i])
	}

	cal := CalendarMonth{
		Year:     first.Year(),
		Month:    int(first.Month()),
		Title:    first.Format("January 2006"),
		Previous: prev.Format("2006-01"),
		Next:     next.Format("2006-01"),
	}
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		key := d.Format(DateLayout)
		dayEvents := byDate[key]
		if dayEvents == nil {
			dayEvents = []Event{}
		}
		cal.Days = append(cal.Days, CalendarDay{
			Date:      key,
			Weekday:   d.Weekday().String()[:3],
			HasEvents: len(dayEvents) > 0,
			Events:    dayEvents,
		})
	}
	return cal
}
