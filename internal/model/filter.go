package model

import (
	"strings"

	"golang.org/x/text/cases"
)

// FilterAll disables a filter dimension.
const FilterAll = "All"

// Filter narrows an event list. Empty or "All" fields match everything.
type Filter struct {
	Search   string
	Category string
	Status   string
}

// Active reports whether any dimension narrows the list.
func (f Filter) Active() bool {
	return f.Search != "" || !isAll(f.Category) || !isAll(f.Status)
}

// Matches reports whether e passes every dimension of f. Search is a
// case-insensitive substring match on title or description.
func (f Filter) Matches(e *Event) bool {
	if !isAll(f.Category) && e.Category != f.Category {
		return false
	}
	if !isAll(f.Status) && string(e.Status) != f.Status {
		return false
	}
	if f.Search == "" {
		return true
	}
	fold := cases.Fold()
	term := fold.String(f.Search)
	return strings.Contains(fold.String(e.Title), term) ||
		strings.Contains(fold.String(e.Description), term)
}

// Apply returns the events that match f, preserving order.
func (f Filter) Apply(events []Event) []Event {
	if !f.Active() {
		return append(make([]Event, 0, len(events)), events...)
	}
	out := make([]Event, 0, len(events))
	for i := range events {
		if f.Matches(&events[i]) {
			out = append(out, events[i])
		}
	}
	return out
}

func isAll(v string) bool {
	return v == "" || v == FilterAll
}

// StatusCounts tallies a list by status.
type StatusCounts struct {
	Total     int `json:"total"`
	Upcoming  int `json:"upcoming"`
	Ongoing   int `json:"ongoing"`
	Completed int `json:"completed"`
}

// CountByStatus tallies events by status.
func CountByStatus(events []Event) StatusCounts {
	c := StatusCounts{Total: len(events)}
	for i := range events {
		switch events[i].Status {
		case StatusUpcoming:
			c.Upcoming++
		case StatusOngoing:
			c.Ongoing++
		case StatusCompleted:
			c.Completed++
		}
	}
	return c
}
