package model

import "math"

// UpcomingPreviewSize is how many upcoming events the dashboard shows.
const UpcomingPreviewSize = 3

// Dashboard is the overview shown on the landing page.
type Dashboard struct {
	TotalEvents        int      `json:"total_events"`
	TotalRegistrations int      `json:"total_registrations"`
	UpcomingCount      int      `json:"upcoming_count"`
	ParticipationRate  int      `json:"participation_rate"`
	Upcoming           []Event  `json:"upcoming"`
	CanCreateEvents    bool     `json:"can_create_events"`
	Notices            []Notice `json:"notices,omitempty"`
}

// Summarize computes dashboard statistics over aggregated events.
// ParticipationRate is the rounded share of all seats that are taken.
func Summarize(events []Event) Dashboard {
	d := Dashboard{TotalEvents: len(events), Upcoming: []Event{}}
	capacity := 0
	for i := range events {
		d.TotalRegistrations += events[i].Registrations
		capacity += events[i].MaxRegistrations
		if events[i].Status == StatusUpcoming {
			d.UpcomingCount++
			if len(d.Upcoming) < UpcomingPreviewSize {
				d.Upcoming = append(d.Upcoming, events[i])
			}
		}
	}
	if d.TotalEvents > 0 && capacity > 0 {
		d.ParticipationRate = int(math.Round(float64(d.TotalRegistrations) / float64(capacity) * 100))
	}
	return d
}
