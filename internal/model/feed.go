package model

// Feed is the event list returned by aggregations and mutations, together
// with the notices produced while building it. A mutation's own notice
// always comes first.
type Feed struct {
	Notices []Notice     `json:"notices"`
	Events  []Event      `json:"events"`
	Counts  StatusCounts `json:"counts"`
}

// NewFeed filters events and counts the unfiltered list by status.
func NewFeed(events []Event, f Filter) *Feed {
	return &Feed{
		Notices: []Notice{},
		Events:  f.Apply(events),
		Counts:  CountByStatus(events),
	}
}
