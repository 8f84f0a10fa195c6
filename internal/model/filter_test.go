package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvents() []Event {
	return []Event{
		{ID: "1", Title: "Science Fair", Description: "Projects from every grade", Category: "Academic", Status: StatusUpcoming},
		{ID: "2", Title: "Football Final", Description: "Inter-school match", Category: "Sports", Status: StatusOngoing},
		{ID: "3", Title: "Cultural Evening", Description: "Music and DANCE", Category: "Cultural", Status: StatusCompleted},
		{ID: "4", Title: "Robotics Workshop", Description: "", Category: "Workshop", Status: StatusUpcoming},
	}
}

func ids(events []Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestFilter_Apply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"zero value keeps all", Filter{}, []string{"1", "2", "3", "4"}},
		{"All keeps all", Filter{Category: "All", Status: "All"}, []string{"1", "2", "3", "4"}},
		{"category", Filter{Category: "Sports"}, []string{"2"}},
		{"status", Filter{Status: "upcoming"}, []string{"1", "4"}},
		{"search title case-insensitive", Filter{Search: "science"}, []string{"1"}},
		{"search description", Filter{Search: "dance"}, []string{"3"}},
		{"search and status", Filter{Search: "o", Status: "upcoming"}, []string{"1", "4"}},
		{"category and status disagree", Filter{Category: "Sports", Status: "completed"}, []string{}},
		{"unknown category", Filter{Category: "Chess"}, []string{}},
		{"search misses", Filter{Search: "basketball"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(sampleEvents())
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_Active(t *testing.T) {
	assert.False(t, Filter{}.Active())
	assert.False(t, Filter{Category: "All", Status: "All"}.Active())
	assert.True(t, Filter{Search: "x"}.Active())
	assert.True(t, Filter{Status: "ongoing"}.Active())
}

func TestFilter_ApplyInactiveCopies(t *testing.T) {
	events := sampleEvents()

	got := Filter{Category: FilterAll}.Apply(events)
	require.Len(t, got, len(events))
	got[0].Title = "changed"
	assert.NotEqual(t, "changed", events[0].Title)

	assert.NotNil(t, Filter{}.Apply(nil))
}

func TestFilter_SearchUnicodeFolding(t *testing.T) {
	events := []Event{{ID: "1", Title: "STRASSE Fest"}, {ID: "2", Title: "Ünity Day"}}

	assert.Equal(t, []string{"2"}, ids(Filter{Search: "ünity"}.Apply(events)))
	assert.Equal(t, []string{"1"}, ids(Filter{Search: "strasse"}.Apply(events)))
}

func TestCountByStatus(t *testing.T) {
	c := CountByStatus(sampleEvents())

	assert.Equal(t, StatusCounts{Total: 4, Upcoming: 2, Ongoing: 1, Completed: 1}, c)
}

func TestNewFeed_CountsUnfilteredList(t *testing.T) {
	events := []Event{
		{ID: "1", Title: "Chess Open", Category: "Competition", Status: StatusUpcoming},
		{ID: "2", Title: "Art Show", Category: "Cultural", Status: StatusCompleted},
	}

	feed := NewFeed(events, Filter{Category: "Cultural"})

	assert.Len(t, feed.Events, 1)
	assert.Equal(t, "2", feed.Events[0].ID)
	assert.Equal(t, StatusCounts{Total: 2, Upcoming: 1, Completed: 1}, feed.Counts)
	assert.NotNil(t, feed.Notices)
}
