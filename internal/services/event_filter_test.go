package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farellandr/sponzo/internal/models"
)

func filterIDs(events []models.Event) []string {
	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestFilterEvents(t *testing.T) {
	events := []models.Event{
		{
			ID: "a", Title: "Tech Summit", Description: "AI talks", CollegeName: "MIT",
			Category: models.CategoryTechnical, Date: "2025-03-15", Location: "MIT Campus, Boston",
			ExpectedAttendees: 500, TargetAudience: []string{"Students", "Startups"},
		},
		{
			ID: "b", Title: "Cultural Fest", Description: "Music and dance", CollegeName: "Stanford",
			Category: models.CategoryCultural, Date: "2025-04-20", Location: "Palo Alto",
			ExpectedAttendees: 1000, TargetAudience: []string{"Young Adults"},
		},
		{
			ID: "c", Title: "Field Day", Description: "Games", CollegeName: "Boston University",
			Category: models.CategorySports, Date: "2025-05-01", Location: "Boston Common",
			ExpectedAttendees: 200, TargetAudience: []string{"Students"},
		},
	}

	tests := []struct {
		name    string
		filters models.EventFilters
		want    []string
	}{
		{"no filters", models.EventFilters{}, []string{"a", "b", "c"}},
		{"category", models.EventFilters{Category: models.CategoryCultural}, []string{"b"}},
		{"location case-insensitive", models.EventFilters{Location: "boston"}, []string{"a", "c"}},
		{"date range", models.EventFilters{DateFrom: "2025-04-01", DateTo: "2025-04-30"}, []string{"b"}},
		{"date bounds inclusive", models.EventFilters{DateFrom: "2025-03-15", DateTo: "2025-05-01"}, []string{"a", "b", "c"}},
		{"min attendees", models.EventFilters{MinAttendees: 500}, []string{"a", "b"}},
		{"search title", models.EventFilters{SearchQuery: "summit"}, []string{"a"}},
		{"search description", models.EventFilters{SearchQuery: "DANCE"}, []string{"b"}},
		{"search college", models.EventFilters{SearchQuery: "boston univ"}, []string{"c"}},
		{"audience intersection", models.EventFilters{TargetAudience: []string{"Startups", "Young Adults"}}, []string{"a", "b"}},
		{"conjunctive", models.EventFilters{Location: "boston", MinAttendees: 300}, []string{"a"}},
		{"no match", models.EventFilters{Category: models.CategoryFest}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filterIDs(FilterEvents(events, tt.filters)))
		})
	}
}
