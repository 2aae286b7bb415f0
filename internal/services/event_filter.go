package services

import (
	"slices"
	"strings"

	"github.com/farellandr/sponzo/internal/models"
)

// FilterEvents keeps the events matching every non-zero field of filters.
// Dates are compared as strings, so they must be YYYY-MM-DD.
func FilterEvents(events []models.Event, filters models.EventFilters) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if matches(e, filters) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e models.Event, f models.EventFilters) bool {
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Location != "" && !containsFold(e.Location, f.Location) {
		return false
	}
	if f.DateFrom != "" && e.Date < f.DateFrom {
		return false
	}
	if f.DateTo != "" && e.Date > f.DateTo {
		return false
	}
	if f.MinAttendees > 0 && e.ExpectedAttendees < f.MinAttendees {
		return false
	}
	if f.SearchQuery != "" {
		q := f.SearchQuery
		if !containsFold(e.Title, q) && !containsFold(e.Description, q) && !containsFold(e.CollegeName, q) {
			return false
		}
	}
	if len(f.TargetAudience) > 0 {
		found := false
		for _, audience := range f.TargetAudience {
			if slices.Contains(e.TargetAudience, audience) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
