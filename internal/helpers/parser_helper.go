package helpers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/sponzo/internal/models"
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// SplitList splits a comma separated value and drops empty items.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseEventFilters reads listing filters from the query string. Both
// ?target_audience=a,b and repeated ?target_audience=a&target_audience=b work.
func ParseEventFilters(c *gin.Context) (models.EventFilters, error) {
	filters := models.EventFilters{
		Category:    models.EventCategory(c.Query("category")),
		Location:    c.Query("location"),
		DateFrom:    c.Query("date_from"),
		DateTo:      c.Query("date_to"),
		SearchQuery: c.Query("q"),
	}
	if filters.Category != "" && !filters.Category.Valid() {
		return filters, models.NewValidationError("category", "unknown category "+string(filters.Category))
	}

	if raw := c.Query("min_attendees"); raw != "" {
		n, err := StringToInt(raw)
		if err != nil || n < 0 {
			return filters, models.NewValidationError("min_attendees", "must be a non-negative integer")
		}
		filters.MinAttendees = n
	}

	for _, v := range c.QueryArray("target_audience") {
		filters.TargetAudience = append(filters.TargetAudience, SplitList(v)...)
	}
	return filters, nil
}
