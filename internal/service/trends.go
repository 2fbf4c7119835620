package service

import (
	"time"

	"github.com/brewpulse/backend/internal/models"
)

const trendDays = 30

// Trend builds the trailing 30-day daily series, inclusive of today. Opened
// is a distinct-ticket count keyed on creation date; Closed is keyed on
// closure date; Escalated is creation-dated records in an elevated tier.
// Dates that fail to parse, or sit more than a day in the future, are
// discarded as noise without dropping the record from other aggregates.
func (e *Extractor) Trend() []models.TrendPoint {
	now := e.now()
	horizon := now.Add(24 * time.Hour)

	opened := map[string]map[string]struct{}{}
	escalated := map[string]map[string]struct{}{}
	closed := map[string]map[string]struct{}{}

	mark := func(buckets map[string]map[string]struct{}, day string, ticket string) {
		if buckets[day] == nil {
			buckets[day] = map[string]struct{}{}
		}
		buckets[day][ticket] = struct{}{}
	}

	for _, r := range e.filtered() {
		if created, ok := parseDate(r.DateCreated); ok && created.Before(horizon) {
			day := dayKey(created)
			mark(opened, day, r.Check)
			if isElevated(r.Priority) {
				mark(escalated, day, r.Check)
			}
		}
		if closedAt, ok := parseDate(r.DateClosed); ok && closedAt.Before(horizon) {
			mark(closed, dayKey(closedAt), r.Check)
		}
	}

	points := make([]models.TrendPoint, 0, trendDays)
	for i := trendDays - 1; i >= 0; i-- {
		day := dayKey(now.AddDate(0, 0, -i))
		points = append(points, models.TrendPoint{
			Date:      day,
			Opened:    len(opened[day]),
			Closed:    len(closed[day]),
			Escalated: len(escalated[day]),
		})
	}
	return points
}
