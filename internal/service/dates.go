package service

import (
	"strings"
	"time"
)

// Source exports mix ISO timestamps with day-first regional formats. Order
// matters: the more specific layouts must be tried before the date-only ones.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
	"02-01-2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2/1/2006 15:04",
	"2/1/2006",
}

// parseDate tries every known layout. Unparseable values are noise, not
// errors: callers drop the value from the one aggregate that needed it.
func parseDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
