package service

import (
	"fmt"

	"github.com/brewpulse/backend/internal/models"
)

// completenessThreshold is the minimum acceptable completeness ratio. The
// source system approximates completeness by the resolution rate; the two
// concepts are unrelated, but the proxy is kept for compatibility with the
// dashboards built on it.
const completenessThreshold = 80.0

// Validate runs every post-extraction sanity check and accumulates findings
// without short-circuiting. The verdict is advisory: extraction has already
// produced its best-effort result, and callers decide whether to block.
func (e *Extractor) Validate(snap models.MetricsSnapshot) models.ValidationResult {
	var issues []string

	if len(e.Records) == 0 {
		issues = append(issues, "no data: dataset contains no records")
	}

	if !e.hasParseableDateRange() {
		issues = append(issues, "date range: no record carries a parseable creation date")
	}

	if snap.TotalComplaints == 0 {
		issues = append(issues, "no complaints: total complaint count is zero")
	}

	if snap.ResolutionRate < completenessThreshold {
		issues = append(issues, fmt.Sprintf("completeness: resolution rate %.1f%% is below the %.0f%% threshold", snap.ResolutionRate, completenessThreshold))
	}

	return models.ValidationResult{IsValid: len(issues) == 0, Issues: issues}
}

func (e *Extractor) hasParseableDateRange() bool {
	for _, r := range e.Records {
		if _, ok := parseDate(r.DateCreated); ok {
			return true
		}
	}
	return false
}
