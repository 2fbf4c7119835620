package service

import (
	"strings"
	"testing"

	"github.com/brewpulse/backend/internal/models"
)

func TestValidateEmptyDataset(t *testing.T) {
	e := NewExtractor(nil, "")
	res := e.Validate(e.Snapshot())
	if res.IsValid {
		t.Fatalf("empty dataset must be invalid")
	}
	// Every check is independent, so an empty dataset trips all four.
	for _, want := range []string{"no data", "date range", "no complaints", "completeness"} {
		found := false
		for _, issue := range res.Issues {
			if strings.Contains(issue, want) {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected a %q issue, got %v", want, res.Issues)
		}
	}
	if len(res.Issues) != 4 {
		t.Fatalf("expected four issues, got %v", res.Issues)
	}
}

func TestValidateAccumulatesWithoutShortCircuit(t *testing.T) {
	records := []models.InteractionRecord{
		{Check: "T1", Status: "Open", DateCreated: "garbage"},
	}
	e := NewExtractor(records, "")
	res := e.Validate(e.Snapshot())
	if res.IsValid {
		t.Fatalf("expected invalid verdict")
	}
	// Unparseable dates and low completeness must both be reported.
	var hasDates, hasCompleteness bool
	for _, issue := range res.Issues {
		if strings.Contains(issue, "date range") {
			hasDates = true
		}
		if strings.Contains(issue, "completeness") {
			hasCompleteness = true
		}
	}
	if !hasDates || !hasCompleteness {
		t.Fatalf("expected date-range and completeness issues, got %v", res.Issues)
	}
}

func TestValidateHealthyDataset(t *testing.T) {
	records := []models.InteractionRecord{
		{Check: "T1", Status: "Closed", DateCreated: "2025-01-01"},
		{Check: "T2", Status: "Closed", DateCreated: "2025-01-02"},
		{Check: "T3", Status: "Closed", DateCreated: "2025-01-03"},
		{Check: "T4", Status: "Closed", DateCreated: "2025-01-04"},
		{Check: "T5", Status: "Open", DateCreated: "2025-01-05"},
	}
	e := NewExtractor(records, "")
	res := e.Validate(e.Snapshot())
	if !res.IsValid {
		t.Fatalf("expected valid dataset, issues: %v", res.Issues)
	}
}

func TestValidateCompletenessIsResolutionRateProxy(t *testing.T) {
	// 3 of 4 closed: 75%, just under the threshold.
	records := []models.InteractionRecord{
		{Check: "T1", Status: "Closed", DateCreated: "2025-01-01"},
		{Check: "T2", Status: "Closed", DateCreated: "2025-01-01"},
		{Check: "T3", Status: "Closed", DateCreated: "2025-01-01"},
		{Check: "T4", Status: "Open", DateCreated: "2025-01-01"},
	}
	e := NewExtractor(records, "")
	res := e.Validate(e.Snapshot())
	if res.IsValid {
		t.Fatalf("75%% resolution rate must trip the completeness proxy")
	}
}
