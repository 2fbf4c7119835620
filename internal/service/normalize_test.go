package service

import (
	"testing"
)

func TestNormalizeRecordCanonicalColumns(t *testing.T) {
	rec := NormalizeRecord(map[string]string{
		"Check":        "T1",
		"Status":       " Open ",
		"Priority":     "High Risk",
		"Date Created": "2025-01-01",
		"Sub Category": "Off Taste",
	})
	if rec.Check != "T1" || rec.Status != "Open" || rec.Priority != "High Risk" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.DateCreated != "2025-01-01" || rec.SubCategory != "Off Taste" {
		t.Fatalf("aliased columns not mapped: %+v", rec)
	}
}

func TestNormalizeRecordAliases(t *testing.T) {
	rec := NormalizeRecord(map[string]string{
		"Ticket ID":      "T9",
		"Channel":        "Hotline",
		"Brewery":        "Taloja",
		"Closed At":      "2025-02-01",
		"SKU":            "Kingfisher Strong",
		"Contact Number": "9999999999",
	})
	if rec.Check != "T9" || rec.Source != "Hotline" || rec.Branch != "Taloja" {
		t.Fatalf("aliases not resolved: %+v", rec)
	}
	if rec.DateClosed != "2025-02-01" || rec.Brand != "Kingfisher Strong" || rec.Phone != "9999999999" {
		t.Fatalf("aliases not resolved: %+v", rec)
	}
}

func TestNormalizeRecordExtras(t *testing.T) {
	rec := NormalizeRecord(map[string]string{
		"Check":          "T1",
		"Mystery Column": "kept",
	})
	if rec.Extra["Mystery Column"] != "kept" {
		t.Fatalf("unrecognized column must survive in Extra: %+v", rec.Extra)
	}
	if _, ok := rec.Extra["Check"]; ok {
		t.Fatalf("mapped columns must not leak into Extra")
	}
}

func TestNormalizeRecordDefensiveDefaults(t *testing.T) {
	rec := NormalizeRecord(map[string]string{})
	if rec.Check != "" || rec.Status != "" || rec.Extra != nil {
		t.Fatalf("empty row must normalize to zero values: %+v", rec)
	}
}
