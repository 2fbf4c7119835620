package service

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/brewpulse/backend/internal/snapshot"
)

func newTestLoader() (*Loader, *snapshot.Cache) {
	cache := snapshot.NewCache(0)
	return &Loader{Cache: cache, Logger: zerolog.Nop()}, cache
}

func TestLoadCSVReplacesCache(t *testing.T) {
	loader, cache := newTestLoader()

	first := loader.LoadCSV("Check,Status\nT1,Open\n", "first.csv")
	if first.RecordsKept != 1 {
		t.Fatalf("expected 1 record, got %+v", first)
	}
	if cache.RecordCount() != 1 {
		t.Fatalf("cache not replaced: %d records", cache.RecordCount())
	}

	second := loader.LoadCSV("Check,Status\nT2,Open\nT3,Closed\n", "second.csv")
	if second.RecordsKept != 2 {
		t.Fatalf("expected 2 records, got %+v", second)
	}
	ds := cache.Current()
	if ds == nil || ds.Source != "second.csv" || len(ds.Records) != 2 {
		t.Fatalf("second load must fully replace the first: %+v", ds)
	}
	if ds.Records[0].Check != "T2" {
		t.Fatalf("old records leaked into new dataset: %+v", ds.Records)
	}
}

func TestLoadCSVEmptyInput(t *testing.T) {
	loader, cache := newTestLoader()
	summary := loader.LoadCSV("", "empty.csv")
	if summary.RowsParsed != 0 || summary.RecordsKept != 0 {
		t.Fatalf("empty input must load zero records: %+v", summary)
	}
	e := NewExtractor(cache.Records(), "")
	res := e.Validate(e.Snapshot())
	if res.IsValid {
		t.Fatalf("empty dataset must validate as unfit")
	}
}

func TestLoadCSVMultilineField(t *testing.T) {
	loader, cache := newTestLoader()
	text := "Check,Status,Description\nT1,Open,\"line one\nline two\"\n"
	summary := loader.LoadCSV(text, "inline")
	if summary.RecordsKept != 1 {
		t.Fatalf("quoted newline split the record: %+v", summary)
	}
	rec := cache.Records()[0]
	if rec.Extra["Description"] != "line one\nline two" {
		t.Fatalf("multi-line description mangled: %q", rec.Extra["Description"])
	}
}

func TestLoadCSVSkipReasons(t *testing.T) {
	loader, _ := newTestLoader()
	// Content stranded beyond the header columns keeps the row alive in the
	// parser but leaves no usable fields after normalization.
	summary := loader.LoadCSV("Check,Status\nT1,Open\n,,junk\n", "inline")
	if summary.RecordsKept != 1 {
		t.Fatalf("expected 1 kept record, got %+v", summary)
	}
	if len(summary.SkipReasons) == 0 {
		t.Fatalf("skipped row must be reported in skip reasons")
	}
}
