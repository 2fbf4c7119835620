package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/brewpulse/backend/internal/csvx"
	"github.com/brewpulse/backend/internal/models"
	"github.com/brewpulse/backend/internal/snapshot"
)

// Loader is the single write path into the snapshot cache: parse, normalize,
// replace. Exactly one load runs at a time; readers keep seeing the previous
// dataset until the swap. Loads never fail on content — structural anomalies
// are absorbed by the parser and per-row problems become skip reasons —
// so the only hard failures live upstream in text acquisition.
type Loader struct {
	Cache  *snapshot.Cache
	Logger zerolog.Logger

	mu sync.Mutex
}

// LoadCSV parses raw CSV text and atomically replaces the cached dataset.
// The summary reports row volume and the per-row reasons anything was
// dropped, keeping the permissive-by-default policy auditable.
func (l *Loader) LoadCSV(text string, source string) models.LoadSummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	doc := csvx.Parse(text)

	records := make([]models.InteractionRecord, 0, len(doc.Rows))
	var skips []string
	for i, row := range doc.Rows {
		rec := NormalizeRecord(row)
		if emptyRecord(rec) {
			skips = append(skips, fmt.Sprintf("row %d: no usable fields", i+1))
			continue
		}
		records = append(records, rec)
	}

	ds := &models.Dataset{
		Records:  records,
		Headers:  doc.Headers,
		Source:   source,
		LoadedAt: time.Now().UTC(),
	}
	l.Cache.Replace(ds)

	l.Logger.Info().
		Str("source", source).
		Int("rows_parsed", len(doc.Rows)).
		Int("records_kept", len(records)).
		Int("rows_skipped", len(skips)).
		Dur("elapsed", time.Since(start)).
		Msg("dataset loaded")

	return models.LoadSummary{
		Source:      source,
		RowsParsed:  len(doc.Rows),
		RecordsKept: len(records),
		SkipReasons: skips,
		LoadedAt:    ds.LoadedAt,
	}
}

// emptyRecord reports a row where every canonical field and every extra
// column normalized to nothing. The parser already drops blank lines; this
// catches rows of bare separators.
func emptyRecord(r models.InteractionRecord) bool {
	fields := []string{
		r.Check, r.Source, r.Campaign, r.Branch, r.Department, r.Agent,
		r.Complexity, r.Status, r.Category, r.SubCategory, r.Priority,
		r.Urgency, r.DateCreated, r.LastModified, r.DateClosed,
		r.ExpectedResponse, r.ActualResponse, r.ExpectedResolution,
		r.ActualResolution, r.ResponseEscalated, r.ResolutionEscalated,
		r.ConsumerOrCustomer, r.BatchNumber, r.Brand, r.City, r.Outlet,
		r.PackSize, r.Phone, r.Email,
	}
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	for _, v := range r.Extra {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
