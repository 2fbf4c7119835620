package service

import (
	"sort"
	"strings"
	"time"

	"github.com/brewpulse/backend/internal/models"
)

// DefaultExcludedCampaign tags third-party logistics traffic whose volume is
// not attributable to product quality. Records carrying it are removed
// before any headline metric is computed.
const DefaultExcludedCampaign = "3PL"

// Elevated priority tiers counted as escalations.
const (
	priorityCritical = "critical risk"
	priorityHigh     = "high risk"
)

const (
	topCategories = 5
	topSources    = 5
	topZones      = 8
	topHeatmap    = 8
)

// Extractor computes every derived view off one immutable record set. It is
// pure and re-entrant: no shared mutable state, safe for any number of
// concurrent callers. A malformed row is never fatal; it is excluded from
// whichever aggregate it breaks while still counting everywhere else.
type Extractor struct {
	Records          []models.InteractionRecord
	ExcludedCampaign string
	// Now anchors the trend window; the zero value means the wall clock.
	Now time.Time
}

func NewExtractor(records []models.InteractionRecord, excludedCampaign string) *Extractor {
	if excludedCampaign == "" {
		excludedCampaign = DefaultExcludedCampaign
	}
	return &Extractor{Records: records, ExcludedCampaign: excludedCampaign}
}

func (e *Extractor) now() time.Time {
	if e.Now.IsZero() {
		return time.Now()
	}
	return e.Now
}

// filtered removes excluded-campaign records. Filtering happens BEFORE any
// deduplication: a ticket whose only rows are excluded must vanish entirely,
// which deduping first would not guarantee.
func (e *Extractor) filtered() []models.InteractionRecord {
	out := make([]models.InteractionRecord, 0, len(e.Records))
	for _, r := range e.Records {
		if strings.EqualFold(strings.TrimSpace(r.Campaign), e.ExcludedCampaign) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// uniqueCount is the distinct-ticket counting semantic; recordCount views
// (sources, zones) deliberately stay row-based. The two must not be mixed.
func uniqueCount(records []models.InteractionRecord) int {
	seen := map[string]struct{}{}
	for _, r := range records {
		seen[r.Check] = struct{}{}
	}
	return len(seen)
}

func isElevated(priority string) bool {
	p := strings.ToLower(strings.TrimSpace(priority))
	return p == priorityCritical || p == priorityHigh
}

func statusIs(r models.InteractionRecord, status string) bool {
	return strings.EqualFold(strings.TrimSpace(r.Status), status)
}

// TotalComplaints filters the excluded campaign first, then counts distinct
// ticket identifiers among the remainder.
func (e *Extractor) TotalComplaints() int {
	return uniqueCount(e.filtered())
}

func (e *Extractor) OpenComplaints() int {
	return e.uniqueWhere(func(r models.InteractionRecord) bool { return statusIs(r, "open") })
}

func (e *Extractor) ClosedComplaints() int {
	return e.uniqueWhere(func(r models.InteractionRecord) bool { return statusIs(r, "closed") })
}

func (e *Extractor) EscalatedComplaints() int {
	return e.uniqueWhere(func(r models.InteractionRecord) bool { return isElevated(r.Priority) })
}

func (e *Extractor) uniqueWhere(keep func(models.InteractionRecord) bool) int {
	var match []models.InteractionRecord
	for _, r := range e.filtered() {
		if keep(r) {
			match = append(match, r)
		}
	}
	return uniqueCount(match)
}

// SLAAdherence is the percentage of filtered records whose actual-response
// timestamp falls strictly after their creation timestamp. Records missing
// either timestamp leave both numerator and denominator untouched.
func (e *Extractor) SLAAdherence() float64 {
	met, eligible := 0, 0
	for _, r := range e.filtered() {
		created, okC := parseDate(r.DateCreated)
		responded, okR := parseDate(r.ActualResponse)
		if !okC || !okR {
			continue
		}
		eligible++
		if responded.After(created) {
			met++
		}
	}
	return percent(met, eligible)
}

// EscalationRate divides elevated-priority record volume by the
// unique-ticket total. The asymmetric numerator/denominator pairing is the
// defined contract, not an accident.
func (e *Extractor) EscalationRate() float64 {
	elevated := 0
	for _, r := range e.filtered() {
		if isElevated(r.Priority) {
			elevated++
		}
	}
	return percent(elevated, e.TotalComplaints())
}

func (e *Extractor) ResolutionRate() float64 {
	return percent(e.ClosedComplaints(), e.TotalComplaints())
}

// CategoryBreakdown ranks distinct-ticket volume per category, top 5.
func (e *Extractor) CategoryBreakdown() []models.BreakdownEntry {
	return breakdown(e.filtered(), topCategories, true, func(r models.InteractionRecord) string {
		return strings.TrimSpace(r.Category)
	})
}

// SourceBreakdown is documented as record-based: raw volume per channel,
// duplicates included. Top 5.
func (e *Extractor) SourceBreakdown() []models.BreakdownEntry {
	return breakdown(e.filtered(), topSources, false, func(r models.InteractionRecord) string {
		return strings.TrimSpace(r.Source)
	})
}

// ZoneBreakdown is record-based volume per city, top 8.
func (e *Extractor) ZoneBreakdown() []models.BreakdownEntry {
	return breakdown(e.filtered(), topZones, false, func(r models.InteractionRecord) string {
		return strings.TrimSpace(r.City)
	})
}

// breakdown groups records by label and ranks descending. Percentages are of
// the group total (records or tickets that carried a label), not of the
// grand total.
func breakdown(records []models.InteractionRecord, topN int, unique bool, label func(models.InteractionRecord) string) []models.BreakdownEntry {
	counts := map[string]int{}
	seen := map[string]struct{}{}
	total := 0
	for _, r := range records {
		l := label(r)
		if l == "" {
			continue
		}
		if unique {
			key := l + "\x00" + r.Check
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
		}
		counts[l]++
		total++
	}
	entries := make([]models.BreakdownEntry, 0, len(counts))
	for l, n := range counts {
		entries = append(entries, models.BreakdownEntry{Label: l, Count: n, Percent: percent(n, total)})
	}
	sortEntries(entries)
	if len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}

// Heatmap ranks SKU x brewery pairs by record volume, top 8. Both axes come
// from best-effort inference, so the default fallbacks show up as cells.
func (e *Extractor) Heatmap() []models.HeatmapCell {
	counts := map[[2]string]int{}
	for _, r := range e.filtered() {
		pair := [2]string{inferBrand(r), inferBrewery(r)}
		counts[pair]++
	}
	cells := make([]models.HeatmapCell, 0, len(counts))
	for pair, n := range counts {
		cells = append(cells, models.HeatmapCell{Brand: pair[0], Brewery: pair[1], Count: n})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Count != cells[j].Count {
			return cells[i].Count > cells[j].Count
		}
		if cells[i].Brand != cells[j].Brand {
			return cells[i].Brand < cells[j].Brand
		}
		return cells[i].Brewery < cells[j].Brewery
	})
	if len(cells) > topHeatmap {
		cells = cells[:topHeatmap]
	}
	return cells
}

// Snapshot assembles the full read-only view model, including the advisory
// validation verdict. It is recomputed from scratch on every call.
func (e *Extractor) Snapshot() models.MetricsSnapshot {
	snap := models.MetricsSnapshot{
		TotalComplaints:     e.TotalComplaints(),
		OpenComplaints:      e.OpenComplaints(),
		ClosedComplaints:    e.ClosedComplaints(),
		EscalatedComplaints: e.EscalatedComplaints(),
		SLAAdherence:        e.SLAAdherence(),
		EscalationRate:      e.EscalationRate(),
		ResolutionRate:      e.ResolutionRate(),
		Categories:          e.CategoryBreakdown(),
		Sources:             e.SourceBreakdown(),
		Zones:               e.ZoneBreakdown(),
		Heatmap:             e.Heatmap(),
		Hotspots:            e.Hotspots(),
		Trend:               e.Trend(),
		Products:            e.Products(),
		Breweries:           e.Breweries(),
		Outlets:             e.Outlets(),
	}
	snap.Validation = e.Validate(snap)
	return snap
}

func sortEntries(entries []models.BreakdownEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Label < entries[j].Label
	})
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
