package models

import "time"

// InteractionRecord is the canonical unit of business data, one per raw CSV
// row. All fields are optional free text from the source export; typing and
// interpretation happen in the extraction layer. The ticket identifier
// (Check) is NOT unique across rows: duplicate export lines and multi-line
// descriptions produce several rows per ticket.
type InteractionRecord struct {
	Check               string `json:"check"`
	Source              string `json:"source"`
	Campaign            string `json:"campaign"`
	Branch              string `json:"branch"`
	Department          string `json:"department"`
	Agent               string `json:"agent"`
	Complexity          string `json:"complexity"`
	Status              string `json:"status"`
	Category            string `json:"category"`
	SubCategory         string `json:"sub_category"`
	Priority            string `json:"priority"`
	Urgency             string `json:"urgency"`
	DateCreated         string `json:"date_created"`
	LastModified        string `json:"last_modified"`
	DateClosed          string `json:"date_closed,omitempty"`
	ExpectedResponse    string `json:"expected_response,omitempty"`
	ActualResponse      string `json:"actual_response,omitempty"`
	ExpectedResolution  string `json:"expected_resolution,omitempty"`
	ActualResolution    string `json:"actual_resolution,omitempty"`
	ResponseEscalated   string `json:"response_escalated,omitempty"`
	ResolutionEscalated string `json:"resolution_escalated,omitempty"`
	ConsumerOrCustomer  string `json:"consumer_or_customer,omitempty"`
	BatchNumber         string `json:"batch_number,omitempty"`
	Brand               string `json:"brand,omitempty"`
	City                string `json:"city,omitempty"`
	Outlet              string `json:"outlet,omitempty"`
	PackSize            string `json:"pack_size,omitempty"`
	Phone               string `json:"phone,omitempty"`
	Email               string `json:"email,omitempty"`

	// Extra holds source columns the normalizer does not recognize, so new
	// export columns survive a round through the engine.
	Extra map[string]string `json:"extra,omitempty"`
}

// BreakdownEntry is one ranked row of a group-by view. Percent is of the
// group total, not of the grand total.
type BreakdownEntry struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// HeatmapCell is one SKU x brewery pair ranked by volume.
type HeatmapCell struct {
	Brand   string `json:"brand"`
	Brewery string `json:"brewery"`
	Count   int    `json:"count"`
}

// RiskHotspot is a department x sub-category pair ranked by volume and
// tagged with a risk tier.
type RiskHotspot struct {
	Department  string `json:"department"`
	SubCategory string `json:"sub_category"`
	Count       int    `json:"count"`
	RiskTier    string `json:"risk_tier"`
}

// TrendPoint is one day of the trailing 30-day series. Opened is a
// distinct-ticket count; Closed and Escalated are same-day counts.
type TrendPoint struct {
	Date      string `json:"date"`
	Opened    int    `json:"opened"`
	Closed    int    `json:"closed"`
	Escalated int    `json:"escalated"`
}

// Product, Brewery and Outlet are best-effort master data inferred from weak
// string signals in the records. They are enrichment, not an authoritative
// master; consumers must treat the default fallback entries accordingly.
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Brewery struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Outlet struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	Count int    `json:"count"`
}

// ValidationResult is the advisory verdict on fitness for use. Issues never
// block extraction; callers decide whether to act on them.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Issues  []string `json:"issues"`
}

// MetricsSnapshot is the derived, read-only output consumed by the
// presentation layer. It is recomputed from the cached records on demand and
// never persisted.
type MetricsSnapshot struct {
	TotalComplaints     int     `json:"total_complaints"`
	OpenComplaints      int     `json:"open_complaints"`
	ClosedComplaints    int     `json:"closed_complaints"`
	EscalatedComplaints int     `json:"escalated_complaints"`
	SLAAdherence        float64 `json:"sla_adherence"`
	EscalationRate      float64 `json:"escalation_rate"`
	ResolutionRate      float64 `json:"resolution_rate"`

	Categories []BreakdownEntry `json:"categories"`
	Sources    []BreakdownEntry `json:"sources"`
	Zones      []BreakdownEntry `json:"zones"`
	Heatmap    []HeatmapCell    `json:"heatmap"`
	Hotspots   []RiskHotspot    `json:"hotspots"`
	Trend      []TrendPoint     `json:"trend"`

	Products  []Product `json:"products"`
	Breweries []Brewery `json:"breweries"`
	Outlets   []Outlet  `json:"outlets"`

	Validation ValidationResult `json:"validation"`
}

// Dataset is one immutable parsed CSV held by the snapshot cache. A new
// successful parse fully replaces it; there is no incremental merge.
type Dataset struct {
	Records  []InteractionRecord `json:"records"`
	Headers  []string            `json:"headers"`
	Source   string              `json:"source"`
	LoadedAt time.Time           `json:"loaded_at"`
}

// LoadSummary reports one parse-and-replace run: raw rows seen, records
// kept, and per-row reasons for anything skipped. Skips are advisory; a
// load only fails outright on acquisition errors.
type LoadSummary struct {
	Source      string    `json:"source"`
	RowsParsed  int       `json:"rows_parsed"`
	RecordsKept int       `json:"records_kept"`
	SkipReasons []string  `json:"skip_reasons,omitempty"`
	LoadedAt    time.Time `json:"loaded_at"`
}
