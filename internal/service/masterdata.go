package service

import (
	"sort"
	"strings"

	"github.com/brewpulse/backend/internal/models"
	"github.com/brewpulse/backend/internal/utils"
)

// Master data is synthesized from weak string signals: substring matches
// against a short fixed vocabulary of known brand and brewery names, with an
// explicit default when nothing matches. This is best-effort enrichment for
// the dashboard, not an authoritative master; swap these vocabularies for a
// real master-data join without touching the extraction core.

const (
	defaultBrand   = "Unclassified Brand"
	defaultBrewery = "Unassigned Brewery"
	defaultOutlet  = "Unknown Outlet"
)

type vocabEntry struct {
	signal string
	name   string
}

// Order matters: more specific signals first.
var brandVocabulary = []vocabEntry{
	{"ultra", "Kingfisher Ultra"},
	{"strong", "Kingfisher Strong"},
	{"premium", "Kingfisher Premium"},
	{"pilsner", "London Pilsner"},
	{"heineken", "Heineken"},
	{"kingfisher", "Kingfisher Premium"},
}

var breweryVocabulary = []vocabEntry{
	{"taloja", "Taloja Brewery"},
	{"khopoli", "Khopoli Brewery"},
	{"nashik", "Nashik Brewery"},
	{"aurangabad", "Aurangabad Brewery"},
	{"patna", "Patna Brewery"},
	{"mysore", "Mysore Brewery"},
	{"chennai", "Chennai Brewery"},
}

func matchVocabulary(text string, vocab []vocabEntry, fallback string) string {
	t := strings.ToLower(text)
	for _, v := range vocab {
		if strings.Contains(t, v.signal) {
			return v.name
		}
	}
	return fallback
}

func inferBrand(r models.InteractionRecord) string {
	return matchVocabulary(r.Brand, brandVocabulary, defaultBrand)
}

func inferBrewery(r models.InteractionRecord) string {
	return matchVocabulary(r.Branch, breweryVocabulary, defaultBrewery)
}

// Products lists the inferred SKUs with record volume, every id synthesized
// deterministically so recomputing the snapshot never shuffles identifiers.
func (e *Extractor) Products() []models.Product {
	counts := e.countInferred(inferBrand)
	out := make([]models.Product, 0, len(counts))
	for name, n := range counts {
		out = append(out, models.Product{ID: utils.SynthID("prd", name), Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (e *Extractor) Breweries() []models.Brewery {
	counts := e.countInferred(inferBrewery)
	out := make([]models.Brewery, 0, len(counts))
	for name, n := range counts {
		out = append(out, models.Brewery{ID: utils.SynthID("brw", name), Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Outlets come straight from the outlet free-text field, grouped with the
// city they were reported from.
func (e *Extractor) Outlets() []models.Outlet {
	type key struct{ name, city string }
	counts := map[key]int{}
	for _, r := range e.filtered() {
		name := strings.TrimSpace(r.Outlet)
		if name == "" {
			name = defaultOutlet
		}
		counts[key{name, strings.TrimSpace(r.City)}]++
	}
	out := make([]models.Outlet, 0, len(counts))
	for k, n := range counts {
		out = append(out, models.Outlet{
			ID:    utils.SynthID("out", k.name+" "+k.city),
			Name:  k.name,
			City:  k.city,
			Count: n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (e *Extractor) countInferred(infer func(models.InteractionRecord) string) map[string]int {
	counts := map[string]int{}
	for _, r := range e.filtered() {
		counts[infer(r)]++
	}
	return counts
}
