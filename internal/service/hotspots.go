package service

import (
	"sort"
	"strings"

	"github.com/brewpulse/backend/internal/models"
)

const topHotspots = 8

const (
	tierCritical = "critical"
	tierHigh     = "high"
	tierMedium   = "medium"
	tierLow      = "low"
)

// Hotspots groups department x sub-category pairs over records that clear
// the urgency/priority threshold, ranks them by volume and truncates to the
// top 8. Each group carries the worst risk tier seen among its records.
func (e *Extractor) Hotspots() []models.RiskHotspot {
	type group struct {
		dept, sub string
		count     int
		tier      string
	}
	groups := map[string]*group{}

	for _, r := range e.filtered() {
		if !meetsHotspotThreshold(r) {
			continue
		}
		dept := strings.TrimSpace(r.Department)
		sub := strings.TrimSpace(r.SubCategory)
		if dept == "" && sub == "" {
			continue
		}
		key := dept + "\x00" + sub
		g, ok := groups[key]
		if !ok {
			g = &group{dept: dept, sub: sub, tier: tierLow}
			groups[key] = g
		}
		g.count++
		if tier := riskTier(r); tierRank(tier) > tierRank(g.tier) {
			g.tier = tier
		}
	}

	out := make([]models.RiskHotspot, 0, len(groups))
	for _, g := range groups {
		out = append(out, models.RiskHotspot{
			Department:  g.dept,
			SubCategory: g.sub,
			Count:       g.count,
			RiskTier:    g.tier,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Department != out[j].Department {
			return out[i].Department < out[j].Department
		}
		return out[i].SubCategory < out[j].SubCategory
	})
	if len(out) > topHotspots {
		out = out[:topHotspots]
	}
	return out
}

func meetsHotspotThreshold(r models.InteractionRecord) bool {
	u := strings.ToLower(strings.TrimSpace(r.Urgency))
	return u == "highest" || u == "high" || isElevated(r.Priority)
}

// riskTier applies the fixed precedence rule: highest urgency is always
// critical, regardless of what the priority field claims.
func riskTier(r models.InteractionRecord) string {
	u := strings.ToLower(strings.TrimSpace(r.Urgency))
	if u == "highest" {
		return tierCritical
	}
	switch strings.ToLower(strings.TrimSpace(r.Priority)) {
	case priorityCritical:
		return tierCritical
	case priorityHigh:
		return tierHigh
	}
	if u == "high" {
		return tierMedium
	}
	return tierLow
}

func tierRank(tier string) int {
	switch tier {
	case tierCritical:
		return 3
	case tierHigh:
		return 2
	case tierMedium:
		return 1
	default:
		return 0
	}
}
