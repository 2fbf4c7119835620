package service

import (
	"strings"

	"github.com/brewpulse/backend/internal/models"
)

// Column aliases seen across export generations. The normalizer exists to
// isolate source column churn from the extraction logic: matching is by
// normalized header name, first non-empty alias wins, and anything
// unrecognized survives in the Extra side-map.
var columnAliases = map[string][]string{
	"check":                {"check", "ticket", "ticket id", "ticket_id", "complaint id"},
	"source":               {"source", "channel", "source channel"},
	"campaign":             {"campaign", "campaign tag", "campaign name"},
	"branch":               {"branch", "brewery", "branch name", "plant"},
	"department":           {"department", "dept"},
	"agent":                {"agent", "agent name", "handled by"},
	"complexity":           {"complexity", "complexity classification"},
	"status":               {"status", "ticket status"},
	"category":             {"category"},
	"sub_category":         {"sub category", "sub-category", "subcategory"},
	"priority":             {"priority", "risk", "risk tier"},
	"urgency":              {"urgency"},
	"date_created":         {"date created", "created", "created at", "creation date"},
	"last_modified":        {"last modified", "modified", "updated at"},
	"date_closed":          {"date closed", "closed", "closed at", "closure date"},
	"expected_response":    {"expected response", "expected response time"},
	"actual_response":      {"actual response", "actual response time", "first response"},
	"expected_resolution":  {"expected resolution", "expected resolution time"},
	"actual_resolution":    {"actual resolution", "actual resolution time"},
	"response_escalated":   {"response escalated", "response escalation"},
	"resolution_escalated": {"resolution escalated", "resolution escalation"},
	"consumer_or_customer": {"consumer/customer", "consumer or customer", "consumer customer"},
	"batch_number":         {"batch number", "batch no", "batch"},
	"brand":                {"brand", "sku", "product", "brand/sku"},
	"city":                 {"city", "town", "location"},
	"outlet":               {"outlet", "outlet name", "shop"},
	"pack_size":            {"pack size", "pack", "pack type"},
	"phone":                {"phone", "phone number", "mobile", "contact number"},
	"email":                {"email", "email id", "e-mail"},
}

// NormalizeRecord maps one raw header->value row onto the canonical record
// shape. Pure field mapping with empty-string defaults: it never rejects a
// row, whatever columns the export happened to carry.
func NormalizeRecord(raw map[string]string) models.InteractionRecord {
	index := make(map[string]string, len(raw))
	consumed := make(map[string]bool, len(raw))
	for k, v := range raw {
		index[normalizeHeader(k)] = v
	}

	pick := func(canonical string) string {
		for _, alias := range columnAliases[canonical] {
			if v, ok := index[alias]; ok {
				consumed[alias] = true
				if strings.TrimSpace(v) != "" {
					return strings.TrimSpace(v)
				}
			}
		}
		return ""
	}

	rec := models.InteractionRecord{
		Check:               pick("check"),
		Source:              pick("source"),
		Campaign:            pick("campaign"),
		Branch:              pick("branch"),
		Department:          pick("department"),
		Agent:               pick("agent"),
		Complexity:          pick("complexity"),
		Status:              pick("status"),
		Category:            pick("category"),
		SubCategory:         pick("sub_category"),
		Priority:            pick("priority"),
		Urgency:             pick("urgency"),
		DateCreated:         pick("date_created"),
		LastModified:        pick("last_modified"),
		DateClosed:          pick("date_closed"),
		ExpectedResponse:    pick("expected_response"),
		ActualResponse:      pick("actual_response"),
		ExpectedResolution:  pick("expected_resolution"),
		ActualResolution:    pick("actual_resolution"),
		ResponseEscalated:   pick("response_escalated"),
		ResolutionEscalated: pick("resolution_escalated"),
		ConsumerOrCustomer:  pick("consumer_or_customer"),
		BatchNumber:         pick("batch_number"),
		Brand:               pick("brand"),
		City:                pick("city"),
		Outlet:              pick("outlet"),
		PackSize:            pick("pack_size"),
		Phone:               pick("phone"),
		Email:               pick("email"),
	}

	for k, v := range raw {
		if consumed[normalizeHeader(k)] {
			continue
		}
		if strings.TrimSpace(k) == "" && strings.TrimSpace(v) == "" {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = map[string]string{}
		}
		rec.Extra[k] = v
	}
	return rec
}

func normalizeHeader(h string) string {
	h = strings.ReplaceAll(h, "\uFEFF", "")
	return strings.ToLower(strings.TrimSpace(h))
}
