// Package csvx parses the semi-structured CSV exports produced by the
// interaction-report system. The exports are known to be irregular: padded
// header names, byte-order marks, embedded newlines inside quoted free-text
// fields, ragged rows and files cut off mid-quote. encoding/csv rejects or
// mangles several of those shapes, so parsing is a small character state
// machine that recovers from everything and never returns an error.
package csvx

import "strings"

// Document is one parsed CSV text: cleaned header names plus every data row
// zipped positionally against them.
type Document struct {
	Headers []string
	Rows    []map[string]string
}

// Parse converts raw CSV text into a Document. The first completed non-blank
// record is the header row; every later record becomes a header->value map.
// Missing trailing fields default to "", blank records are skipped, and a
// final record with no trailing newline is still emitted. Parse never fails:
// an unterminated quote at end of input flushes whatever was accumulated.
func Parse(text string) Document {
	doc := Document{}
	if text == "" {
		return doc
	}

	var (
		field    strings.Builder
		record   []string
		inQuotes bool
	)

	endRecord := func() {
		record = append(record, field.String())
		field.Reset()
		if blankRecord(record) {
			record = nil
			return
		}
		if doc.Headers == nil {
			doc.Headers = cleanHeaders(record)
		} else {
			doc.Rows = append(doc.Rows, zipRecord(doc.Headers, record))
		}
		record = nil
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				// Escaped quote: keep both characters, cleanField collapses
				// them later.
				field.WriteRune(c)
				field.WriteRune(c)
				i++
				continue
			}
			inQuotes = !inQuotes
			field.WriteRune(c)
		case c == ',' && !inQuotes:
			record = append(record, field.String())
			field.Reset()
		case (c == '\n' || c == '\r') && !inQuotes:
			if c == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			endRecord()
		default:
			field.WriteRune(c)
		}
	}
	// Flush the last record even without a trailing newline, and even if a
	// quote was left open.
	if field.Len() > 0 || len(record) > 0 {
		endRecord()
	}

	return doc
}

func blankRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(cleanField(f)) != "" {
			return false
		}
	}
	return true
}

// cleanField trims a raw cell, unwraps surrounding quotes and collapses
// escaped double quotes to one literal quote.
func cleanField(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		v = v[1 : len(v)-1]
	}
	return strings.ReplaceAll(v, `""`, `"`)
}

// cleanHeaders applies the header-specific rules: BOM strip and tab removal
// on top of the usual field cleaning. Source exports pad header names with
// tab runs. Duplicate names are kept as-is; the zip keeps the last value.
func cleanHeaders(record []string) []string {
	headers := make([]string, len(record))
	for i, h := range record {
		// BOM may sit outside or inside the opening quote.
		h = strings.TrimPrefix(h, "\uFEFF")
		h = cleanField(h)
		h = strings.TrimPrefix(h, "\uFEFF")
		h = strings.ReplaceAll(h, "\t", "")
		headers[i] = strings.TrimSpace(h)
	}
	return headers
}

func zipRecord(headers []string, record []string) map[string]string {
	row := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(record) {
			row[h] = cleanField(record[i])
		} else {
			row[h] = ""
		}
	}
	return row
}
