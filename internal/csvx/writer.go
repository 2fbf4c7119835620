package csvx

import "strings"

// Serialize renders headers plus rows back into CSV text, quoting any field
// that contains a comma, quote or line break. It is the inverse of Parse for
// well-formed data and backs the export boundary.
func Serialize(headers []string, rows []map[string]string) string {
	var b strings.Builder
	writeRecord(&b, headers)
	for _, row := range rows {
		record := make([]string, len(headers))
		for i, h := range headers {
			record[i] = row[h]
		}
		writeRecord(&b, record)
	}
	return b.String()
}

func writeRecord(b *strings.Builder, record []string) {
	for i, f := range record {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quoteField(f))
	}
	b.WriteByte('\n')
}

func quoteField(v string) string {
	if !strings.ContainsAny(v, ",\"\n\r") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}
