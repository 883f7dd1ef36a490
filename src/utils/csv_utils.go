package utils

import "strings"

// NormalizeHeaders lower-cases and trims a header row, stripping a leading
// UTF-8 BOM if a spreadsheet left one behind.
func NormalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		h = strings.TrimPrefix(h, "\uFEFF")
		out[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return out
}

// BuildHeaderIndex maps each normalized header to its column position.
// On duplicate headers the first occurrence wins.
func BuildHeaderIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range NormalizeHeaders(headers) {
		if _, ok := idx[h]; !ok {
			idx[h] = i
		}
	}
	return idx
}

// Field returns the trimmed value of the named column, or "" when the
// column is absent or the row is short.
func Field(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// FieldAny returns the first non-empty value among synonymous column
// spellings, in the order given.
func FieldAny(row []string, idx map[string]int, names ...string) string {
	for _, name := range names {
		if v := Field(row, idx, name); v != "" {
			return v
		}
	}
	return ""
}

// CountPresent reports how many of the expected headers appear in the
// header index.
func CountPresent(idx map[string]int, expected []string) int {
	n := 0
	for _, h := range expected {
		if _, ok := idx[h]; ok {
			n++
		}
	}
	return n
}
