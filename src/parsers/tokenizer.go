package parsers

import "strings"

// SplitRows breaks raw file content into non-empty lines. Both LF and CRLF
// exports show up in the wild, and some tools append trailing blank lines.
func SplitRows(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	var rows []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			rows = append(rows, line)
		}
	}
	return rows
}

// TokenizeLine turns one CSV line into its fields. Fields are
// comma-separated and may be double-quoted; a doubled quote inside a quoted
// field unescapes to one. This never fails: at worst the result is a single
// field equal to the trimmed line.
//
// Excel sometimes re-exports a file with every row wrapped in one extra
// outer quote pair ("381,BUY,0.01" as a single quoted cell). When a line
// begins and ends with a quote, the interior is tokenized first; if that
// yields more than one field the line was double-wrapped and the interior
// parse wins.
func TokenizeLine(line string) []string {
	line = strings.TrimSpace(line)

	if len(line) >= 2 && strings.HasPrefix(line, `"`) && strings.HasSuffix(line, `"`) {
		inner := tokenize(line[1 : len(line)-1])
		if len(inner) > 1 {
			return inner
		}
	}
	return tokenize(line)
}

func tokenize(line string) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				field.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}
	fields = append(fields, field.String())
	return fields
}
