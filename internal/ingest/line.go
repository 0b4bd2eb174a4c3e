// Package ingest turns raw export files into canonical transactions: it
// resolves the text encoding, sniffs the format, and runs the matching
// adapter over every data row.
package ingest

import "strings"

// ParseLine splits one logical CSV line into fields. Fields may be wrapped in
// double quotes, inside which commas are literal and a doubled quote encodes
// one literal quote character. The parser always emits one more field than
// the number of top-level commas, so a trailing comma yields a trailing
// empty field.
//
// Wallet exports routinely contain stray quotes and embedded commas that
// encoding/csv rejects even with LazyQuotes, hence the hand-rolled splitter.
func ParseLine(line string) []string {
	fields := make([]string, 0, 8)
	var field strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				field.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(ch)
		}
	}

	return append(fields, field.String())
}

// splitLines breaks decoded text into lines, dropping carriage returns and
// any leading byte-order mark.
func splitLines(text string) []string {
	text = strings.TrimPrefix(text, "\ufeff")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}

// blankRow reports whether every field is empty or whitespace.
func blankRow(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
