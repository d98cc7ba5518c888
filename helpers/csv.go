// Package helpers parses delimited opportunity exports into raw records.
package helpers

import (
	"strings"

	"github.com/pipeboard-org/pipeboard/engine"
)

// ============================================================================
// CSV PARSER — Best-Effort Tabular Text → RawRecords
// ============================================================================
// Comma-separated, double-quote-escaped (quotes escape by doubling), fields
// may contain embedded newlines inside quotes, records split on \n or \r\n.
// This is a parse, not a validator: an unterminated quote swallows the rest
// of the input as one field instead of failing, short rows pad with empty
// strings, and a trailing row without a newline is still emitted.
// encoding/csv cannot express this contract: it errors on malformed quoting
// and ragged rows.
// ============================================================================

// Parse splits raw CSV text into field-keyed records. The first physical
// row supplies the field names (trimmed); every later row maps positionally
// onto them. Values are trimmed of surrounding whitespace. Returns nil when
// the input has no header row.
func Parse(text string) []engine.RawRecord {
	rows := splitRows(text)
	if len(rows) == 0 {
		return nil
	}

	headers := rows[0]
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	records := make([]engine.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(engine.RawRecord, len(headers))
		for i, header := range headers {
			if i < len(row) {
				rec[header] = strings.TrimSpace(row[i])
			} else {
				rec[header] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}

// Headers returns the trimmed header row of raw CSV text, or nil when the
// input is empty. Used for schema diagnostics without a full parse.
func Headers(text string) []string {
	rows := splitRows(text)
	if len(rows) == 0 {
		return nil
	}
	headers := rows[0]
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}
	return headers
}

// splitRows runs the quote-aware scan. Blank physical lines are dropped;
// a row is emitted whenever a record separator lands outside quotes with
// anything accumulated.
func splitRows(text string) [][]string {
	var (
		rows     [][]string
		current  []string
		field    strings.Builder
		inQuotes bool
	)

	flushField := func() {
		current = append(current, field.String())
		field.Reset()
	}
	flushRow := func() {
		if field.Len() > 0 || len(current) > 0 {
			flushField()
			rows = append(rows, current)
			current = nil
		}
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			flushField()
		case (ch == '\n' || ch == '\r') && !inQuotes:
			flushRow()
			if ch == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
		default:
			field.WriteRune(ch)
		}
	}
	flushRow()

	return rows
}
