// Package company turns loosely structured CSV sources into deduplicated
// company revenue records.
package company

import (
	"fmt"
	"os"
	"strings"
)

// Row maps header names to the field values of one data line.
type Row map[string]string

// Table is the parsed contents of one source file.
type Table struct {
	Path    string
	Headers []string
	Rows    []Row
}

// ParseError reports a source whose header line is missing.
type ParseError struct {
	Path string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: missing header line", e.Path)
}

// Load reads and parses the CSV source at path.
func Load(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, string(b))
}

// Parse splits text into a header line and data rows. The first line
// names the columns; every following non-blank line becomes a Row keyed
// by those names, with missing trailing values defaulting to "". The
// only fatal condition is input with no header line at all; malformed
// data lines are kept as whatever fields they yield.
func Parse(path, text string) (*Table, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ParseError{Path: path}
	}
	lines := strings.Split(text, "\n")
	t := &Table{Path: path, Headers: splitFields(lines[0])}
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitFields(line)
		row := make(Row, len(t.Headers))
		for i, h := range t.Headers {
			if i < len(fields) {
				row[h] = fields[i]
			} else {
				row[h] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// splitFields splits a line on commas that fall outside double quotes.
// A quote character flips the in-quotes state and never reaches the
// value, so a doubled quote is two toggles contributing nothing; the
// RFC 4180 escape for a literal quote is not supported. Every field is
// trimmed of surrounding whitespace.
func splitFields(line string) []string {
	fields := make([]string, 0, 8)
	var b strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(b.String()))
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	return append(fields, strings.TrimSpace(b.String()))
}
