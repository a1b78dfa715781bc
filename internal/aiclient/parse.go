package aiclient

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	urlQuoteRe    = regexp.MustCompile(`^['"]|['"]$`)
	fencedArrayRe = regexp.MustCompile("```(?:json)?\\s*(\\[[\\s\\S]*?\\])\\s*```")
	rawArrayRe    = regexp.MustCompile(`\[[\s\S]*\]`)
)

// ParseSuggestedURL extracts a usable URL from a model reply: outer
// whitespace and one layer of surrounding quotes removed, NONE or
// anything that does not start with http means no answer.
func ParseSuggestedURL(reply string) string {
	s := strings.TrimSpace(reply)
	s = urlQuoteRe.ReplaceAllString(s, "")
	if strings.ToUpper(s) == "NONE" || !strings.HasPrefix(s, "http") {
		return ""
	}
	return s
}

// ExtractCompanies pulls an array of company objects out of a model
// reply: a fenced code block first, then the widest bracketed slice,
// then the whole reply as a bare array or an object with a "companies"
// key. Numbers keep their literal form as json.Number. A reply without a
// parsable array yields nil.
func ExtractCompanies(reply string) []map[string]any {
	if m := fencedArrayRe.FindStringSubmatch(reply); m != nil {
		if rows, ok := decodeCompanyArray(m[1]); ok {
			return rows
		}
	}
	if m := rawArrayRe.FindString(reply); m != "" {
		if rows, ok := decodeCompanyArray(m); ok {
			return rows
		}
	}
	if rows, ok := decodeCompanyArray(reply); ok {
		return rows
	}
	var wrapper struct {
		Companies []map[string]any `json:"companies"`
	}
	dec := json.NewDecoder(strings.NewReader(reply))
	dec.UseNumber()
	if err := dec.Decode(&wrapper); err == nil && wrapper.Companies != nil {
		return wrapper.Companies
	}
	return nil
}

func decodeCompanyArray(s string) ([]map[string]any, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, false
	}
	return rows, true
}
