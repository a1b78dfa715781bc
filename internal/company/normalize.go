package company

import (
	"regexp"
	"strings"
)

var trailingParen = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// NormalizeKey reduces a company name to its merge identity: surrounding
// whitespace trimmed, one trailing parenthetical suffix removed, the rest
// lowercased with inner whitespace runs collapsed to single spaces. An
// empty result means the name cannot key a record.
func NormalizeKey(name string) string {
	s := strings.TrimSpace(name)
	s = trailingParen.ReplaceAllString(s, "")
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}
