package artifact

import (
	"encoding/json"
	"os"
	"regexp"
)

var dataBlockRe = regexp.MustCompile(`(?s)const data = \{.*?\};`)

// RewriteDataBlock replaces the single `const data = { ... };` statement
// in the page at path with a compact serialization of doc. It reports
// whether a block was found; a page without one is left untouched and is
// not an error.
func RewriteDataBlock(path string, doc any) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	if !dataBlockRe.Match(b) {
		return false, nil
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return false, err
	}
	block := append([]byte("const data = "), payload...)
	block = append(block, ';')
	out := dataBlockRe.ReplaceAllLiteral(b, block)
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
