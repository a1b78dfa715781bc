package webcheck

import (
	"regexp"
	"strings"
)

// Stock quote, investor relations and filing pages, as opposed to a
// company's own website.
var nonBrandPatterns = []string{
	`yahoo\.com`,
	`finance\.yahoo`,
	`/quote/`,
	`\bfinance\.`,
	`\bir\.`,
	`\binvestors\.`,
	`\binvestor\.`,
	`sec\.gov`,
	`nasdaq\.com`,
	`bloomberg\.com`,
	`reuters\.com`,
	`edgar`,
	`investorrelations`,
	`/investor[s]?[/\s]`,
	`/ir[/\s]`,
	`/shareholder`,
}

var nonBrandRe = regexp.MustCompile(`(?i)` + strings.Join(nonBrandPatterns, "|"))

// IsNonBrandPage reports whether url points at a quote/IR/filing page
// rather than the company's main website.
func IsNonBrandPage(url string) bool {
	return url != "" && nonBrandRe.MatchString(url)
}
