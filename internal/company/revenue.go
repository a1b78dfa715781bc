package company

import (
	"math"
	"strconv"
	"strings"
)

// ParseRevenue converts a revenue cell to a comparable number. Thousands
// separators are stripped before parsing. Empty and unparsable values
// yield NaN, the "no usable revenue" sentinel, never an error.
func ParseRevenue(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
