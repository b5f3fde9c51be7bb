package model

import (
	"strconv"
	"strings"
)

// ParseAmount extracts a numeric total from a currency-amount string.
// Published amounts may encode several notices in one field ("$3,000 $700"),
// so the input is split on whitespace and the token values summed. Currency
// symbols and thousands separators are stripped; anything that still fails
// to parse contributes 0 rather than an error, because the source data is
// scraped and occasionally malformed.
func ParseAmount(s string) float64 {
	if s == "" {
		return 0
	}

	var total float64
	for _, token := range strings.Fields(s) {
		cleaned := strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '.' {
				return r
			}
			return -1
		}, token)
		if cleaned == "" {
			continue
		}
		v, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			continue
		}
		total += v
	}
	return total
}
