package utils

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// Dollars formats an amount as whole dollars with thousands separators,
// e.g. 15000.4 -> "$15,000". Halves round to even.
func Dollars(amount float64) string {
	return "$" + humanize.Commaf(math.RoundToEven(amount))
}
