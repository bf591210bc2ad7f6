package exporter

import (
	"strconv"

	"github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/domain"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// formatAmount formats a possibly missing amount, missing as ""
func formatAmount(n domain.Number) string {
	v, ok := n.Float64()
	if !ok {
		return ""
	}
	return formatFloat(v)
}

// formatYear renders 0 as ""
func formatYear(y int) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(y)
}
