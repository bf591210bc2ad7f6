// Package investors splits free-text investor fields into name lists.
package investors

import (
	"regexp"
	"strings"
)

// separator matches comma, semicolon, slash, newline or the word "and",
// each with optional surrounding whitespace
var separator = regexp.MustCompile(`(?i)\s*(?:[,;/\n]|\band\b)\s*`)

// noiseToken is dropped from every list
const noiseToken = "others"

// Parse splits one investor field. Order is preserved and duplicates kept.
// The result is never nil.
func Parse(field string) []string {
	names := []string{}

	trimmed := strings.TrimSpace(field)
	if trimmed == "" {
		return names
	}

	for _, token := range separator.Split(trimmed, -1) {
		token = strings.TrimSpace(token)
		if token == "" || strings.EqualFold(token, noiseToken) {
			continue
		}
		names = append(names, token)
	}

	return names
}

// Column holds the parsed lists and counts for one column
type Column struct {
	Lists  [][]string
	Counts []int
}

// ParseColumn parses every cell of the investor column. An absent column
// (present == false) yields an empty list and a zero count for each of rows.
func ParseColumn(cells []string, present bool, rows int) Column {
	col := Column{
		Lists:  make([][]string, rows),
		Counts: make([]int, rows),
	}

	for i := 0; i < rows; i++ {
		if !present || i >= len(cells) {
			col.Lists[i] = []string{}
			continue
		}
		col.Lists[i] = Parse(cells[i])
		col.Counts[i] = len(col.Lists[i])
	}

	return col
}

// Totals returns the number of rows with at least one name, the total number
// of names and the largest per-row count
func (c Column) Totals() (rowsWithNames, names, maxPerRow int) {
	for _, n := range c.Counts {
		if n > 0 {
			rowsWithNames++
		}
		names += n
		if n > maxPerRow {
			maxPerRow = n
		}
	}
	return rowsWithNames, names, maxPerRow
}
