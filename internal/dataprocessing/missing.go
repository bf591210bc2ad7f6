package dataprocessing

import "strings"

// DefaultMissingTokens are whole-cell placeholders that mean "no value"
func DefaultMissingTokens() []string {
	return []string{"n/a", "na", "none", "null", "nan", "undisclosed", "unknown"}
}

// MissingTokens matches placeholder cells case-insensitively
type MissingTokens map[string]struct{}

// NewMissingTokens builds a matcher from tokens
func NewMissingTokens(tokens []string) MissingTokens {
	m := make(MissingTokens, len(tokens))
	for _, tok := range tokens {
		m[strings.ToLower(strings.TrimSpace(tok))] = struct{}{}
	}
	return m
}

// IsMissing reports whether cell is blank or a placeholder
func (m MissingTokens) IsMissing(cell string) bool {
	s := strings.ToLower(strings.TrimSpace(cell))
	if s == "" {
		return true
	}
	_, ok := m[s]
	return ok
}

// Clean returns column with placeholder cells replaced by ""
func (m MissingTokens) Clean(column []string) []string {
	out := make([]string, len(column))
	for i, cell := range column {
		if !m.IsMissing(cell) {
			out[i] = cell
		}
	}
	return out
}
