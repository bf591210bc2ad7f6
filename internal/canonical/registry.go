package canonical

import (
	"fmt"
	"sort"
)

// Field names accepted by ForField
const (
	FieldInvestmentType = "investment_type"
	FieldIndustry       = "industry"
	FieldCity           = "city"
)

var registry = map[string]Canonicalizer{
	FieldInvestmentType: InvestmentType,
	FieldIndustry:       Industry,
	FieldCity:           City,
}

// ForField returns the vocabulary for a logical field name
func ForField(field string) (Canonicalizer, error) {
	c, ok := registry[field]
	if !ok {
		return nil, fmt.Errorf("no vocabulary for field %q", field)
	}
	return c, nil
}

// Fields lists the fields that have a vocabulary, sorted
func Fields() []string {
	fields := make([]string, 0, len(registry))
	for f := range registry {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Description is the serializable view of a vocabulary
type Description struct {
	Field       string   `json:"field"`
	Kind        string   `json:"kind"`
	Fallback    string   `json:"fallback,omitempty"`
	PassThrough bool     `json:"pass_through"`
	Labels      []string `json:"labels"`
	Entries     []Entry  `json:"entries"`
}

// Describe returns every registered vocabulary, sorted by field
func Describe() []Description {
	out := make([]Description, 0, len(registry))
	for _, field := range Fields() {
		d := Description{Field: field, Labels: registry[field].Labels()}
		switch v := registry[field].(type) {
		case *PatternVocabulary:
			d.Kind = "pattern"
			d.Fallback = v.Fallback()
			d.Entries = v.Entries()
		case *LookupVocabulary:
			d.Kind = "lookup"
			d.PassThrough = true
			d.Entries = v.Entries()
		}
		out = append(out, d)
	}
	return out
}
