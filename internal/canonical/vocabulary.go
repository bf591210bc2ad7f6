package canonical

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
)

// Canonicalizer maps one free-text value to one label
type Canonicalizer interface {
	Name() string
	Canonicalize(value string) string
	Labels() []string
}

// Rule pairs a pattern with the label it produces
type Rule struct {
	Pattern *regexp.Regexp
	Label   string
}

// MustRule compiles pattern and panics on an invalid expression.
// It is intended for package-level vocabularies.
func MustRule(pattern, label string) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Label: label}
}

// Entry is the serializable form of a rule or lookup mapping
type Entry struct {
	Match string `json:"match"`
	Label string `json:"label"`
}

// PatternVocabulary is an ordered first-match-wins rule list
type PatternVocabulary struct {
	name     string
	rules    []Rule
	fallback string
	prepare  func(string) string
}

// NewPatternVocabulary builds a vocabulary. prepare may be nil, in which case
// values are only lower-cased and trimmed.
func NewPatternVocabulary(name, fallback string, prepare func(string) string, rules ...Rule) (*PatternVocabulary, error) {
	if name == "" {
		return nil, fmt.Errorf("vocabulary name is required")
	}
	if fallback == "" {
		return nil, fmt.Errorf("vocabulary %s: fallback label is required", name)
	}
	for i, r := range rules {
		if r.Pattern == nil {
			return nil, fmt.Errorf("vocabulary %s: rule %d has no pattern", name, i)
		}
		if r.Label == "" {
			return nil, fmt.Errorf("vocabulary %s: rule %d (%s) has no label", name, i, r.Pattern)
		}
	}
	if prepare == nil {
		prepare = Normalize
	}

	return &PatternVocabulary{
		name:     name,
		rules:    append([]Rule(nil), rules...),
		fallback: fallback,
		prepare:  prepare,
	}, nil
}

func mustPatternVocabulary(name, fallback string, prepare func(string) string, rules ...Rule) *PatternVocabulary {
	v, err := NewPatternVocabulary(name, fallback, prepare, rules...)
	if err != nil {
		panic(err)
	}
	return v
}

// Name returns the field the vocabulary applies to
func (v *PatternVocabulary) Name() string {
	return v.name
}

// Fallback returns the label used when no rule matches
func (v *PatternVocabulary) Fallback() string {
	return v.fallback
}

// Canonicalize returns the label of the first matching rule
func (v *PatternVocabulary) Canonicalize(value string) string {
	s := v.prepare(value)
	for _, r := range v.rules {
		if r.Pattern.MatchString(s) {
			return r.Label
		}
	}
	return v.fallback
}

// Labels lists the distinct labels in rule order, fallback last
func (v *PatternVocabulary) Labels() []string {
	seen := make(map[string]bool, len(v.rules)+1)
	labels := make([]string, 0, len(v.rules)+1)
	for _, r := range v.rules {
		if !seen[r.Label] {
			seen[r.Label] = true
			labels = append(labels, r.Label)
		}
	}
	if !seen[v.fallback] {
		labels = append(labels, v.fallback)
	}
	return labels
}

// Entries returns the rules in evaluation order
func (v *PatternVocabulary) Entries() []Entry {
	entries := make([]Entry, len(v.rules))
	for i, r := range v.rules {
		entries[i] = Entry{Match: r.Pattern.String(), Label: r.Label}
	}
	return entries
}

// LookupVocabulary is an exact-match table with pass-through for unknown keys
type LookupVocabulary struct {
	name  string
	table map[string]string
}

// NewLookupVocabulary builds a lookup vocabulary. Keys are normalized the same
// way values are, so "Bengaluru " and "bengaluru" are the same key.
func NewLookupVocabulary(name string, table map[string]string) *LookupVocabulary {
	normalized := make(map[string]string, len(table))
	for k, label := range table {
		normalized[Normalize(k)] = label
	}
	return &LookupVocabulary{name: name, table: normalized}
}

// Name returns the field the vocabulary applies to
func (v *LookupVocabulary) Name() string {
	return v.name
}

// Canonicalize returns the mapped identifier, or the normalized value itself
func (v *LookupVocabulary) Canonicalize(value string) string {
	s := Normalize(value)
	if label, ok := v.table[s]; ok {
		return label
	}
	return s
}

// Known reports whether value has an entry in the table
func (v *LookupVocabulary) Known(value string) bool {
	_, ok := v.table[Normalize(value)]
	return ok
}

// Labels lists the distinct canonical identifiers, sorted
func (v *LookupVocabulary) Labels() []string {
	seen := make(map[string]bool)
	labels := make([]string, 0, len(v.table))
	for _, label := range v.table {
		if !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	return labels
}

// Entries returns the table sorted by spelling variant
func (v *LookupVocabulary) Entries() []Entry {
	entries := make([]Entry, 0, len(v.table))
	for k, label := range v.table {
		entries = append(entries, Entry{Match: k, Label: label})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Match < entries[j].Match })
	return entries
}

// Normalize lower-cases and trims value
func Normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Text coerces any cell value to text. nil and nil pointers become "".
func Text(value any) string {
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return ""
	}
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		return *v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// CanonicalizeAny coerces value to text before canonicalizing it
func CanonicalizeAny(c Canonicalizer, value any) string {
	return c.Canonicalize(Text(value))
}

// Apply canonicalizes every cell of a column
func Apply(c Canonicalizer, column []string) []string {
	out := make([]string, len(column))
	for i, cell := range column {
		out[i] = c.Canonicalize(cell)
	}
	return out
}

// Counts tallies labels in a canonicalized column
func Counts(column []string) map[string]int {
	counts := make(map[string]int)
	for _, label := range column {
		counts[label]++
	}
	return counts
}
