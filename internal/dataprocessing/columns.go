package dataprocessing

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Logical fields the pipeline reads
const (
	FieldAmount         = "amount"
	FieldInvestmentType = "investment_type"
	FieldIndustry       = "industry"
	FieldCity           = "city"
	FieldInvestor       = "investor"
	FieldStartup        = "startup"
	FieldDate           = "date"
)

// Derived columns appended to the output
const (
	ColumnZScore        = "z_score"
	ColumnZScoreOutlier = "zscore_outlier"
	ColumnIQROutlier    = "iqr_outlier"
	ColumnIsOutlier     = "is_outlier"
	ColumnAmountBucket  = "amount_bucket"
	ColumnInvestorList  = "investor_list"
	ColumnInvestorCount = "investor_count"
	ColumnYear          = "year"
	ColumnDateMissing   = "date_missing"
)

// Aliases maps a logical field to the snake_case headers that may carry it.
// The first alias present in a table wins.
type Aliases map[string][]string

// DefaultAliases covers the headers of the public Indian startup funding
// dataset and common variations
func DefaultAliases() Aliases {
	return Aliases{
		FieldAmount:         {"amount", "amount_in_usd", "amount_usd", "amount_in_inr"},
		FieldInvestmentType: {"investment_type", "investmentntype", "investmenttype", "type"},
		FieldIndustry:       {"industry", "industry_vertical", "vertical"},
		FieldCity:           {"city", "city__location", "city_location", "location"},
		FieldInvestor:       {"investor", "investors", "investors_name", "investor_name"},
		FieldStartup:        {"startup", "startup_name", "company", "company_name"},
		FieldDate:           {"date", "date_ddmmyyyy", "funding_date"},
	}
}

// Merge returns a copy of a with extra's aliases placed ahead of a's for the
// same field
func (a Aliases) Merge(extra map[string][]string) Aliases {
	out := make(Aliases, len(a))
	for field, names := range a {
		out[field] = append([]string(nil), names...)
	}
	for field, names := range extra {
		snake := make([]string, 0, len(names))
		for _, n := range names {
			snake = append(snake, SnakeCase(n))
		}
		out[field] = append(snake, out[field]...)
	}
	return out
}

var (
	invisibleRunes = strings.NewReplacer("\ufeff", "", "\u200b", "", "\u200c", "", "\u200d", "", "\u2060", "")
	nonWord        = regexp.MustCompile(`[^\p{L}\p{N}_]`)
)

// SnakeCase normalizes a header: NFKC, invisible characters removed, trimmed,
// each whitespace character replaced by "_", other non-word characters
// dropped, lower-cased. "City  Location" becomes "city__location".
func SnakeCase(name string) string {
	s := norm.NFKC.String(name)
	s = invisibleRunes.Replace(s)
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, s)
	s = nonWord.ReplaceAllString(s, "")
	return strings.ToLower(s)
}

// Resolution records which header serves each logical field
type Resolution struct {
	Columns map[string]string
	Missing []string
}

// ResolveColumns snake_cases the header of t in place and renames the first
// matching alias of every logical field to the field name. A header already
// named after the field takes precedence over aliases. Fields with no
// matching header are listed in Missing.
func ResolveColumns(t *Table, aliases Aliases) Resolution {
	t.MapHeader(SnakeCase)

	res := Resolution{Columns: make(map[string]string)}
	for _, field := range orderedFields {
		name := ""
		if t.HasColumn(field) {
			name = field
		} else {
			for _, alias := range aliases[field] {
				if t.HasColumn(alias) {
					name = alias
					break
				}
			}
		}

		if name == "" || t.RenameColumn(name, field) != nil {
			res.Missing = append(res.Missing, field)
			continue
		}
		res.Columns[field] = name
	}
	return res
}

var orderedFields = []string{
	FieldAmount,
	FieldInvestmentType,
	FieldIndustry,
	FieldCity,
	FieldInvestor,
	FieldStartup,
	FieldDate,
}
