package canonical

import (
	"regexp"
	"strings"
)

// Industry labels
const (
	IndustryEdtech       = "edtech"
	IndustryFintech      = "fintech"
	IndustryEcommerce    = "ecommerce"
	IndustrySaaSTech     = "saas_tech"
	IndustryFoodBeverage = "food_beverage"
	IndustryAgritech     = "agritech"
	IndustryHealthtech   = "healthtech"
	IndustryTransport    = "transport"
	IndustryLifestyle    = "lifestyle"
	IndustryHospitality  = "hospitality"
	IndustryAdvertising  = "advertising"
	IndustryDigital      = "digital"
	IndustryDairytech    = "dairytech"
	IndustrySupplyChain  = "supply_chain"
	IndustryOther        = "other"
)

var (
	industrySeparators = regexp.MustCompile(`[-_/]`)
	whitespaceRun      = regexp.MustCompile(`\s+`)
)

// prepareIndustry turns "Ed-Tech" and "ed_tech" into "ed tech"
func prepareIndustry(value string) string {
	s := Normalize(value)
	s = industrySeparators.ReplaceAllString(s, " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Industry classifies industry verticals.
// The edtech rules come first so "ed tech" never reaches a tech-flavoured
// rule; saas_tech only matches "saas" or "tech(nology) provider", never a
// bare "tech".
var Industry = mustPatternVocabulary("industry", IndustryOther, prepareIndustry,
	MustRule(`\bed\s?tech\b`, IndustryEdtech),
	MustRule(`\b(edutech|edu tech)\b`, IndustryEdtech),
	MustRule(`\bfin\s?tech\b|\bfinancial\b|\bfinance\b`, IndustryFintech),
	MustRule(`\bb2b\s?e\s?commerce\b|\be\s?commerce\b`, IndustryEcommerce),
	MustRule(`\bsaas\b|\btechnology\s*provider\b|\btech\s*provider\b`, IndustrySaaSTech),
	MustRule(`\bfood\b|\bbeverage\b`, IndustryFoodBeverage),
	MustRule(`\bagri\s?tech\b`, IndustryAgritech),
	MustRule(`\bhealth\b`, IndustryHealthtech),
	MustRule(`\btransport(ation)?\b`, IndustryTransport),
	MustRule(`\blifestyle\b`, IndustryLifestyle),
	MustRule(`\bhospital\b|\bhospitality\b`, IndustryHospitality),
	MustRule(`\badvertis`, IndustryAdvertising),
	MustRule(`\bdigital\b`, IndustryDigital),
	MustRule(`\bdairy\b`, IndustryDairytech),
	MustRule(`\bsupply\s*chain\b`, IndustrySupplyChain),
)
