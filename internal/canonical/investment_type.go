package canonical

// Investment type labels
const (
	InvestmentAngel           = "angel"
	InvestmentSeed            = "seed"
	InvestmentPreSeed         = "pre_seed"
	InvestmentSeries          = "series"
	InvestmentVenture         = "venture"
	InvestmentPrivateEquity   = "private_equity"
	InvestmentDebt            = "debt"
	InvestmentEquity          = "equity"
	InvestmentMezzanine       = "mezzanine"
	InvestmentMA              = "ma"
	InvestmentBridge          = "bridge"
	InvestmentSecondaryMarket = "secondary_market"
	InvestmentInProgress      = "in_progress"
	InvestmentUnspecified     = "unspecified"
	InvestmentOther           = "other"
)

// InvestmentType classifies funding round descriptions such as
// "Seed/ Angel Funding" or "Series A / B".
// "private equity" precedes "equity" and "angel funding" precedes "seed
// funding" because the inputs overlap.
var InvestmentType = mustPatternVocabulary("investment_type", InvestmentOther, nil,
	MustRule(`^angel`, InvestmentAngel),
	MustRule(`angel funding`, InvestmentAngel),
	MustRule(`^seed`, InvestmentSeed),
	MustRule(`seed funding`, InvestmentSeed),
	MustRule(`seed / angel`, InvestmentSeed),
	MustRule(`^pre[\s-]?seed`, InvestmentPreSeed),
	MustRule(`^pre[\s-]?series a`, InvestmentPreSeed),
	MustRule(`^series [a-z0-9]`, InvestmentSeries),
	MustRule(`venture`, InvestmentVenture),
	MustRule(`private equity`, InvestmentPrivateEquity),
	MustRule(`debt`, InvestmentDebt),
	MustRule(`equity`, InvestmentEquity),
	MustRule(`mezzanine`, InvestmentMezzanine),
	MustRule(`m&a`, InvestmentMA),
	MustRule(`bridge`, InvestmentBridge),
	MustRule(`secondary market`, InvestmentSecondaryMarket),
	MustRule(`in progress`, InvestmentInProgress),
	MustRule(`unspecified`, InvestmentUnspecified),
)
