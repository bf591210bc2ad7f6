package domain

// Bucket is an amount size tier
type Bucket string

const (
	BucketVerySmall Bucket = "very_small"
	BucketSmall     Bucket = "small"
	BucketMedium    Bucket = "medium"
	BucketLarge     Bucket = "large"
	BucketVeryLarge Bucket = "very_large"
	BucketMega      Bucket = "mega"
	// BucketUnknown is reserved for rows without an amount; it is not a tier.
	BucketUnknown Bucket = "unknown"
)

// Tiers returns the six size tiers in ascending order
func Tiers() []Bucket {
	return []Bucket{
		BucketVerySmall,
		BucketSmall,
		BucketMedium,
		BucketLarge,
		BucketVeryLarge,
		BucketMega,
	}
}

// IsTier reports whether b is one of the six ordered tiers
func (b Bucket) IsTier() bool {
	for _, tier := range Tiers() {
		if b == tier {
			return true
		}
	}
	return false
}

// OutlierFlag holds the per-row outlier verdicts
type OutlierFlag struct {
	ZScoreOutlier bool `json:"zscore_outlier"`
	IQROutlier    bool `json:"iqr_outlier"`
	IsOutlier     bool `json:"is_outlier"`
}

// NewOutlierFlag combines both methods with a logical OR
func NewOutlierFlag(zscore, iqr bool) OutlierFlag {
	return OutlierFlag{
		ZScoreOutlier: zscore,
		IQROutlier:    iqr,
		IsOutlier:     zscore || iqr,
	}
}

// SummaryStatistics describes the amount column.
// Numeric fields are computed over non-missing amounts only. OutlierCount and
// OutlierPct are nil when no outlier flags were supplied.
type SummaryStatistics struct {
	TotalRows    int      `json:"total_rows"`
	Count        int      `json:"count"`
	Min          Number   `json:"min"`
	Max          Number   `json:"max"`
	Mean         Number   `json:"mean"`
	Median       Number   `json:"median"`
	StdDev       Number   `json:"std"`
	Q1           Number   `json:"q1"`
	Q3           Number   `json:"q3"`
	IQR          Number   `json:"iqr"`
	OutlierCount *int     `json:"outliers"`
	OutlierPct   *float64 `json:"pct_outliers"`
}

// FundingRecord is one cleaned funding row with its derived fields.
// Row is the 1-based position of the row in the input table.
type FundingRecord struct {
	Row            int      `json:"row"`
	Startup        string   `json:"startup,omitempty"`
	Date           string   `json:"date,omitempty"`
	Year           int      `json:"year,omitempty"`
	DateMissing    bool     `json:"date_missing"`
	InvestmentType string   `json:"investment_type,omitempty"`
	Industry       string   `json:"industry,omitempty"`
	City           string   `json:"city,omitempty"`
	Amount         Number   `json:"amount"`
	ZScore         Number   `json:"z_score"`
	AmountBucket   Bucket   `json:"amount_bucket"`
	Investors      []string `json:"investor_list"`
	InvestorCount  int      `json:"investor_count"`
	OutlierFlag
}
