package amount

import "github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/domain"

// Threshold is an inclusive upper bound for one tier
type Threshold struct {
	UpperBound float64
	Bucket     domain.Bucket
}

// thresholds are ordered ascending; anything above the last is mega
var thresholds = []Threshold{
	{UpperBound: 1_000_000, Bucket: domain.BucketVerySmall},
	{UpperBound: 10_000_000, Bucket: domain.BucketSmall},
	{UpperBound: 50_000_000, Bucket: domain.BucketMedium},
	{UpperBound: 200_000_000, Bucket: domain.BucketLarge},
	{UpperBound: 500_000_000, Bucket: domain.BucketVeryLarge},
}

// Thresholds returns a copy of the tier bounds
func Thresholds() []Threshold {
	out := make([]Threshold, len(thresholds))
	copy(out, thresholds)
	return out
}

// BucketOf assigns the tier for one amount
func BucketOf(n domain.Number) domain.Bucket {
	value, ok := n.Float64()
	if !ok {
		return domain.BucketUnknown
	}

	for _, t := range thresholds {
		if value <= t.UpperBound {
			return t.Bucket
		}
	}
	return domain.BucketMega
}

// BucketColumn assigns tiers for a normalized column
func BucketColumn(amounts []domain.Number) []domain.Bucket {
	out := make([]domain.Bucket, len(amounts))
	for i, a := range amounts {
		out[i] = BucketOf(a)
	}
	return out
}

// CountBuckets tallies rows per bucket, unknown included
func CountBuckets(buckets []domain.Bucket) map[domain.Bucket]int {
	counts := make(map[domain.Bucket]int, len(thresholds)+2)
	for _, b := range buckets {
		counts[b]++
	}
	return counts
}
