package amount

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/domain"
)

func TestBucketOf(t *testing.T) {
	tests := []struct {
		name     string
		amount   domain.Number
		expected domain.Bucket
	}{
		{"zero", domain.Known(0), domain.BucketVerySmall},
		{"negative", domain.Known(-5), domain.BucketVerySmall},
		{"mid very small", domain.Known(250_000), domain.BucketVerySmall},
		{"mid medium", domain.Known(25_000_000), domain.BucketMedium},
		{"far above last threshold", domain.Known(5e9), domain.BucketMega},
		{"missing", domain.Missing(), domain.BucketUnknown},
		{"NaN", domain.Known(math.NaN()), domain.BucketUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BucketOf(tt.amount))
		})
	}
}

func TestBucketBoundaries(t *testing.T) {
	tiers := domain.Tiers()

	for i, threshold := range Thresholds() {
		assert.Equal(t, tiers[i], BucketOf(domain.Known(threshold.UpperBound)),
			"threshold %v belongs to the lower tier", threshold.UpperBound)
		assert.Equal(t, tiers[i+1], BucketOf(domain.Known(threshold.UpperBound+1)),
			"threshold %v + 1 belongs to the next tier", threshold.UpperBound)
	}
}

func TestBucketColumn(t *testing.T) {
	amounts := []domain.Number{
		domain.Known(1_000_000),
		domain.Missing(),
		domain.Known(10_000_001),
		domain.Known(600_000_000),
	}

	buckets := BucketColumn(amounts)
	assert.Equal(t, []domain.Bucket{
		domain.BucketVerySmall,
		domain.BucketUnknown,
		domain.BucketMedium,
		domain.BucketMega,
	}, buckets)

	for i, b := range buckets {
		if amounts[i].IsMissing() {
			continue
		}
		assert.True(t, b.IsTier())
	}

	counts := CountBuckets(buckets)
	assert.Equal(t, 1, counts[domain.BucketUnknown])
	assert.Equal(t, 1, counts[domain.BucketMega])
	assert.Zero(t, counts[domain.BucketSmall])
}
