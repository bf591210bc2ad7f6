// Package summary aggregates the normalized amount column into descriptive
// statistics and persists run reports as JSON or plain text.
package summary

import (
	"github.com/OlixIgnacious/indian-startups-transformations/internal/stats"
	"github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/domain"
)

// Summarize computes SummaryStatistics over the non-missing amounts.
//
// flags may be nil, in which case the outlier count and percentage are left
// nil ("not computed"). Otherwise the percentage uses every row as the
// denominator, missing amounts included.
func Summarize(amounts []domain.Number, flags []domain.OutlierFlag) domain.SummaryStatistics {
	desc := stats.Describe(domain.KnownValues(amounts))

	s := domain.SummaryStatistics{
		TotalRows: len(amounts),
		Count:     desc.Count,
		Min:       desc.Min,
		Max:       desc.Max,
		Mean:      desc.Mean,
		Median:    desc.Median,
		StdDev:    desc.StdDev,
		Q1:        desc.Q1,
		Q3:        desc.Q3,
		IQR:       desc.IQR,
	}

	if flags == nil {
		return s
	}

	count := 0
	for _, f := range flags {
		if f.IsOutlier {
			count++
		}
	}

	pct := 0.0
	if s.TotalRows > 0 {
		pct = float64(count) / float64(s.TotalRows) * 100
	}
	s.OutlierCount = &count
	s.OutlierPct = &pct

	return s
}
