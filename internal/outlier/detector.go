// Package outlier flags implausible funding amounts with two independent
// methods, a z-score test and Tukey's IQR fences, and reports a row as an
// outlier when either method flags it.
//
// Detection runs in two phases. Fit computes the column aggregates once over
// the non-missing amounts; Classify then judges a single value against those
// aggregates and touches no shared state, so callers may classify row
// partitions concurrently.
package outlier

import (
	"math"

	"github.com/OlixIgnacious/indian-startups-transformations/internal/stats"
	"github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/domain"
)

const (
	// DefaultZThreshold flags |z| strictly above three standard deviations
	DefaultZThreshold = 3.0
	// DefaultIQRMultiplier places the fences 1.5 IQR outside the quartiles
	DefaultIQRMultiplier = 1.5
)

// Config tunes both methods
type Config struct {
	ZThreshold    float64 `yaml:"z_threshold" envconfig:"Z_THRESHOLD" validate:"gt=0"`
	IQRMultiplier float64 `yaml:"iqr_multiplier" envconfig:"IQR_MULTIPLIER" validate:"gt=0"`
}

// DefaultConfig returns the conventional 3σ / 1.5×IQR settings
func DefaultConfig() Config {
	return Config{
		ZThreshold:    DefaultZThreshold,
		IQRMultiplier: DefaultIQRMultiplier,
	}
}

// Fences are the column aggregates produced by Fit
type Fences struct {
	Count  int
	Mean   domain.Number
	StdDev domain.Number
	Q1     domain.Number
	Q3     domain.Number
	IQR    domain.Number
	Lower  domain.Number
	Upper  domain.Number
}

// Result is the per-row output of Detect
type Result struct {
	Flags   []domain.OutlierFlag
	ZScores []domain.Number
	Fences  Fences
}

// Detector applies a Config to amount columns
type Detector struct {
	cfg Config
}

// NewDetector creates a detector; non-positive settings fall back to defaults
func NewDetector(cfg Config) *Detector {
	if cfg.ZThreshold <= 0 || math.IsNaN(cfg.ZThreshold) {
		cfg.ZThreshold = DefaultZThreshold
	}
	if cfg.IQRMultiplier <= 0 || math.IsNaN(cfg.IQRMultiplier) {
		cfg.IQRMultiplier = DefaultIQRMultiplier
	}
	return &Detector{cfg: cfg}
}

// Config returns the effective settings
func (d *Detector) Config() Config {
	return d.cfg
}

// Fit computes mean, sample standard deviation and quartile fences over the
// non-missing amounts
func (d *Detector) Fit(amounts []domain.Number) Fences {
	desc := stats.Describe(domain.KnownValues(amounts))

	fences := Fences{
		Count:  desc.Count,
		Mean:   desc.Mean,
		StdDev: desc.StdDev,
		Q1:     desc.Q1,
		Q3:     desc.Q3,
		IQR:    desc.IQR,
	}

	q1, okQ1 := desc.Q1.Float64()
	q3, okQ3 := desc.Q3.Float64()
	iqr, okIQR := desc.IQR.Float64()
	if okQ1 && okQ3 && okIQR {
		fences.Lower = domain.Known(q1 - d.cfg.IQRMultiplier*iqr)
		fences.Upper = domain.Known(q3 + d.cfg.IQRMultiplier*iqr)
	}

	return fences
}

// Classify judges one amount against fitted fences.
// A missing amount yields a missing z-score and no flags. A zero or undefined
// standard deviation disables the z-score test.
func (d *Detector) Classify(f Fences, amount domain.Number) (domain.Number, domain.OutlierFlag) {
	value, ok := amount.Float64()
	if !ok {
		return domain.Missing(), domain.OutlierFlag{}
	}

	zScore := domain.Missing()
	zOutlier := false
	mean, okMean := f.Mean.Float64()
	std, okStd := f.StdDev.Float64()
	if okMean && okStd && std > 0 {
		z := (value - mean) / std
		zScore = domain.Known(z)
		zOutlier = math.Abs(z) > d.cfg.ZThreshold
	}

	iqrOutlier := false
	lower, okLower := f.Lower.Float64()
	upper, okUpper := f.Upper.Float64()
	if okLower && okUpper {
		iqrOutlier = value < lower || value > upper
	}

	return zScore, domain.NewOutlierFlag(zOutlier, iqrOutlier)
}

// Detect fits the column and classifies every row
func (d *Detector) Detect(amounts []domain.Number) Result {
	fences := d.Fit(amounts)

	result := Result{
		Flags:   make([]domain.OutlierFlag, len(amounts)),
		ZScores: make([]domain.Number, len(amounts)),
		Fences:  fences,
	}
	for i, a := range amounts {
		result.ZScores[i], result.Flags[i] = d.Classify(fences, a)
	}
	return result
}

// Detect runs a detector with DefaultConfig
func Detect(amounts []domain.Number) Result {
	return NewDetector(DefaultConfig()).Detect(amounts)
}

// Count returns how many rows were flagged by each method and in total
func Count(flags []domain.OutlierFlag) (zscore, iqr, total int) {
	for _, f := range flags {
		if f.ZScoreOutlier {
			zscore++
		}
		if f.IQROutlier {
			iqr++
		}
		if f.IsOutlier {
			total++
		}
	}
	return zscore, iqr, total
}
