package stats

import (
	"math"
	"sort"

	"github.com/OlixIgnacious/indian-startups-transformations/pkg/contracts/domain"
)

// Description holds the aggregates of one numeric column
type Description struct {
	Count  int
	Min    domain.Number
	Max    domain.Number
	Mean   domain.Number
	Median domain.Number
	StdDev domain.Number
	Q1     domain.Number
	Q3     domain.Number
	IQR    domain.Number
}

// Describe computes every aggregate in a single sort of the input
func Describe(values []float64) Description {
	desc := Description{Count: len(values)}
	if len(values) == 0 {
		return desc
	}

	sorted := Sorted(values)
	mean := Mean(values)

	desc.Min = domain.Known(sorted[0])
	desc.Max = domain.Known(sorted[len(sorted)-1])
	desc.Mean = mean
	desc.Median = Quantile(sorted, 0.5)
	desc.StdDev = StdDev(values, mean.OrElse(0))
	desc.Q1 = Quantile(sorted, 0.25)
	desc.Q3 = Quantile(sorted, 0.75)

	q1, _ := desc.Q1.Float64()
	q3, _ := desc.Q3.Float64()
	desc.IQR = domain.Known(q3 - q1)

	return desc
}

// Sorted returns an ascending copy of values
func Sorted(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}

// Mean computes the arithmetic mean
func Mean(values []float64) domain.Number {
	if len(values) == 0 {
		return domain.Missing()
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return domain.Known(sum / float64(len(values)))
}

// StdDev computes the sample standard deviation around mean.
// Fewer than two values leave it undefined.
func StdDev(values []float64, mean float64) domain.Number {
	if len(values) < 2 {
		return domain.Missing()
	}

	sumSquaredDeviations := 0.0
	for _, v := range values {
		deviation := v - mean
		sumSquaredDeviations += deviation * deviation
	}

	return domain.Known(math.Sqrt(sumSquaredDeviations / float64(len(values)-1)))
}

// Quantile returns the q-th quantile of an ascending slice using linear
// interpolation. q is clamped to [0, 1].
func Quantile(sorted []float64, q float64) domain.Number {
	n := len(sorted)
	if n == 0 || math.IsNaN(q) {
		return domain.Missing()
	}

	if q <= 0 {
		return domain.Known(sorted[0])
	}
	if q >= 1 {
		return domain.Known(sorted[n-1])
	}

	index := q * float64(n-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))

	if lower == upper {
		return domain.Known(sorted[lower])
	}

	weight := index - float64(lower)
	return domain.Known(sorted[lower]*(1-weight) + sorted[upper]*weight)
}

// Median returns the 0.5 quantile of unsorted values
func Median(values []float64) domain.Number {
	return Quantile(Sorted(values), 0.5)
}
