// Package stats provides the descriptive statistics shared by the outlier
// detector and the summary reporter.
//
// All functions take plain float64 slices that contain no missing values;
// callers strip missing amounts with domain.KnownValues first. Results that
// are undefined for the given input (mean of nothing, standard deviation of a
// single value) come back as domain.Missing rather than NaN.
//
// Quantiles use linear interpolation between closest ranks, the same method
// as numpy's default "linear" percentile:
//
//	index := q * (n-1)
//	value := sorted[floor(index)]*(1-w) + sorted[ceil(index)]*w
//
// Standard deviation is the sample standard deviation (n-1 denominator).
package stats
