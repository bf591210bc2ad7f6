// Package amount turns free-text funding amounts into numbers and assigns
// each amount a fixed size tier.
//
// Normalization never fails: anything that cannot be read as a decimal
// number becomes domain.Missing. Bucketing maps missing amounts to
// domain.BucketUnknown and every known amount to exactly one of the six
// tiers, with threshold values belonging to the lower tier.
package amount
