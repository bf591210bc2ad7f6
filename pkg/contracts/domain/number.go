package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Number is a float64 that may be missing. The zero value is missing.
//
// Missing values are excluded from aggregates, map to BucketUnknown and are
// never flagged as outliers. NaN and ±Inf are never stored as known values.
type Number struct {
	value float64
	known bool
}

// Missing returns the missing marker
func Missing() Number {
	return Number{}
}

// Known wraps v. NaN and infinities collapse to Missing.
func Known(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Number{}
	}
	return Number{value: v, known: true}
}

// IsMissing reports whether n carries no value
func (n Number) IsMissing() bool {
	return !n.known
}

// Float64 returns the value and whether it is known
func (n Number) Float64() (float64, bool) {
	return n.value, n.known
}

// OrElse returns the value, or def when missing
func (n Number) OrElse(def float64) float64 {
	if !n.known {
		return def
	}
	return n.value
}

// String renders the shortest decimal form without exponent, or "" when missing.
// The rendering round-trips through the amount normalizer unchanged.
func (n Number) String() string {
	if !n.known {
		return ""
	}
	return strconv.FormatFloat(n.value, 'f', -1, 64)
}

// MarshalJSON encodes missing as null
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.known {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

// UnmarshalJSON accepts null or a JSON number
func (n *Number) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*n = Missing()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Known(v)
	return nil
}

// KnownValues returns the non-missing values in column order
func KnownValues(column []Number) []float64 {
	values := make([]float64, 0, len(column))
	for _, n := range column {
		if v, ok := n.Float64(); ok {
			values = append(values, v)
		}
	}
	return values
}
