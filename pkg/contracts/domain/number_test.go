package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnown(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		missing bool
	}{
		{"finite value", 12.5, false},
		{"zero", 0, false},
		{"negative", -3, false},
		{"NaN collapses to missing", math.NaN(), true},
		{"positive infinity collapses to missing", math.Inf(1), true},
		{"negative infinity collapses to missing", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.missing, Known(tt.value).IsMissing())
		})
	}
}

func TestNumberString(t *testing.T) {
	assert.Equal(t, "", Missing().String())
	assert.Equal(t, "1000000", Known(1e6).String())
	assert.Equal(t, "2.5", Known(2.5).String())
	assert.Equal(t, "-40", Known(-40).String())
	assert.Equal(t, "0.000001", Known(1e-6).String())
}

func TestNumberJSON(t *testing.T) {
	type payload struct {
		A Number `json:"a"`
		B Number `json:"b"`
	}

	data, err := json.Marshal(payload{A: Known(3.25), B: Missing()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":3.25,"b":null}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 3.25, decoded.A.OrElse(0))
	assert.True(t, decoded.B.IsMissing())
}

func TestKnownValues(t *testing.T) {
	column := []Number{Known(1), Missing(), Known(3), Missing()}
	assert.Equal(t, []float64{1, 3}, KnownValues(column))
	assert.Empty(t, KnownValues(nil))
}

func TestBucketTiers(t *testing.T) {
	tiers := Tiers()
	require.Len(t, tiers, 6)
	for _, tier := range tiers {
		assert.True(t, tier.IsTier(), tier)
	}
	assert.False(t, BucketUnknown.IsTier())
}

func TestNewOutlierFlag(t *testing.T) {
	assert.Equal(t, OutlierFlag{}, NewOutlierFlag(false, false))
	assert.True(t, NewOutlierFlag(true, false).IsOutlier)
	assert.True(t, NewOutlierFlag(false, true).IsOutlier)
	assert.True(t, NewOutlierFlag(true, true).IsOutlier)
}
