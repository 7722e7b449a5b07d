package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollingMean(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}

	out, err := RollingMean(closes, 3)
	require.NoError(t, err)
	require.Len(t, out, 5)

	assert.False(t, out[0].Valid)
	assert.False(t, out[1].Valid)
	assert.Equal(t, Defined(2), out[2])
	assert.Equal(t, Defined(3), out[3])
	assert.Equal(t, Defined(4), out[4])
}

func TestRollingMeanWindowOne(t *testing.T) {
	closes := []float64{3, 1, 4}
	out, err := RollingMean(closes, 1)
	require.NoError(t, err)
	for i, c := range closes {
		assert.Equal(t, Defined(c), out[i])
	}
}

func TestRollingMeanRejectsBadWindow(t *testing.T) {
	_, err := RollingMean([]float64{1, 2}, 0)
	assert.Error(t, err)
	_, err = RollingMean([]float64{1, 2}, -5)
	assert.Error(t, err)
}

func TestRollingMeanShorterThanWindow(t *testing.T) {
	out, err := RollingMean([]float64{1, 2}, 5)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.False(t, out[0].Valid)
	assert.False(t, out[1].Valid)
}

func TestRollingStdDevPopulation(t *testing.T) {
	// Window {2, 4, 4, 4, 5, 5, 7, 9} has population stddev exactly 2.
	closes := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	out, err := RollingStdDev(closes, 8)
	require.NoError(t, err)
	require.Len(t, out, 8)

	for i := 0; i < 7; i++ {
		assert.False(t, out[i].Valid)
	}
	require.True(t, out[7].Valid)
	assert.InDelta(t, 2.0, out[7].Float64, 1e-12)
}

func TestRollingStdDevConstantSeries(t *testing.T) {
	closes := []float64{5, 5, 5, 5, 5}
	out, err := RollingStdDev(closes, 3)
	require.NoError(t, err)
	for i := 2; i < len(out); i++ {
		require.True(t, out[i].Valid)
		assert.Zero(t, out[i].Float64)
	}
}

func TestEMASeedAndRecurrence(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}
	out, err := EMA(closes, 3)
	require.NoError(t, err)
	require.Len(t, out, 5)

	assert.False(t, out[0].Valid)
	assert.False(t, out[1].Valid)

	// Seed is the simple mean of the first period.
	require.True(t, out[2].Valid)
	assert.InDelta(t, 2.0, out[2].Float64, 1e-12)

	// multiplier = 2/(3+1) = 0.5
	require.True(t, out[3].Valid)
	assert.InDelta(t, 3.0, out[3].Float64, 1e-12) // 4*0.5 + 2*0.5
	require.True(t, out[4].Valid)
	assert.InDelta(t, 4.0, out[4].Float64, 1e-12) // 5*0.5 + 3*0.5
}

func TestEMAShorterThanPeriod(t *testing.T) {
	out, err := EMA([]float64{1, 2}, 5)
	require.NoError(t, err)
	for _, v := range out {
		assert.False(t, v.Valid)
	}
}

func TestEMAOverValuesKeepsAlignment(t *testing.T) {
	values := []Value{{}, {}, Defined(1), Defined(2), Defined(3), Defined(4)}
	out, err := emaOverValues(values, 3)
	require.NoError(t, err)
	require.Len(t, out, 6)

	// Undefined prefix preserved, seed lands period-1 after the first
	// defined entry.
	assert.False(t, out[0].Valid)
	assert.False(t, out[1].Valid)
	assert.False(t, out[2].Valid)
	assert.False(t, out[3].Valid)
	require.True(t, out[4].Valid)
	assert.InDelta(t, 2.0, out[4].Float64, 1e-12)
	require.True(t, out[5].Valid)
	assert.InDelta(t, 3.0, out[5].Float64, 1e-12)
}

func TestEMAOverValuesAllUndefined(t *testing.T) {
	out, err := emaOverValues(make([]Value, 4), 2)
	require.NoError(t, err)
	for _, v := range out {
		assert.False(t, v.Valid)
	}
}

func TestValueOr(t *testing.T) {
	assert.Equal(t, 1.5, Defined(1.5).Or(9))
	assert.Equal(t, 9.0, Undefined.Or(9))
}
