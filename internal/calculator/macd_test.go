package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMACD_FirstValueIsZero(t *testing.T) {
	for _, closes := range [][]float64{{42}, wave(50), linear(10, 5, 3)} {
		macd, signal := CalculateMACD(barsFromCloses(closes...), 12, 26, 9)
		require.Equal(t, len(closes), macd.Len())
		require.Equal(t, len(closes), signal.Len())

		v, ok := macd.At(0)
		require.True(t, ok)
		assert.Equal(t, 0.0, v)
		s, ok := signal.At(0)
		require.True(t, ok)
		assert.Equal(t, 0.0, s)
	}
}

func TestCalculateMACD_FullyDefined(t *testing.T) {
	macd, signal := CalculateMACD(barsFromCloses(wave(40)...), 12, 26, 9)
	for i := 0; i < 40; i++ {
		assert.True(t, macd.Valid[i])
		assert.True(t, signal.Valid[i])
	}
}

func TestCalculateMACD_LinearUptrend(t *testing.T) {
	// EMA(span) lags a unit-slope line by (span-1)/2, so MACD converges
	// to (26-1)/2 - (12-1)/2 = 7.
	bars := barsFromCloses(linear(400, 100, 1)...)
	macd, signal := CalculateMACD(bars, 12, 26, 9)

	last, ok := macd.Last()
	require.True(t, ok)
	assert.InDelta(t, 7.0, last, 1e-6)
	assert.Greater(t, last, 0.0)

	for i := 1; i <= 100; i++ {
		assert.Less(t, signal.Values[i], macd.Values[i], "signal should trail below macd at %d", i)
	}
}

func TestCalculateMACD_KnownValues(t *testing.T) {
	// spans 1 and 3: alpha 1 and 0.5
	macd, signal := CalculateMACD(barsFromCloses(10, 12, 14), 1, 3, 1)
	// emaSlow: 10, 11, 12.5 ; emaFast = closes
	assert.InDeltaSlice(t, []float64{0, 1, 1.5}, macd.Values, 1e-12)
	assert.InDeltaSlice(t, macd.Values, signal.Values, 1e-12)
}

func TestCalculateMACD_InvalidParams(t *testing.T) {
	macd, signal := CalculateMACD(barsFromCloses(1, 2, 3), 0, 26, 9)
	assert.Equal(t, 3, macd.Len())
	assert.Equal(t, 3, signal.Len())
	_, ok := macd.Last()
	assert.False(t, ok)
}

func TestCalculateMACD_Empty(t *testing.T) {
	macd, signal := CalculateMACD(nil, 12, 26, 9)
	assert.Equal(t, 0, macd.Len())
	assert.Equal(t, 0, signal.Len())
}
