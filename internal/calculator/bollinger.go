package calculator

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"StockAnalyzer/internal/model"
)

// CalculateBollinger returns the middle (SMA), upper and lower bands of the
// closes over window periods, k sample standard deviations (n-1 divisor)
// away from the middle. The first window-1 positions are undefined. With
// window 1 the sample deviation does not exist, so only the middle band
// is defined.
func CalculateBollinger(bars []model.OHLCV, window int, k float64) model.Bands {
	n := len(bars)
	closes := extractCloses(bars)
	bands := model.Bands{
		Middle: CalculateSMA(closes, window),
		Upper:  model.NewLine(n),
		Lower:  model.NewLine(n),
	}
	if window <= 0 {
		return bands
	}

	for i := window - 1; i < n; i++ {
		mid, ok := bands.Middle.At(i)
		if !ok {
			continue
		}
		sd := stat.StdDev(closes[i-window+1:i+1], nil)
		if math.IsNaN(sd) {
			continue
		}
		bands.Upper.Set(i, mid+k*sd)
		bands.Lower.Set(i, mid-k*sd)
	}
	return bands
}

// BandPosition returns where price sits in the envelope: 0 at the lower
// band, 1 at the upper band. ok is false when the bands are undefined or
// collapsed.
func BandPosition(price, upper, lower float64) (pos float64, ok bool) {
	if math.IsNaN(upper) || math.IsNaN(lower) || upper <= lower {
		return 0, false
	}
	return (price - lower) / (upper - lower), true
}
