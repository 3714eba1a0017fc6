package calculator

import "StockAnalyzer/internal/model"

// CalculateRSI computes the RSI of closing prices using simple moving
// averages of gains and losses over window periods.
//
// The first bar has no previous close and contributes a zero gain and loss,
// so the first defined value is at index window-1. When the average loss is
// zero the RSI saturates at 100, unless the average gain is zero too (a flat
// window), in which case the value is undefined.
func CalculateRSI(bars []model.OHLCV, window int) model.Line {
	out := model.NewLine(len(bars))
	if window <= 0 || len(bars) == 0 {
		return out
	}

	gains := make([]float64, len(bars))
	losses := make([]float64, len(bars))
	for i := 1; i < len(bars); i++ {
		change := bars[i].Close - bars[i-1].Close
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	// nonzero counters pin the running sums to exactly 0 once every
	// nonzero entry has left the window.
	var sumGain, sumLoss float64
	var nGain, nLoss int
	for i := range bars {
		sumGain += gains[i]
		sumLoss += losses[i]
		if gains[i] != 0 {
			nGain++
		}
		if losses[i] != 0 {
			nLoss++
		}
		if i >= window {
			old := i - window
			sumGain -= gains[old]
			sumLoss -= losses[old]
			if gains[old] != 0 {
				nGain--
			}
			if losses[old] != 0 {
				nLoss--
			}
		}
		if nGain == 0 {
			sumGain = 0
		}
		if nLoss == 0 {
			sumLoss = 0
		}
		if i < window-1 {
			continue
		}

		avgGain := sumGain / float64(window)
		avgLoss := sumLoss / float64(window)
		switch {
		case avgLoss == 0 && avgGain == 0:
			// 0/0: left undefined
		case avgLoss == 0:
			out.Set(i, 100.0)
		default:
			rs := avgGain / avgLoss
			out.Set(i, 100.0-100.0/(1.0+rs))
		}
	}
	return out
}

// RSIZone classifies an RSI value against the 30/70 guide lines.
func RSIZone(rsi float64, ok bool) model.RSIZone {
	switch {
	case !ok:
		return model.RSIZoneUnknown
	case rsi < 30:
		return model.RSIZoneOversold
	case rsi > 70:
		return model.RSIZoneOverbought
	default:
		return model.RSIZoneNeutral
	}
}
