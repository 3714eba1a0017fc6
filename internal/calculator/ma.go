package calculator

import (
	"StockAnalyzer/internal/model"
)

// CalculateSMA returns the simple moving average of values over a trailing
// window. The first window-1 positions are undefined.
func CalculateSMA(values []float64, window int) model.Line {
	out := model.NewLine(len(values))
	if window <= 0 {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out.Set(i, sum/float64(window))
		}
	}
	return out
}

// CalculateEMA returns the exponential moving average of values with
// alpha = 2/(span+1), seeded with the first value. Every position is defined.
func CalculateEMA(values []float64, span int) model.Line {
	out := model.NewLine(len(values))
	if span <= 0 || len(values) == 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	prev := values[0]
	out.Set(0, prev)
	for i := 1; i < len(values); i++ {
		prev = alpha*values[i] + (1-alpha)*prev
		out.Set(i, prev)
	}
	return out
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
