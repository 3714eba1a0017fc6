package calculator

import (
	"math"
	"time"

	"StockAnalyzer/internal/model"
)

var baseTime = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// barsFromCloses builds daily bars whose high/low bracket the close by 1.
func barsFromCloses(closes ...float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   baseTime.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    math.Max(c-1, 0),
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

// wave returns n closes oscillating around 100.
func wave(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/3) + float64(i%7)
	}
	return closes
}

func linear(n int, start, step float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + step*float64(i)
	}
	return closes
}
