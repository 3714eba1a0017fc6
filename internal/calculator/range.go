package calculator

import (
	"errors"
	"math"

	"StockAnalyzer/internal/model"
)

// periodsPerYear is the number of bars covering 52 weeks at each interval.
var periodsPerYear = map[model.Interval]int{
	model.IntervalDaily:   252,
	model.IntervalWeekly:  52,
	model.IntervalMonthly: 12,
}

// Calculate52WeekRange scans the bars covering the most recent 52 weeks and
// returns the high and low.
func Calculate52WeekRange(bars []model.OHLCV, interval model.Interval) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	lookback, ok := periodsPerYear[interval]
	if !ok {
		return 0, 0, errors.New("unknown interval")
	}
	n := len(bars)
	start := n - lookback
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}
	return high, low, nil
}
