package calculator

import "StockAnalyzer/internal/model"

// CalculateVWAP returns the running volume-weighted average of the typical
// price from the first bar. It never resets; callers slice the series per
// session if they want session VWAP. Positions where cumulative volume is
// still zero are undefined.
func CalculateVWAP(bars []model.OHLCV) model.Line {
	out := model.NewLine(len(bars))
	var cumPV, cumVol float64
	for i, b := range bars {
		cumPV += b.TypicalPrice() * b.Volume
		cumVol += b.Volume
		if cumVol == 0 {
			continue
		}
		out.Set(i, cumPV/cumVol)
	}
	return out
}
