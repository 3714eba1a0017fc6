package calculator

import "StockAnalyzer/internal/model"

// CalculateMACD returns the MACD line (EMA(fast) - EMA(slow) of closes) and
// its signal line (EMA(signal) of the MACD line). Both EMAs seed at the first
// close, so macd[0] is always 0 and no position is undefined. Early values
// are under-averaged; that is accepted.
func CalculateMACD(bars []model.OHLCV, fast, slow, signal int) (macd, signalLine model.Line) {
	n := len(bars)
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return model.NewLine(n), model.NewLine(n)
	}

	closes := extractCloses(bars)
	emaFast := CalculateEMA(closes, fast)
	emaSlow := CalculateEMA(closes, slow)

	macd = model.NewLine(n)
	for i := 0; i < n; i++ {
		macd.Set(i, emaFast.Values[i]-emaSlow.Values[i])
	}
	signalLine = CalculateEMA(macd.Values, signal)
	return macd, signalLine
}
