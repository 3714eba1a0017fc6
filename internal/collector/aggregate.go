package collector

import (
	"time"

	"StockAnalyzer/internal/model"
)

func isoWeekKey(t time.Time) int {
	year, week := t.ISOWeek()
	return year*100 + week
}

func monthKey(t time.Time) int {
	return t.Year()*100 + int(t.Month())
}

// aggregateBars folds consecutive daily bars sharing a period key into one
// bar: first open, highest high, lowest low, last close, summed volume. The
// bar is stamped with the period's first day.
func aggregateBars(daily []model.OHLCV, key func(time.Time) int) []model.OHLCV {
	if len(daily) == 0 {
		return nil
	}
	var out []model.OHLCV
	cur := daily[0]
	curKey := key(cur.Time)

	for _, d := range daily[1:] {
		if k := key(d.Time); k != curKey {
			out = append(out, cur)
			cur, curKey = d, k
			continue
		}
		if d.High > cur.High {
			cur.High = d.High
		}
		if d.Low < cur.Low {
			cur.Low = d.Low
		}
		cur.Close = d.Close
		cur.Volume += d.Volume
	}
	return append(out, cur)
}
