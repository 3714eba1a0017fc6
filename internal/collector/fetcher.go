package collector

import (
	"context"
	"errors"
	"sort"

	"StockAnalyzer/internal/model"
)

// Failures reported by a Fetcher. Providers wrap these together with their
// own message, so errors.Is works and Error() still carries the provider's
// text unmodified.
var (
	ErrInvalidSymbol     = errors.New("API Error")
	ErrRateLimited       = errors.New("API Limit")
	ErrMalformedResponse = errors.New("unexpected API response format")
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchSeries(ctx context.Context, symbol string, interval model.Interval) (*model.Series, error)
	FetchFundamentals(ctx context.Context, symbol string) (*model.Fundamentals, error)
	Name() string
}

// normalizeBars sorts bars chronologically and drops repeated timestamps,
// keeping the first occurrence.
func normalizeBars(bars []model.OHLCV) []model.OHLCV {
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	out := bars[:0]
	for i, b := range bars {
		if i > 0 && b.Time.Equal(out[len(out)-1].Time) {
			continue
		}
		out = append(out, b)
	}
	return out
}
