package collector

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"StockAnalyzer/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price        float64
	Bars         []model.OHLCV // returned as-is for every interval when set
	Fundamentals *model.Fundamentals
	Err          error // returned by FetchSeries when set
	FundErr      error // returned by FetchFundamentals when set
	Calls        int
	End          time.Time // last generated bar; zero means today

	mu sync.Mutex
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(_ context.Context, symbol string, interval model.Interval) (*model.Series, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	bars := m.Bars
	if bars == nil {
		bars = m.generate(interval)
	}
	out := make([]model.OHLCV, len(bars))
	copy(out, bars)
	return &model.Series{Symbol: symbol, Interval: interval, Bars: out, FetchedAt: time.Now()}, nil
}

func (m *MockFetcher) FetchFundamentals(_ context.Context, symbol string) (*model.Fundamentals, error) {
	if m.FundErr != nil {
		return nil, m.FundErr
	}
	if m.Fundamentals != nil {
		f := *m.Fundamentals
		return &f, nil
	}
	return &model.Fundamentals{
		Symbol:        symbol,
		PERatio:       decimal.NewNullDecimal(decimal.RequireFromString("28.5")),
		EPS:           decimal.NewNullDecimal(decimal.RequireFromString("6.42")),
		MarketCap:     decimal.NewNullDecimal(decimal.NewFromFloat(m.Price * 1e9)),
		DividendYield: decimal.NewNullDecimal(decimal.RequireFromString("0.005")),
	}, nil
}

// generate builds a year of daily bars and aggregates them to the
// requested interval.
func (m *MockFetcher) generate(interval model.Interval) []model.OHLCV {
	end := m.End
	if end.IsZero() {
		end = time.Now().UTC().Truncate(24 * time.Hour)
	}
	price := m.Price
	if price <= 0 {
		price = 100
	}
	daily := generateMockBars(price, 365, end)
	switch interval {
	case model.IntervalWeekly:
		return aggregateBars(daily, isoWeekKey)
	case model.IntervalMonthly:
		return aggregateBars(daily, monthKey)
	default:
		return daily
	}
}

func generateMockBars(basePrice float64, count int, end time.Time) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		// slow drift plus a ~2 month swing so RSI visits both zones
		p := basePrice * (1 + float64(i-count/2)*0.001 + 0.08*math.Sin(float64(i)/10))
		bars[i] = model.OHLCV{
			Time:   end.AddDate(0, 0, -(count - 1 - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
