package collector

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/metrics"
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/strategy"
)

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher Fetcher
	Params  model.IndicatorParams
	Metrics *metrics.Metrics
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, params model.IndicatorParams, m *metrics.Metrics) *Collector {
	return &Collector{Fetcher: fetcher, Params: params, Metrics: m}
}

// Analyze fetches the series and fundamentals for symbol and computes every
// indicator. A series failure is returned as-is; a fundamentals failure only
// leaves the ratio tiles empty.
func (c *Collector) Analyze(ctx context.Context, symbol string, interval model.Interval) (*model.Analysis, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	start := time.Now()
	series, err := c.Fetcher.FetchSeries(ctx, symbol, interval)
	c.Metrics.ObserveFetch(c.Fetcher.Name(), start, err)
	if err != nil {
		return nil, fmt.Errorf("fetch %s %s series: %w", symbol, interval, err)
	}

	fund, err := c.Fetcher.FetchFundamentals(ctx, symbol)
	if err != nil {
		log.Printf("[WARN] fundamentals for %s unavailable: %v", symbol, err)
		fund = &model.Fundamentals{Symbol: symbol}
	}
	if !fund.High52w.Valid || !fund.Low52w.Valid {
		if h, l, err := calculator.Calculate52WeekRange(series.Bars, interval); err == nil {
			fund.High52w = decimal.NewNullDecimal(decimal.NewFromFloat(h))
			fund.Low52w = decimal.NewNullDecimal(decimal.NewFromFloat(l))
		}
	}

	computeStart := time.Now()
	a := Compute(series, c.Params)
	a.Fundamentals = fund
	a.Outlook = strategy.Evaluate(a)
	c.Metrics.ObserveAnalysis(string(interval), time.Since(computeStart))
	log.Printf("[INFO] analyzed %s %s: %d bars", symbol, interval, series.Len())
	return a, nil
}

// Compute runs the indicator engine over a series.
func Compute(series *model.Series, p model.IndicatorParams) *model.Analysis {
	bars := series.Bars
	macd, signal := calculator.CalculateMACD(bars, p.MACDFast, p.MACDSlow, p.MACDSignal)
	return &model.Analysis{
		Symbol:     series.Symbol,
		Interval:   series.Interval,
		Series:     series,
		Params:     p,
		RSI:        calculator.CalculateRSI(bars, p.RSIWindow),
		MACD:       macd,
		Signal:     signal,
		VWAP:       calculator.CalculateVWAP(bars),
		Bollinger:  calculator.CalculateBollinger(bars, p.BollingerWindow, p.BollingerK),
		ComputedAt: time.Now(),
	}
}
