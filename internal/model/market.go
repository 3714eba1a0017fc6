package model

import (
	"fmt"
	"strings"
	"time"
)

// Interval is the bar size requested from a data source.
type Interval string

const (
	IntervalDaily   Interval = "daily"
	IntervalWeekly  Interval = "weekly"
	IntervalMonthly Interval = "monthly"
)

// Intervals lists the supported intervals in display order.
var Intervals = []Interval{IntervalDaily, IntervalWeekly, IntervalMonthly}

// ParseInterval accepts "daily", "weekly" or "monthly" (case-insensitive).
func ParseInterval(s string) (Interval, error) {
	iv := Interval(strings.ToLower(strings.TrimSpace(s)))
	switch iv {
	case IntervalDaily, IntervalWeekly, IntervalMonthly:
		return iv, nil
	}
	return "", fmt.Errorf("unknown interval %q (want daily, weekly or monthly)", s)
}

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// TypicalPrice is (high+low+close)/3.
func (b OHLCV) TypicalPrice() float64 {
	return (b.High + b.Low + b.Close) / 3
}

// Series is an ordered run of bars for one symbol and interval.
// Bars are strictly increasing by Time. A Series is not modified after fetch.
type Series struct {
	Symbol    string    `json:"symbol"`
	Interval  Interval  `json:"interval"`
	Bars      []OHLCV   `json:"bars"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Len returns the number of bars.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

// Closes returns the close prices in bar order.
func (s *Series) Closes() []float64 {
	closes := make([]float64, s.Len())
	for i := 0; i < s.Len(); i++ {
		closes[i] = s.Bars[i].Close
	}
	return closes
}

// Last returns the most recent bar. ok is false for an empty series.
func (s *Series) Last() (bar OHLCV, ok bool) {
	if s.Len() == 0 {
		return OHLCV{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}
