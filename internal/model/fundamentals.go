package model

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// NotAvailable is shown for ratios the provider did not report.
const NotAvailable = "N/A"

// Fundamentals holds the key ratios shown next to the price chart.
type Fundamentals struct {
	Symbol        string              `json:"symbol"`
	PERatio       decimal.NullDecimal `json:"pe_ratio"`
	EPS           decimal.NullDecimal `json:"eps"`
	ROE           decimal.NullDecimal `json:"roe"`
	MarketCap     decimal.NullDecimal `json:"market_cap"`
	DividendYield decimal.NullDecimal `json:"dividend_yield"` // fraction, 0.0044 = 0.44%
	ProfitMargin  decimal.NullDecimal `json:"profit_margin"`
	High52w       decimal.NullDecimal `json:"high_52w"`
	Low52w        decimal.NullDecimal `json:"low_52w"`
}

// Tile is one labeled metric.
type Tile struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ParseDecimal parses a provider value. Empty, "None", "-" and garbage are N/A.
func ParseDecimal(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	switch s {
	case "", "None", "-", NotAvailable:
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// Tiles returns the eight display tiles in fixed order.
func (f *Fundamentals) Tiles() []Tile {
	if f == nil {
		f = &Fundamentals{}
	}
	return []Tile{
		{"P/E Ratio", plain(f.PERatio)},
		{"EPS", plain(f.EPS)},
		{"ROE", plain(f.ROE)},
		{"Market Cap", marketCap(f.MarketCap)},
		{"Dividend Yield", percent(f.DividendYield)},
		{"Profit Margin", plain(f.ProfitMargin)},
		{"52 Week High", plain(f.High52w)},
		{"52 Week Low", plain(f.Low52w)},
	}
}

func plain(d decimal.NullDecimal) string {
	if !d.Valid {
		return NotAvailable
	}
	return d.Decimal.String()
}

func marketCap(d decimal.NullDecimal) string {
	if !d.Valid {
		return NotAvailable
	}
	return "$" + humanize.Comma(d.Decimal.IntPart())
}

func percent(d decimal.NullDecimal) string {
	if !d.Valid {
		return NotAvailable
	}
	return d.Decimal.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
