package model

import (
	"fmt"
	"strings"
	"time"
)

// Indicator names a technical indicator the analyzer can render.
type Indicator string

const (
	IndicatorMACD      Indicator = "MACD"
	IndicatorRSI       Indicator = "RSI"
	IndicatorVWAP      Indicator = "VWAP"
	IndicatorBollinger Indicator = "BOLLINGER"
)

// Indicators lists the supported indicators in display order.
var Indicators = []Indicator{IndicatorMACD, IndicatorRSI, IndicatorVWAP, IndicatorBollinger}

// ParseIndicator accepts the indicator name in any case; "BB" and
// "BOLLINGER BANDS" are aliases for Bollinger.
func ParseIndicator(s string) (Indicator, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MACD":
		return IndicatorMACD, nil
	case "RSI":
		return IndicatorRSI, nil
	case "VWAP":
		return IndicatorVWAP, nil
	case "BOLLINGER", "BOLLINGER BANDS", "BB":
		return IndicatorBollinger, nil
	}
	return "", fmt.Errorf("unknown indicator %q", s)
}

// IndicatorParams are the lookback settings for the indicator engine.
type IndicatorParams struct {
	RSIWindow       int     `yaml:"rsi_window" json:"rsi_window"`
	MACDFast        int     `yaml:"macd_fast" json:"macd_fast"`
	MACDSlow        int     `yaml:"macd_slow" json:"macd_slow"`
	MACDSignal      int     `yaml:"macd_signal" json:"macd_signal"`
	BollingerWindow int     `yaml:"bollinger_window" json:"bollinger_window"`
	BollingerK      float64 `yaml:"bollinger_k" json:"bollinger_k"`
}

// DefaultIndicatorParams returns the conventional RSI(14), MACD(12,26,9)
// and Bollinger(20,2) settings.
func DefaultIndicatorParams() IndicatorParams {
	return IndicatorParams{
		RSIWindow:       14,
		MACDFast:        12,
		MACDSlow:        26,
		MACDSignal:      9,
		BollingerWindow: 20,
		BollingerK:      2,
	}
}

// Bands is a Bollinger envelope.
type Bands struct {
	Middle Line `json:"middle"`
	Upper  Line `json:"upper"`
	Lower  Line `json:"lower"`
}

// Analysis is one symbol's series with every computed indicator.
type Analysis struct {
	Symbol       string          `json:"symbol"`
	Interval     Interval        `json:"interval"`
	Series       *Series         `json:"series"`
	Fundamentals *Fundamentals   `json:"fundamentals"`
	Params       IndicatorParams `json:"params"`
	RSI          Line            `json:"rsi"`
	MACD         Line            `json:"macd"`
	Signal       Line            `json:"signal"`
	VWAP         Line            `json:"vwap"`
	Bollinger    Bands           `json:"bollinger"`
	Outlook      *Outlook        `json:"outlook,omitempty"`
	ComputedAt   time.Time       `json:"computed_at"`
}

// LastClose returns the close of the most recent bar.
func (a *Analysis) LastClose() (float64, bool) {
	bar, ok := a.Series.Last()
	return bar.Close, ok
}
