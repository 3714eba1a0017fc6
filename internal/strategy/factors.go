package strategy

import (
	"fmt"

	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/model"
)

const (
	weightRSI       = 0.30
	weightMACD      = 0.30
	weightVWAP      = 0.15
	weightBollinger = 0.25
)

func unavailable(name string, weight float64) model.FactorScore {
	return model.FactorScore{Name: name, Weight: weight, Commentary: "unavailable"}
}

func factor(name string, score, weight float64, commentary string) model.FactorScore {
	return model.FactorScore{
		Name:       name,
		RawScore:   score,
		Weight:     weight,
		Weighted:   score * weight,
		Available:  true,
		Commentary: commentary,
	}
}

// scoreRSI is contrarian: oversold scores positive, overbought negative.
func scoreRSI(rsi float64, ok bool) model.FactorScore {
	if !ok {
		return unavailable("RSI", weightRSI)
	}
	var score float64
	switch {
	case rsi <= 20:
		score = 2.0
	case rsi <= 30:
		score = 1.5
	case rsi <= 40:
		score = 0.5
	case rsi <= 60:
		score = 0
	case rsi <= 70:
		score = -0.5
	case rsi <= 80:
		score = -1.5
	default:
		score = -2.0
	}
	return factor("RSI", score, weightRSI, fmt.Sprintf("RSI=%.0f", rsi))
}

// scoreMACD follows momentum: MACD above its signal line is bullish,
// more so when MACD itself is above zero.
func scoreMACD(a *model.Analysis) model.FactorScore {
	macd, ok1 := latest(a.MACD)
	signal, ok2 := latest(a.Signal)
	if !ok1 || !ok2 || a.Series.Len() < 2 {
		return unavailable("MACD", weightMACD)
	}
	hist := macd - signal

	var score float64
	var commentary string
	switch {
	case hist > 0 && macd > 0:
		score, commentary = 1.5, "above signal, above zero"
	case hist > 0:
		score, commentary = 1.0, "above signal"
	case hist < 0 && macd < 0:
		score, commentary = -1.5, "below signal, below zero"
	case hist < 0:
		score, commentary = -1.0, "below signal"
	default:
		commentary = "flat"
	}
	return factor("MACD", score, weightMACD, commentary)
}

// scoreVWAP scores the close's deviation from VWAP; trading below VWAP
// is treated as a discount.
func scoreVWAP(a *model.Analysis) model.FactorScore {
	vwap, ok := latest(a.VWAP)
	price, hasPrice := a.LastClose()
	if !ok || !hasPrice || vwap == 0 {
		return unavailable("VWAP", weightVWAP)
	}
	deviation := (price - vwap) / vwap * 100

	var score float64
	switch {
	case deviation <= -5:
		score = 1.0
	case deviation < 0:
		score = 0.5
	case deviation == 0:
		score = 0
	case deviation < 5:
		score = -0.5
	default:
		score = -1.0
	}
	return factor("VWAP", score, weightVWAP, fmt.Sprintf("deviation %+.1f%%", deviation))
}

// scoreBollinger scores the close's position inside the envelope.
func scoreBollinger(a *model.Analysis) model.FactorScore {
	upper, ok1 := latest(a.Bollinger.Upper)
	lower, ok2 := latest(a.Bollinger.Lower)
	price, hasPrice := a.LastClose()
	if !ok1 || !ok2 || !hasPrice {
		return unavailable("Bollinger", weightBollinger)
	}
	pos, ok := calculator.BandPosition(price, upper, lower)
	if !ok {
		return factor("Bollinger", 0, weightBollinger, "bands collapsed")
	}

	var score float64
	switch {
	case pos < 0:
		score = 2.0
	case pos <= 0.2:
		score = 1.0
	case pos <= 0.8:
		score = 0
	case pos <= 1:
		score = -1.0
	default:
		score = -2.0
	}
	return factor("Bollinger", score, weightBollinger, fmt.Sprintf("position=%.0f%%", pos*100))
}
