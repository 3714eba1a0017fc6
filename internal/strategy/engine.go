package strategy

import (
	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/model"
)

// Tiers defines the outlook mapping, highest first.
var Tiers = []struct {
	MinScore float64
	Tier     model.OutlookTier
}{
	{1.0, model.OutlookTier{Label: "Strong Buy", Bias: 1}},
	{0.4, model.OutlookTier{Label: "Buy", Bias: 0.5}},
	{-0.4, model.OutlookTier{Label: "Neutral", Bias: 0}},
	{-1.0, model.OutlookTier{Label: "Sell", Bias: -0.5}},
}

// DefaultTier is the lowest tier for scores < -1.0.
var DefaultTier = model.OutlookTier{Label: "Strong Sell", Bias: -1}

// mapTier maps a total score to an OutlookTier.
func mapTier(totalScore float64) model.OutlookTier {
	for _, t := range Tiers {
		if totalScore >= t.MinScore {
			return t.Tier
		}
	}
	return DefaultTier
}

// Evaluate scores the latest bar of an analysis.
func Evaluate(a *model.Analysis) *model.Outlook {
	rsi, rsiOK := latest(a.RSI)
	factors := []model.FactorScore{
		scoreRSI(rsi, rsiOK),
		scoreMACD(a),
		scoreVWAP(a),
		scoreBollinger(a),
	}

	total := 0.0
	for _, f := range factors {
		total += f.Weighted
	}

	outlook := &model.Outlook{
		Factors:    factors,
		TotalScore: total,
		Tier:       mapTier(total),
		RSIZone:    calculator.RSIZone(rsi, rsiOK),
	}
	switch outlook.RSIZone {
	case model.RSIZoneOverbought:
		outlook.WarningMsg = "⚠️ RSI above 70: overbought"
	case model.RSIZoneOversold:
		outlook.WarningMsg = "⚠️ RSI below 30: oversold"
	}
	return outlook
}

// latest returns the value at the most recent bar.
func latest(l model.Line) (float64, bool) {
	return l.At(l.Len() - 1)
}
