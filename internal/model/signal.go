package model

// FactorScore represents a single factor's scoring result.
type FactorScore struct {
	Name       string  `json:"name"`
	RawScore   float64 `json:"raw_score"`
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"`
	Available  bool    `json:"available"`
	Commentary string  `json:"commentary"`
}

// OutlookTier maps a total score range to a label.
type OutlookTier struct {
	Label string  `json:"label"`
	Bias  float64 `json:"bias"` // -1 bearish .. +1 bullish
}

// RSIZone classifies the latest RSI value.
type RSIZone string

const (
	RSIZoneOversold   RSIZone = "OVERSOLD"
	RSIZoneNeutral    RSIZone = "NEUTRAL"
	RSIZoneOverbought RSIZone = "OVERBOUGHT"
	RSIZoneUnknown    RSIZone = "UNKNOWN"
)

// Outlook is the technical summary derived from the latest indicator values.
type Outlook struct {
	Factors    []FactorScore `json:"factors"`
	TotalScore float64       `json:"total_score"`
	Tier       OutlookTier   `json:"tier"`
	RSIZone    RSIZone       `json:"rsi_zone"`
	WarningMsg string        `json:"warning,omitempty"`
}
