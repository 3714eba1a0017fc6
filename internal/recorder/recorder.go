package recorder

import (
	"time"

	"StockAnalyzer/internal/id"
	"StockAnalyzer/internal/model"
)

// Snapshot holds the latest-bar indicator values of one analysis run.
// Indicator fields are nil where the value was undefined.
type Snapshot struct {
	ID         string         `json:"id"`
	Symbol     string         `json:"symbol"`
	Interval   model.Interval `json:"interval"`
	BarTime    time.Time      `json:"bar_time"`
	Close      float64        `json:"close"`
	RSI        *float64       `json:"rsi"`
	MACD       *float64       `json:"macd"`
	Signal     *float64       `json:"signal"`
	VWAP       *float64       `json:"vwap"`
	BBUpper    *float64       `json:"bb_upper"`
	BBMiddle   *float64       `json:"bb_middle"`
	BBLower    *float64       `json:"bb_lower"`
	TotalScore float64        `json:"total_score"`
	TierLabel  string         `json:"tier_label"`
	RSIZone    model.RSIZone  `json:"rsi_zone"`
	RecordedAt time.Time      `json:"recorded_at"`
}

// AlertEvent records an RSI zone transition.
type AlertEvent struct {
	Symbol   string
	Interval model.Interval
	From     model.RSIZone
	To       model.RSIZone
	RSI      float64
	Price    float64
}

// NewSnapshot builds a snapshot from the most recent bar of an analysis.
// It returns nil for an empty series.
func NewSnapshot(a *model.Analysis) *Snapshot {
	bar, ok := a.Series.Last()
	if !ok {
		return nil
	}
	last := a.Series.Len() - 1
	at := func(l model.Line) *float64 {
		if v, ok := l.At(last); ok {
			return &v
		}
		return nil
	}

	snap := &Snapshot{
		ID:         id.NewAt(bar.Time),
		Symbol:     a.Symbol,
		Interval:   a.Interval,
		BarTime:    bar.Time,
		Close:      bar.Close,
		RSI:        at(a.RSI),
		MACD:       at(a.MACD),
		Signal:     at(a.Signal),
		VWAP:       at(a.VWAP),
		BBUpper:    at(a.Bollinger.Upper),
		BBMiddle:   at(a.Bollinger.Middle),
		BBLower:    at(a.Bollinger.Lower),
		RSIZone:    model.RSIZoneUnknown,
		RecordedAt: a.ComputedAt,
	}
	if a.Outlook != nil {
		snap.TotalScore = a.Outlook.TotalScore
		snap.TierLabel = a.Outlook.Tier.Label
		snap.RSIZone = a.Outlook.RSIZone
	}
	return snap
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordSnapshot(snap *Snapshot) error
	RecordAlert(evt *AlertEvent) error
	LatestSnapshots(symbol string, limit int) ([]Snapshot, error)
	Close() error
}
