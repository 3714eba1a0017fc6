package watch

import (
	"log"
	"sync"
	"time"

	"StockAnalyzer/internal/model"
)

// Transition is an RSI zone change worth alerting on.
type Transition struct {
	Symbol string
	From   model.RSIZone
	To     model.RSIZone
}

// Tracker remembers each symbol's last RSI zone with concurrency safety.
type Tracker struct {
	mu       sync.Mutex
	state    *State
	filePath string
}

// NewTracker creates a Tracker, loading state from disk when filePath is set.
func NewTracker(filePath string) (*Tracker, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	return &Tracker{state: state, filePath: filePath}, nil
}

// Get returns the remembered state for symbol.
func (t *Tracker) Get(symbol string) (SymbolState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.state.Symbols[symbol]
	return s, ok
}

// Observe stores the latest analysis for a symbol and reports whether its
// RSI moved into the oversold or overbought zone. The first observation of
// a symbol counts as a move from UNKNOWN.
func (t *Tracker) Observe(a *model.Analysis) (Transition, bool) {
	if a.Outlook == nil {
		return Transition{}, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	prev, seen := t.state.Symbols[a.Symbol]
	from := model.RSIZoneUnknown
	if seen {
		from = prev.RSIZone
	}
	to := a.Outlook.RSIZone

	next := SymbolState{
		RSIZone:    to,
		TotalScore: a.Outlook.TotalScore,
		TierLabel:  a.Outlook.Tier.Label,
		CheckedAt:  time.Now(),
	}
	if v, ok := a.RSI.At(a.RSI.Len() - 1); ok {
		next.RSI = &v
	}
	next.LastClose, _ = a.LastClose()
	t.state.Symbols[a.Symbol] = next

	if err := SaveState(t.filePath, t.state); err != nil {
		log.Printf("[ERROR] save watch state: %v", err)
	}

	alert := from != to && (to == model.RSIZoneOversold || to == model.RSIZoneOverbought)
	return Transition{Symbol: a.Symbol, From: from, To: to}, alert
}
