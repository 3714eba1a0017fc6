package watch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"StockAnalyzer/internal/model"
)

// SymbolState is what the watcher remembers about one symbol between runs.
type SymbolState struct {
	RSIZone    model.RSIZone `json:"rsi_zone"`
	RSI        *float64      `json:"rsi,omitempty"`
	TotalScore float64       `json:"total_score"`
	TierLabel  string        `json:"tier_label"`
	LastClose  float64       `json:"last_close"`
	CheckedAt  time.Time     `json:"checked_at"`
}

// State is the persisted watchlist state keyed by symbol.
type State struct {
	Symbols   map[string]SymbolState `json:"symbols"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// LoadState reads the state from a JSON file. Returns an empty state if the file doesn't exist.
func LoadState(filePath string) (*State, error) {
	state := &State{Symbols: map[string]SymbolState{}}
	if filePath == "" {
		return state, nil
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return nil, fmt.Errorf("read watch state: %w", err)
	}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("parse watch state: %w", err)
	}
	if state.Symbols == nil {
		state.Symbols = map[string]SymbolState{}
	}
	return state, nil
}

// SaveState writes the state to a JSON file. An empty path keeps state in memory only.
func SaveState(filePath string, state *State) error {
	if filePath == "" {
		return nil
	}
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(filePath, data, 0644)
}
