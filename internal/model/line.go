package model

import (
	"encoding/json"
	"math"
)

// Line is an indicator output aligned index-for-index with its input series.
// Positions where the lookback window is not yet filled are marked invalid
// and hold NaN in Values.
type Line struct {
	Values []float64
	Valid  []bool
}

// NewLine returns a line of length n with every position undefined.
func NewLine(n int) Line {
	l := Line{Values: make([]float64, n), Valid: make([]bool, n)}
	for i := range l.Values {
		l.Values[i] = math.NaN()
	}
	return l
}

// Set stores v at i and marks the position defined.
func (l Line) Set(i int, v float64) {
	l.Values[i] = v
	l.Valid[i] = true
}

// Len returns the number of positions, defined or not.
func (l Line) Len() int { return len(l.Values) }

// At returns the value at i and whether it is defined.
func (l Line) At(i int) (float64, bool) {
	if i < 0 || i >= len(l.Values) || !l.Valid[i] {
		return math.NaN(), false
	}
	return l.Values[i], true
}

// Last returns the most recent defined value.
func (l Line) Last() (float64, bool) {
	for i := len(l.Values) - 1; i >= 0; i-- {
		if l.Valid[i] {
			return l.Values[i], true
		}
	}
	return math.NaN(), false
}

// Nullable returns the values with undefined positions as nil, suitable for JSON.
func (l Line) Nullable() []*float64 {
	out := make([]*float64, len(l.Values))
	for i := range l.Values {
		if l.Valid[i] {
			v := l.Values[i]
			out[i] = &v
		}
	}
	return out
}

// MarshalJSON encodes undefined positions as null.
func (l Line) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Nullable())
}
