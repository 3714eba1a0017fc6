package dashboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/model"
)

// tilesPerRow matches the four-column metric grid of the web view.
const tilesPerRow = 4

const undefinedCell = "-"

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	return t
}

func cell(l model.Line, i int) string {
	if v, ok := l.At(i); ok {
		return fmt.Sprintf("%.2f", v)
	}
	return undefinedCell
}

// RenderTerminal writes the fundamentals grid, the last rows bars of the
// selected indicator and the outlook summary.
func RenderTerminal(w io.Writer, a *model.Analysis, indicator model.Indicator, rows int) {
	fmt.Fprintf(w, "%s  %s  %s\n", text.Bold.Sprint(a.Symbol), a.Interval, a.ComputedAt.Format("2006-01-02 15:04"))
	if price, ok := a.LastClose(); ok {
		fmt.Fprintf(w, "Close: %.2f\n", price)
	}
	fmt.Fprintln(w, renderTiles(a.Fundamentals.Tiles()))
	fmt.Fprintln(w, renderIndicator(a, indicator, rows))
	if a.Outlook != nil {
		fmt.Fprintln(w, renderOutlook(a.Outlook))
	}
}

func renderTiles(tiles []model.Tile) string {
	t := newTable()
	for start := 0; start < len(tiles); start += tilesPerRow {
		end := start + tilesPerRow
		if end > len(tiles) {
			end = len(tiles)
		}
		labels, values := table.Row{}, table.Row{}
		for _, tile := range tiles[start:end] {
			labels = append(labels, text.Faint.Sprint(tile.Label))
			values = append(values, tile.Value)
		}
		if start > 0 {
			t.AppendSeparator()
		}
		t.AppendRow(labels)
		t.AppendRow(values)
	}
	return t.Render()
}

// indicatorColumns returns the header and per-bar cells for one indicator.
func indicatorColumns(a *model.Analysis, indicator model.Indicator) (table.Row, func(i int) table.Row) {
	switch indicator {
	case model.IndicatorMACD:
		return table.Row{"MACD", "Signal", "Histogram"}, func(i int) table.Row {
			hist := undefinedCell
			m, ok1 := a.MACD.At(i)
			s, ok2 := a.Signal.At(i)
			if ok1 && ok2 {
				hist = fmt.Sprintf("%+.2f", m-s)
			}
			return table.Row{cell(a.MACD, i), cell(a.Signal, i), hist}
		}
	case model.IndicatorRSI:
		return table.Row{fmt.Sprintf("RSI(%d)", a.Params.RSIWindow), "Zone"}, func(i int) table.Row {
			v, ok := a.RSI.At(i)
			return table.Row{cell(a.RSI, i), string(calculator.RSIZone(v, ok))}
		}
	case model.IndicatorVWAP:
		return table.Row{"VWAP"}, func(i int) table.Row {
			return table.Row{cell(a.VWAP, i)}
		}
	default:
		b := a.Bollinger
		return table.Row{"Lower", "Middle", "Upper"}, func(i int) table.Row {
			return table.Row{cell(b.Lower, i), cell(b.Middle, i), cell(b.Upper, i)}
		}
	}
}

func renderIndicator(a *model.Analysis, indicator model.Indicator, rows int) string {
	t := newTable()
	t.SetTitle(string(indicator))
	header, cells := indicatorColumns(a, indicator)
	t.AppendHeader(append(table.Row{"Date", "Close"}, header...))

	n := a.Series.Len()
	start := 0
	if rows > 0 && rows < n {
		start = n - rows
	}
	for i := start; i < n; i++ {
		bar := a.Series.Bars[i]
		row := table.Row{bar.Time.Format("2006-01-02"), fmt.Sprintf("%.2f", bar.Close)}
		t.AppendRow(append(row, cells(i)...))
	}
	if n == 0 {
		t.AppendRow(table.Row{"no data"})
	}
	return t.Render()
}

func renderOutlook(o *model.Outlook) string {
	t := newTable()
	t.SetTitle("Outlook")
	t.AppendHeader(table.Row{"Factor", "Score", "Weight", "Weighted", "Note"})
	for _, f := range o.Factors {
		if !f.Available {
			t.AppendRow(table.Row{f.Name, undefinedCell, fmt.Sprintf("%.2f", f.Weight), undefinedCell, f.Commentary})
			continue
		}
		t.AppendRow(table.Row{f.Name, fmt.Sprintf("%+.1f", f.RawScore), fmt.Sprintf("%.2f", f.Weight),
			fmt.Sprintf("%+.3f", f.Weighted), f.Commentary})
	}
	footer := fmt.Sprintf("%+.3f  %s", o.TotalScore, o.Tier.Label)
	t.AppendFooter(table.Row{"Total", "", "", footer, strings.TrimSpace(o.WarningMsg)})
	return t.Render()
}
