package notifier

import (
	"fmt"
	"html"
	"strings"

	"StockAnalyzer/internal/model"
)

func latest(l model.Line) string {
	if v, ok := l.At(l.Len() - 1); ok {
		return fmt.Sprintf("%.2f", v)
	}
	return model.NotAvailable
}

// FormatAnalysis formats an analysis summary into a Telegram message.
func FormatAnalysis(a *model.Analysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s", html.EscapeString(a.Symbol), a.Interval))
	if bar, ok := a.Series.Last(); ok {
		b.WriteString(fmt.Sprintf(" | %s\n\n", bar.Time.Format("2006-01-02")))
		b.WriteString(fmt.Sprintf("Close: %.2f\n", bar.Close))
	} else {
		b.WriteString("\n\nNo data\n")
	}

	b.WriteString(fmt.Sprintf("RSI(%d): %s\n", a.Params.RSIWindow, latest(a.RSI)))
	b.WriteString(fmt.Sprintf("MACD: %s | Signal: %s\n", latest(a.MACD), latest(a.Signal)))
	b.WriteString(fmt.Sprintf("VWAP: %s\n", latest(a.VWAP)))
	b.WriteString(fmt.Sprintf("Bollinger: %s / %s / %s\n",
		latest(a.Bollinger.Lower), latest(a.Bollinger.Middle), latest(a.Bollinger.Upper)))

	if a.Fundamentals != nil {
		b.WriteString("\n📈 <b>Fundamentals:</b>\n")
		for _, t := range a.Fundamentals.Tiles() {
			b.WriteString(fmt.Sprintf("  %s: %s\n", t.Label, html.EscapeString(t.Value)))
		}
	}

	if o := a.Outlook; o != nil {
		b.WriteString("\n🧭 <b>Outlook:</b>\n")
		for _, f := range o.Factors {
			if !f.Available {
				b.WriteString(fmt.Sprintf("  %s: n/a\n", f.Name))
				continue
			}
			b.WriteString(fmt.Sprintf("  %s(%s): %+.1f (×%.2f) = %+.3f\n",
				f.Name, html.EscapeString(f.Commentary), f.RawScore, f.Weight, f.Weighted))
		}
		b.WriteString("  ─────────────────\n")
		b.WriteString(fmt.Sprintf("  Score: %+.3f → <b>%s</b>\n", o.TotalScore, o.Tier.Label))
		if o.WarningMsg != "" {
			b.WriteString(fmt.Sprintf("\n%s\n", o.WarningMsg))
		}
	}

	return b.String()
}

// FormatAlert formats an RSI zone change.
func FormatAlert(a *model.Analysis, from model.RSIZone) string {
	to := model.RSIZoneUnknown
	if a.Outlook != nil {
		to = a.Outlook.RSIZone
	}
	icon := "🔔"
	switch to {
	case model.RSIZoneOversold:
		icon = "🟢"
	case model.RSIZoneOverbought:
		icon = "🔴"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s <b>%s RSI alert</b> (%s)\n\n", icon, html.EscapeString(a.Symbol), a.Interval))
	b.WriteString(fmt.Sprintf("Zone: %s → %s\n", from, to))
	b.WriteString(fmt.Sprintf("RSI(%d): %s\n", a.Params.RSIWindow, latest(a.RSI)))
	if price, ok := a.LastClose(); ok {
		b.WriteString(fmt.Sprintf("Close: %.2f\n", price))
	}
	return b.String()
}
