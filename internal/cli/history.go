package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"StockAnalyzer/internal/recorder"
)

func opt(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

func newHistoryCmd(cfgPath func() string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history <SYMBOL>",
		Short: "List recorded snapshots for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cfgPath())
			if err != nil {
				return err
			}
			defer a.Close()

			snaps, err := a.recorder.LatestSnapshots(args[0], limit)
			if err != nil {
				return fmt.Errorf("query history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderHistory(snaps))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum snapshots to list")
	return cmd
}

func renderHistory(snaps []recorder.Snapshot) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Bar", "Interval", "Close", "RSI", "MACD", "Signal", "VWAP", "Score", "Tier", "Zone"})
	for _, s := range snaps {
		t.AppendRow(table.Row{
			s.BarTime.Format("2006-01-02"), s.Interval, fmt.Sprintf("%.2f", s.Close),
			opt(s.RSI), opt(s.MACD), opt(s.Signal), opt(s.VWAP),
			fmt.Sprintf("%+.3f", s.TotalScore), s.TierLabel, s.RSIZone,
		})
	}
	return t.Render()
}
