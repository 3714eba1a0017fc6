package cli

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"StockAnalyzer/internal/dashboard"
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/recorder"
)

func newAnalyzeCmd(cfgPath func() string) *cobra.Command {
	var (
		interval  string
		indicator string
		rows      int
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "analyze <SYMBOL>",
		Short: "Compute indicators for one symbol and print them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cfgPath())
			if err != nil {
				return err
			}
			defer a.Close()

			iv := a.cfg.RefreshInterval()
			if interval != "" {
				if iv, err = model.ParseInterval(interval); err != nil {
					return err
				}
			}
			ind, err := model.ParseIndicator(orDefault(indicator, a.cfg.Indicators[0]))
			if err != nil {
				return err
			}

			analysis, err := a.collector.Analyze(cmd.Context(), args[0], iv)
			if err != nil {
				return err
			}
			if snap := recorder.NewSnapshot(analysis); snap != nil {
				if err := a.recorder.RecordSnapshot(snap); err != nil {
					log.Printf("[WARN] record snapshot: %v", err)
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(analysis)
			}
			dashboard.RenderTerminal(out, analysis, ind, rows)
			return nil
		},
	}
	cmd.Flags().StringVarP(&interval, "interval", "i", "", "daily, weekly or monthly (default from config)")
	cmd.Flags().StringVar(&indicator, "indicator", "", fmt.Sprintf("one of %v (default: first configured)", model.Indicators))
	cmd.Flags().IntVarP(&rows, "rows", "n", 10, "number of most recent bars to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full analysis as JSON")
	return cmd
}
