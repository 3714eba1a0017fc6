package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X StockAnalyzer/internal/cli.Version=...".
var Version = "dev"

const defaultConfigPath = "configs/config.yaml"

// NewRootCmd builds the analyzer command tree.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:   "analyzer",
		Short: "Technical indicator dashboard for a watchlist of equities",
		Long: `Analyzer fetches daily, weekly or monthly price series and fundamental
ratios, computes RSI, MACD, VWAP and Bollinger Bands, and presents them in
the terminal or over a JSON API.

Examples:
  analyzer analyze AAPL --interval weekly --indicator rsi
  analyzer serve
  analyzer watch --now`,
		SilenceUsage: true,
	}

	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", orDefault(cfgPath, defaultConfigPath), "path to YAML config")

	cfgFn := func() string { return cfgPath }
	root.AddCommand(
		newAnalyzeCmd(cfgFn),
		newHistoryCmd(cfgFn),
		newServeCmd(cfgFn),
		newWatchCmd(cfgFn),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
