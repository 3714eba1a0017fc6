package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"StockAnalyzer/internal/notifier"
	"StockAnalyzer/internal/scheduler"
	"StockAnalyzer/internal/watch"
)

func newWatchCmd(cfgPath func() string) *cobra.Command {
	var runNow bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh the watchlist on a cron schedule and send RSI alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cfgPath())
			if err != nil {
				return err
			}
			defer a.Close()

			tracker, err := watch.NewTracker(a.cfg.Schedule.StateFile)
			if err != nil {
				return fmt.Errorf("init watch state: %w", err)
			}

			var n notifier.Notifier
			if a.cfg.TelegramEnabled() {
				tn := notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy)
				n = notifier.RetryingNotifier{TelegramNotifier: tn, MaxRetries: 3}
			} else {
				log.Println("[WARN] telegram not configured, alerts are logged only")
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			sched := scheduler.NewScheduler(ctx, a.collector, tracker, n, a.recorder, a.cfg.Symbols, a.cfg.RefreshInterval())
			if err := sched.Register(a.cfg.Schedule.RefreshCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			if runNow {
				log.Println("[INFO] --now set, refreshing immediately")
				go sched.RunNow()
			}

			log.Printf("[INFO] watching %d symbols (%s). Press Ctrl+C to stop.", len(a.cfg.Symbols), a.cfg.Schedule.RefreshCron)
			<-ctx.Done()
			log.Println("[INFO] shutdown signal received, stopping...")
			return nil
		},
	}
	cmd.Flags().BoolVar(&runNow, "now", false, "run a refresh immediately on start")
	return cmd
}
