package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/metrics"
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/notifier"
	"StockAnalyzer/internal/recorder"
	"StockAnalyzer/internal/watch"
)

// Scheduler manages the periodic watchlist refresh.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Tracker   *watch.Tracker
	Notifier  notifier.Notifier // nil disables notifications
	Recorder  recorder.Recorder
	Metrics   *metrics.Metrics
	Symbols   []string
	Interval  model.Interval
	Ctx       context.Context
}

// RefreshResult summarizes one pass over the watchlist.
type RefreshResult struct {
	Analyzed int
	Failed   map[string]error
	Alerts   []watch.Transition
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, tr *watch.Tracker, n notifier.Notifier, rec recorder.Recorder, symbols []string, interval model.Interval) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Tracker:   tr,
		Notifier:  n,
		Recorder:  rec,
		Metrics:   col.Metrics,
		Symbols:   symbols,
		Interval:  interval,
		Ctx:       ctx,
	}
}

// Register adds the refresh task on the given cron spec (with seconds).
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the refresh immediately (for manual trigger / run on start).
func (s *Scheduler) RunNow() RefreshResult {
	return s.Refresh()
}

func (s *Scheduler) refreshTask() {
	s.Refresh()
}

// Refresh analyzes every watched symbol, records a snapshot of each and
// alerts on RSI zone transitions. One symbol's failure does not stop the rest.
func (s *Scheduler) Refresh() RefreshResult {
	log.Printf("[INFO] refreshing %d symbols (%s)", len(s.Symbols), s.Interval)
	res := RefreshResult{Failed: map[string]error{}}

	for _, symbol := range s.Symbols {
		if err := s.Ctx.Err(); err != nil {
			log.Printf("[WARN] refresh cancelled: %v", err)
			break
		}
		a, err := s.Collector.Analyze(s.Ctx, symbol, s.Interval)
		if err != nil {
			log.Printf("[ERROR] analyze %s: %v", symbol, err)
			res.Failed[symbol] = err
			continue
		}
		res.Analyzed++

		if snap := recorder.NewSnapshot(a); snap != nil {
			if err := s.Recorder.RecordSnapshot(snap); err != nil {
				log.Printf("[ERROR] record snapshot: %v", err)
			} else {
				s.Metrics.ObserveSnapshot()
			}
		}

		tn, alert := s.Tracker.Observe(a)
		if !alert {
			continue
		}
		res.Alerts = append(res.Alerts, tn)
		log.Printf("[INFO] %s RSI zone %s -> %s", symbol, tn.From, tn.To)

		evt := &recorder.AlertEvent{Symbol: a.Symbol, Interval: a.Interval, From: tn.From, To: tn.To}
		if v, ok := a.RSI.At(a.RSI.Len() - 1); ok {
			evt.RSI = v
		}
		evt.Price, _ = a.LastClose()
		if err := s.Recorder.RecordAlert(evt); err != nil {
			log.Printf("[ERROR] record alert: %v", err)
		}
		s.trySend(notifier.FormatAlert(a, tn.From))
	}

	if len(res.Failed) > 0 {
		s.trySend(fmt.Sprintf("❌ refresh failed for %d/%d symbols", len(res.Failed), len(s.Symbols)))
	}
	log.Printf("[INFO] refresh done: %d analyzed, %d failed, %d alerts", res.Analyzed, len(res.Failed), len(res.Alerts))
	return res
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	err := s.Notifier.Send(s.Ctx, text)
	s.Metrics.ObserveNotification(err)
	if err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
