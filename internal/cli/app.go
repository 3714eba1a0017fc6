package cli

import (
	"fmt"
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"StockAnalyzer/internal/cache"
	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/config"
	"StockAnalyzer/internal/metrics"
	"StockAnalyzer/internal/recorder"
)

// app holds the wired components shared by every subcommand.
type app struct {
	cfg       *config.Config
	metrics   *metrics.Metrics
	cache     cache.Cache
	collector *collector.Collector
	recorder  recorder.Recorder
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func newFetcher(cfg *config.Config) collector.Fetcher {
	switch cfg.DataSource.Provider {
	case config.ProviderYahoo:
		f := collector.NewYahooFetcher(cfg.Proxy)
		if cfg.DataSource.BaseURL != "" {
			f.BaseURL = cfg.DataSource.BaseURL
		}
		return f
	case config.ProviderMock:
		return &collector.MockFetcher{Price: 150}
	default:
		return collector.NewAlphaVantageFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	}
}

// newApp wires config into components. Optional backends (Redis, SQLite)
// degrade to no-op implementations when unavailable.
func newApp(cfgPath string) (*app, error) {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(reg)

	fetcher := newFetcher(cfg)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	var c cache.Cache = cache.NewNoopCache()
	if cfg.Cache.RedisAddr != "" {
		rc, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			log.Printf("[WARN] init redis cache failed, caching disabled: %v", err)
		} else {
			c = rc
			fetcher = collector.NewCachingFetcher(fetcher, rc, cfg.Cache.TTL, m)
		}
	}

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	return &app{
		cfg:       cfg,
		metrics:   m,
		cache:     c,
		collector: collector.NewCollector(fetcher, cfg.IndicatorParams, m),
		recorder:  rec,
	}, nil
}

func (a *app) Close() {
	if err := a.recorder.Close(); err != nil {
		log.Printf("[WARN] close recorder: %v", err)
	}
	if err := a.cache.Close(); err != nil {
		log.Printf("[WARN] close cache: %v", err)
	}
}
