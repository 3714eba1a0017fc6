package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"StockAnalyzer/internal/cache"
	"StockAnalyzer/internal/metrics"
	"StockAnalyzer/internal/model"
)

// CachingFetcher serves repeated requests from a cache. Cache failures are
// logged and fall through to the upstream fetcher; errors are never cached.
type CachingFetcher struct {
	Upstream Fetcher
	Cache    cache.Cache
	TTL      time.Duration
	Metrics  *metrics.Metrics
}

// NewCachingFetcher wraps upstream with the given cache.
func NewCachingFetcher(upstream Fetcher, c cache.Cache, ttl time.Duration, m *metrics.Metrics) *CachingFetcher {
	return &CachingFetcher{Upstream: upstream, Cache: c, TTL: ttl, Metrics: m}
}

func (f *CachingFetcher) Name() string { return f.Upstream.Name() }

func (f *CachingFetcher) FetchSeries(ctx context.Context, symbol string, interval model.Interval) (*model.Series, error) {
	key := fmt.Sprintf("series:%s:%s:%s", f.Upstream.Name(), strings.ToUpper(symbol), interval)
	var series model.Series
	if f.lookup(ctx, key, &series) {
		return &series, nil
	}
	fresh, err := f.Upstream.FetchSeries(ctx, symbol, interval)
	if err != nil {
		return nil, err
	}
	f.store(ctx, key, fresh)
	return fresh, nil
}

func (f *CachingFetcher) FetchFundamentals(ctx context.Context, symbol string) (*model.Fundamentals, error) {
	key := fmt.Sprintf("fundamentals:%s:%s", f.Upstream.Name(), strings.ToUpper(symbol))
	var fund model.Fundamentals
	if f.lookup(ctx, key, &fund) {
		return &fund, nil
	}
	fresh, err := f.Upstream.FetchFundamentals(ctx, symbol)
	if err != nil {
		return nil, err
	}
	f.store(ctx, key, fresh)
	return fresh, nil
}

func (f *CachingFetcher) lookup(ctx context.Context, key string, dst interface{}) bool {
	data, ok, err := f.Cache.Get(ctx, key)
	if err != nil {
		log.Printf("[WARN] cache get %s: %v", key, err)
		f.Metrics.ObserveCache("error")
		return false
	}
	if !ok {
		f.Metrics.ObserveCache("miss")
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		log.Printf("[WARN] cache decode %s: %v", key, err)
		f.Metrics.ObserveCache("error")
		return false
	}
	f.Metrics.ObserveCache("hit")
	return true
}

func (f *CachingFetcher) store(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WARN] cache encode %s: %v", key, err)
		return
	}
	if err := f.Cache.Set(ctx, key, data, f.TTL); err != nil {
		log.Printf("[WARN] cache set %s: %v", key, err)
	}
}
