package collector

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpproxy"

	"StockAnalyzer/internal/model"
)

const defaultAlphaVantageURL = "https://www.alphavantage.co"

// function and response key per interval
var (
	avFunctions = map[model.Interval]string{
		model.IntervalDaily:   "TIME_SERIES_DAILY",
		model.IntervalWeekly:  "TIME_SERIES_WEEKLY",
		model.IntervalMonthly: "TIME_SERIES_MONTHLY",
	}
	avSeriesKeys = map[model.Interval]string{
		model.IntervalDaily:   "Time Series (Daily)",
		model.IntervalWeekly:  "Weekly Time Series",
		model.IntervalMonthly: "Monthly Time Series",
	}
)

// AlphaVantageFetcher implements Fetcher using the Alpha Vantage query API.
type AlphaVantageFetcher struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Client  *fasthttp.Client
}

// NewAlphaVantageFetcher creates a fetcher with optional proxy support.
func NewAlphaVantageFetcher(baseURL, apiKey, proxyURL string) *AlphaVantageFetcher {
	if baseURL == "" {
		baseURL = defaultAlphaVantageURL
	}
	client := &fasthttp.Client{}
	if proxyURL != "" {
		client.Dial = fasthttpproxy.FasthttpHTTPDialer(proxyURL)
	}
	return &AlphaVantageFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Timeout: 30 * time.Second,
		Client:  client,
	}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

func (f *AlphaVantageFetcher) FetchSeries(ctx context.Context, symbol string, interval model.Interval) (*model.Series, error) {
	function, ok := avFunctions[interval]
	if !ok {
		return nil, fmt.Errorf("alphavantage: unsupported interval %q", interval)
	}
	root, err := f.query(ctx, function, symbol)
	if err != nil {
		return nil, err
	}

	series, ok := member(root, avSeriesKeys[interval])
	if !ok || !series.IsObject() {
		return nil, fmt.Errorf("%w for %s", ErrMalformedResponse, symbol)
	}

	var bars []model.OHLCV
	var parseErr error
	series.ForEach(func(date, v gjson.Result) bool {
		bar, err := parseAVBar(date.String(), v)
		if err != nil {
			parseErr = fmt.Errorf("%w for %s: %v", ErrMalformedResponse, symbol, err)
			return false
		}
		bars = append(bars, bar)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return &model.Series{
		Symbol:    symbol,
		Interval:  interval,
		Bars:      normalizeBars(bars),
		FetchedAt: time.Now(),
	}, nil
}

func (f *AlphaVantageFetcher) FetchFundamentals(ctx context.Context, symbol string) (*model.Fundamentals, error) {
	root, err := f.query(ctx, "OVERVIEW", symbol)
	if err != nil {
		return nil, err
	}
	str := func(key string) string {
		v, _ := member(root, key)
		return v.String()
	}
	return &model.Fundamentals{
		Symbol:        symbol,
		PERatio:       model.ParseDecimal(str("PERatio")),
		EPS:           model.ParseDecimal(str("EPS")),
		ROE:           model.ParseDecimal(str("ReturnOnEquityTTM")),
		MarketCap:     model.ParseDecimal(str("MarketCapitalization")),
		DividendYield: model.ParseDecimal(str("DividendYield")),
		ProfitMargin:  model.ParseDecimal(str("ProfitMargin")),
		High52w:       model.ParseDecimal(str("52WeekHigh")),
		Low52w:        model.ParseDecimal(str("52WeekLow")),
	}, nil
}

// query performs one GET against /query and checks the provider's
// in-band error fields.
func (f *AlphaVantageFetcher) query(ctx context.Context, function, symbol string) (gjson.Result, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(f.BaseURL + "/query")
	req.Header.SetMethod(fasthttp.MethodGet)
	args := req.URI().QueryArgs()
	args.Set("function", function)
	args.Set("symbol", symbol)
	args.Set("apikey", f.APIKey)

	timeout := f.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); d < timeout || timeout == 0 {
			timeout = d
		}
	}
	if err := ctx.Err(); err != nil {
		return gjson.Result{}, err
	}
	if err := f.Client.DoTimeout(req, resp, timeout); err != nil {
		return gjson.Result{}, fmt.Errorf("alphavantage fetch: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return gjson.Result{}, fmt.Errorf("alphavantage: status %d, body: %s", resp.StatusCode(), string(resp.Body()))
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w for %s: invalid JSON", ErrMalformedResponse, symbol)
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return gjson.Result{}, fmt.Errorf("%w for %s", ErrMalformedResponse, symbol)
	}
	if msg, ok := member(root, "Error Message"); ok {
		return gjson.Result{}, fmt.Errorf("%w: %s", ErrInvalidSymbol, msg.String())
	}
	for _, key := range []string{"Note", "Information"} {
		if msg, ok := member(root, key); ok {
			return gjson.Result{}, fmt.Errorf("%w: %s", ErrRateLimited, msg.String())
		}
	}
	return root, nil
}

// member looks up a top-level key verbatim. Alpha Vantage keys contain
// dots and parentheses, which gjson paths would treat as syntax.
func member(obj gjson.Result, key string) (gjson.Result, bool) {
	var found gjson.Result
	var ok bool
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			found, ok = v, true
			return false
		}
		return true
	})
	return found, ok
}

func parseAVBar(date string, v gjson.Result) (model.OHLCV, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return model.OHLCV{}, fmt.Errorf("bad date %q", date)
	}
	fields := [5]string{"1. open", "2. high", "3. low", "4. close", "5. volume"}
	var vals [5]float64
	for i, key := range fields {
		raw, ok := member(v, key)
		if !ok {
			return model.OHLCV{}, fmt.Errorf("%s: missing %q", date, key)
		}
		f, err := strconv.ParseFloat(raw.String(), 64)
		if err != nil {
			return model.OHLCV{}, fmt.Errorf("%s: bad %q value %q", date, key, raw.String())
		}
		vals[i] = f
	}
	return model.OHLCV{
		Time:   t,
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vals[4],
	}, nil
}
