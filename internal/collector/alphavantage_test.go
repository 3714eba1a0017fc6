package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/model"
)

const avDaily = `{
  "Meta Data": {"1. Information": "Daily Prices", "2. Symbol": "IBM"},
  "Time Series (Daily)": {
    "2024-03-05": {"1. open": "190.0", "2. high": "192.5", "3. low": "189.0", "4. close": "191.0", "5. volume": "3000"},
    "2024-03-01": {"1. open": "185.0", "2. high": "187.0", "3. low": "184.0", "4. close": "186.5", "5. volume": "1000"},
    "2024-03-04": {"1. open": "186.5", "2. high": "190.5", "3. low": "186.0", "4. close": "190.0", "5. volume": "2000"}
  }
}`

func avServer(t *testing.T, body string, status int) (*AlphaVantageFetcher, *http.Request) {
	t.Helper()
	var last http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last = *r
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	f := NewAlphaVantageFetcher(srv.URL, "demo", "")
	f.Timeout = 5 * time.Second
	return f, &last
}

func TestAlphaVantage_FetchSeries(t *testing.T) {
	f, req := avServer(t, avDaily, http.StatusOK)

	s, err := f.FetchSeries(context.Background(), "IBM", model.IntervalDaily)
	require.NoError(t, err)

	assert.Equal(t, "/query", req.URL.Path)
	assert.Equal(t, "TIME_SERIES_DAILY", req.URL.Query().Get("function"))
	assert.Equal(t, "IBM", req.URL.Query().Get("symbol"))
	assert.Equal(t, "demo", req.URL.Query().Get("apikey"))

	require.Equal(t, 3, s.Len())
	assert.Equal(t, "2024-03-01", s.Bars[0].Time.Format("2006-01-02"))
	assert.Equal(t, "2024-03-05", s.Bars[2].Time.Format("2006-01-02"))
	assert.Equal(t, model.OHLCV{
		Time: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Open: 186.5, High: 190.5, Low: 186, Close: 190, Volume: 2000,
	}, s.Bars[1])
	assert.Equal(t, model.IntervalDaily, s.Interval)
}

func TestAlphaVantage_IntervalFunctions(t *testing.T) {
	tests := []struct {
		interval model.Interval
		function string
		key      string
	}{
		{model.IntervalWeekly, "TIME_SERIES_WEEKLY", "Weekly Time Series"},
		{model.IntervalMonthly, "TIME_SERIES_MONTHLY", "Monthly Time Series"},
	}
	for _, tt := range tests {
		t.Run(string(tt.interval), func(t *testing.T) {
			body := `{"` + tt.key + `": {"2024-01-31": {"1. open": "1", "2. high": "2", "3. low": "0.5", "4. close": "1.5", "5. volume": "10"}}}`
			f, req := avServer(t, body, http.StatusOK)
			s, err := f.FetchSeries(context.Background(), "IBM", tt.interval)
			require.NoError(t, err)
			assert.Equal(t, tt.function, req.URL.Query().Get("function"))
			assert.Equal(t, 1, s.Len())
		})
	}
}

func TestAlphaVantage_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		want    error
		message string
	}{
		{"invalid symbol", `{"Error Message": "Invalid API call. Please retry or visit the documentation."}`, 200,
			ErrInvalidSymbol, "API Error: Invalid API call. Please retry or visit the documentation."},
		{"note", `{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute."}`, 200,
			ErrRateLimited, "API Limit: Thank you for using Alpha Vantage!"},
		{"information", `{"Information": "We have detected your API key as demo."}`, 200,
			ErrRateLimited, "API Limit: We have detected"},
		{"missing key", `{"Meta Data": {}}`, 200, ErrMalformedResponse, "unexpected API response format"},
		{"not json", `<html>oops</html>`, 200, ErrMalformedResponse, "invalid JSON"},
		{"bad value", `{"Time Series (Daily)": {"2024-01-02": {"1. open": "x", "2. high": "1", "3. low": "1", "4. close": "1", "5. volume": "1"}}}`, 200,
			ErrMalformedResponse, `bad "1. open"`},
		{"missing field", `{"Time Series (Daily)": {"2024-01-02": {"1. open": "1"}}}`, 200,
			ErrMalformedResponse, `missing "2. high"`},
		{"bad date", `{"Time Series (Daily)": {"yesterday": {}}}`, 200, ErrMalformedResponse, "bad date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := avServer(t, tt.body, tt.status)
			_, err := f.FetchSeries(context.Background(), "IBM", model.IntervalDaily)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestAlphaVantage_HTTPStatus(t *testing.T) {
	f, _ := avServer(t, "down", http.StatusServiceUnavailable)
	_, err := f.FetchSeries(context.Background(), "IBM", model.IntervalDaily)
	assert.ErrorContains(t, err, "status 503")
}

func TestAlphaVantage_EmptySeries(t *testing.T) {
	f, _ := avServer(t, `{"Time Series (Daily)": {}}`, http.StatusOK)
	s, err := f.FetchSeries(context.Background(), "IBM", model.IntervalDaily)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestAlphaVantage_UnsupportedInterval(t *testing.T) {
	f, _ := avServer(t, `{}`, http.StatusOK)
	_, err := f.FetchSeries(context.Background(), "IBM", "hourly")
	assert.ErrorContains(t, err, "unsupported interval")
}

func TestAlphaVantage_CancelledContext(t *testing.T) {
	f, _ := avServer(t, avDaily, http.StatusOK)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.FetchSeries(ctx, "IBM", model.IntervalDaily)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAlphaVantage_FetchFundamentals(t *testing.T) {
	body := `{
		"Symbol": "IBM", "PERatio": "22.1", "EPS": "8.14", "ReturnOnEquityTTM": "0.338",
		"MarketCapitalization": "175000000000", "DividendYield": "0.0358",
		"ProfitMargin": "None", "52WeekHigh": "199.18", "52WeekLow": "-"
	}`
	f, req := avServer(t, body, http.StatusOK)

	fund, err := f.FetchFundamentals(context.Background(), "IBM")
	require.NoError(t, err)
	assert.Equal(t, "OVERVIEW", req.URL.Query().Get("function"))

	tiles := fund.Tiles()
	got := map[string]string{}
	for _, tl := range tiles {
		got[tl.Label] = tl.Value
	}
	assert.Equal(t, "22.1", got["P/E Ratio"])
	assert.Equal(t, "8.14", got["EPS"])
	assert.Equal(t, "0.338", got["ROE"])
	assert.Equal(t, "$175,000,000,000", got["Market Cap"])
	assert.Equal(t, "3.58%", got["Dividend Yield"])
	assert.Equal(t, "N/A", got["Profit Margin"])
	assert.Equal(t, "199.18", got["52 Week High"])
	assert.Equal(t, "N/A", got["52 Week Low"])
}

func TestAlphaVantage_FetchFundamentalsRateLimited(t *testing.T) {
	f, _ := avServer(t, `{"Note": "slow down"}`, http.StatusOK)
	_, err := f.FetchFundamentals(context.Background(), "IBM")
	assert.ErrorIs(t, err, ErrRateLimited)
}
