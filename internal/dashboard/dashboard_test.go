package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/metrics"
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/recorder"
)

func mockCollector(f *collector.MockFetcher) *collector.Collector {
	return collector.NewCollector(f, model.DefaultIndicatorParams(), metrics.NewMetrics(prometheus.NewRegistry()))
}

func analyze(t *testing.T) *model.Analysis {
	t.Helper()
	end := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)
	a, err := mockCollector(&collector.MockFetcher{Price: 150, End: end}).Analyze(context.Background(), "AAPL", model.IntervalDaily)
	require.NoError(t, err)
	return a
}

func TestRenderTerminal(t *testing.T) {
	a := analyze(t)

	for _, ind := range model.Indicators {
		t.Run(string(ind), func(t *testing.T) {
			var buf bytes.Buffer
			RenderTerminal(&buf, a, ind, 5)
			out := buf.String()

			assert.Contains(t, out, "AAPL")
			assert.Contains(t, out, "P/E Ratio")
			assert.Contains(t, out, "52 Week Low")
			assert.Contains(t, out, "28.5")
			assert.Contains(t, out, "2024-06-28")
			assert.Contains(t, out, "2024-06-24")
			assert.NotContains(t, out, "2024-06-21")
			assert.Contains(t, out, "Outlook")
		})
	}
}

func TestRenderTerminal_Columns(t *testing.T) {
	a := analyze(t)
	cases := map[model.Indicator][]string{
		model.IndicatorMACD:      {"MACD", "SIGNAL", "HISTOGRAM"},
		model.IndicatorRSI:       {"RSI(14)", "ZONE"},
		model.IndicatorVWAP:      {"VWAP"},
		model.IndicatorBollinger: {"LOWER", "MIDDLE", "UPPER"},
	}
	for ind, cols := range cases {
		var buf bytes.Buffer
		RenderTerminal(&buf, a, ind, 3)
		for _, c := range cols {
			assert.Contains(t, strings.ToUpper(buf.String()), c, "%s", ind)
		}
	}
}

func TestRenderTerminal_UndefinedCells(t *testing.T) {
	bars := []model.OHLCV{{Time: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), High: 11, Low: 9, Close: 10, Volume: 1}}
	a, err := mockCollector(&collector.MockFetcher{Bars: bars}).Analyze(context.Background(), "X", model.IntervalDaily)
	require.NoError(t, err)

	var buf bytes.Buffer
	RenderTerminal(&buf, a, model.IndicatorRSI, 10)
	assert.Contains(t, buf.String(), "UNKNOWN")
	assert.Contains(t, buf.String(), " - ")
}

func TestRenderTiles_RowsOfFour(t *testing.T) {
	out := renderTiles((&model.Fundamentals{}).Tiles())
	lines := strings.Split(out, "\n")
	// two label/value pairs plus borders and one separator
	assert.Len(t, lines, 7)
}

func newTestServer(t *testing.T, f *collector.MockFetcher, rec recorder.Recorder) *httptest.Server {
	t.Helper()
	s := NewServer(mockCollector(f), rec, []string{"AAPL", "MSFT"}, ":0")
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, dst interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if dst != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	}
	return resp.StatusCode
}

func TestServer_Symbols(t *testing.T) {
	srv := newTestServer(t, &collector.MockFetcher{}, recorder.NewNoopRecorder())
	var body struct {
		Symbols    []string `json:"symbols"`
		Intervals  []string `json:"intervals"`
		Indicators []string `json:"indicators"`
	}
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/symbols", &body))
	assert.Equal(t, []string{"AAPL", "MSFT"}, body.Symbols)
	assert.Equal(t, []string{"daily", "weekly", "monthly"}, body.Intervals)
	assert.Equal(t, []string{"MACD", "RSI", "VWAP", "BOLLINGER"}, body.Indicators)
}

func TestServer_Analysis(t *testing.T) {
	srv := newTestServer(t, &collector.MockFetcher{Price: 100}, recorder.NewNoopRecorder())

	var body struct {
		Symbol   string     `json:"symbol"`
		Interval string     `json:"interval"`
		RSI      []*float64 `json:"rsi"`
		Tiles    []model.Tile
		Outlook  struct {
			Tier struct {
				Label string `json:"label"`
			} `json:"tier"`
		} `json:"outlook"`
	}
	status := getJSON(t, srv.URL+"/api/analysis?symbol=aapl&interval=Weekly", &body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "AAPL", body.Symbol)
	assert.Equal(t, "weekly", body.Interval)
	require.NotEmpty(t, body.RSI)
	assert.Nil(t, body.RSI[0], "leading RSI undefined encodes as null")
	assert.NotNil(t, body.RSI[len(body.RSI)-1])
	assert.Len(t, body.Tiles, 8)
	assert.NotEmpty(t, body.Outlook.Tier.Label)
}

func TestServer_AnalysisErrors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		err    error
		status int
		msg    string
	}{
		{"missing symbol", "", nil, http.StatusBadRequest, "symbol is required"},
		{"bad interval", "symbol=AAPL&interval=hourly", nil, http.StatusBadRequest, "unknown interval"},
		{"invalid symbol", "symbol=NOPE", fmt.Errorf("%w: %s", collector.ErrInvalidSymbol, "Invalid API call."), http.StatusNotFound, "API Error: Invalid API call."},
		{"rate limited", "symbol=AAPL", fmt.Errorf("%w: %s", collector.ErrRateLimited, "5 calls per minute"), http.StatusTooManyRequests, "API Limit: 5 calls per minute"},
		{"malformed", "symbol=AAPL", fmt.Errorf("%w for AAPL", collector.ErrMalformedResponse), http.StatusBadGateway, "unexpected API response format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &collector.MockFetcher{Err: tt.err}, recorder.NewNoopRecorder())
			var body errorBody
			assert.Equal(t, tt.status, getJSON(t, srv.URL+"/api/analysis?"+tt.query, &body))
			assert.Contains(t, body.Error, tt.msg)
		})
	}
}

func TestServer_History(t *testing.T) {
	rec, err := recorder.NewSQLiteRecorder(filepath.Join(t.TempDir(), "h.db"))
	require.NoError(t, err)
	defer rec.Close()
	a := analyze(t)
	require.NoError(t, rec.RecordSnapshot(recorder.NewSnapshot(a)))

	srv := newTestServer(t, &collector.MockFetcher{}, rec)
	var body struct {
		Symbol    string              `json:"symbol"`
		Snapshots []recorder.Snapshot `json:"snapshots"`
	}
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/history?symbol=aapl&limit=5", &body))
	require.Len(t, body.Snapshots, 1)
	assert.Equal(t, "AAPL", body.Snapshots[0].Symbol)

	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/history?symbol=AAPL&limit=0", nil))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/api/history", nil))
}

func TestServer_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, &collector.MockFetcher{}, recorder.NewNoopRecorder())
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/healthz", nil))

	getJSON(t, srv.URL+"/api/analysis?symbol=AAPL", nil)
	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	assert.Contains(t, buf.String(), "analyses_total")
}

func TestServer_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &collector.MockFetcher{}, recorder.NewNoopRecorder())
	resp, err := http.Post(srv.URL+"/api/symbols", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusGatewayTimeout, statusFor(fmt.Errorf("fetch: %w", context.DeadlineExceeded)))
	assert.Equal(t, http.StatusBadGateway, statusFor(fmt.Errorf("dial tcp: refused")))
}
