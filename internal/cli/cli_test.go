package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	for _, k := range []string{"ALPHAVANTAGE_API_KEY", "DATA_PROVIDER", "SYMBOLS", "REDIS_ADDR", "SQLITE_PATH", "CONFIG_PATH"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	yml := `
data_source:
  provider: mock
symbols: [AAPL, MSFT]
database:
  sqlite_path: ` + filepath.Join(dir, "db", "analyzer.db") + `
schedule:
  state_file: ` + filepath.Join(dir, "watch.json") + `
` + extra
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestAnalyzeCmd(t *testing.T) {
	cfg := writeConfig(t, "")
	out, err := run(t, "analyze", "aapl", "--config", cfg, "--indicator", "bb", "--rows", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "BOLLINGER")
	assert.Contains(t, out, "Market Cap")

	// the run was recorded
	out, err = run(t, "history", "AAPL", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "daily")
}

func TestAnalyzeCmd_JSON(t *testing.T) {
	cfg := writeConfig(t, "")
	out, err := run(t, "analyze", "MSFT", "-c", cfg, "-i", "monthly", "--json")
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "MSFT", body["symbol"])
	assert.Equal(t, "monthly", body["interval"])
	assert.Contains(t, body, "bollinger")
}

func TestAnalyzeCmd_BadFlags(t *testing.T) {
	cfg := writeConfig(t, "")

	_, err := run(t, "analyze", "AAPL", "-c", cfg, "--interval", "hourly")
	assert.ErrorContains(t, err, "unknown interval")

	_, err = run(t, "analyze", "AAPL", "-c", cfg, "--indicator", "ADX")
	assert.ErrorContains(t, err, "unknown indicator")

	_, err = run(t, "analyze", "-c", cfg)
	assert.Error(t, err)
}

func TestAnalyzeCmd_InvalidConfig(t *testing.T) {
	cfg := writeConfig(t, "indicator_params:\n  macd_fast: 30\n")
	_, err := run(t, "analyze", "AAPL", "-c", cfg)
	assert.ErrorContains(t, err, "config validation")
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "analyzer dev\n", out)
}

func TestRootHelpListsCommands(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	for _, c := range []string{"analyze", "history", "serve", "watch", "version"} {
		assert.Contains(t, out, c)
	}
}
